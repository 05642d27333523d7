package tui

import (
	"fmt"
	"strings"

	"lumina/internal/service"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lumina"))
	b.WriteString("\n")
	b.WriteString(m.viewChips())
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.viewAdd())
	case modeEdit:
		b.WriteString(m.viewEdit())
	case modeConfirmDelete:
		b.WriteString(m.viewConfirmDelete())
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	if m.toast != "" {
		if m.toastErr {
			b.WriteString(toastErrStyle.Render(m.toast))
		} else {
			b.WriteString(toastOKStyle.Render(m.toast))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.keyHints()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewChips() string {
	all := m.sess.Tasks()
	counts := map[filter]int{filterAll: len(all)}
	for _, t := range all {
		switch t.Status {
		case service.StatusPending:
			counts[filterPending]++
		case service.StatusInProgress:
			counts[filterInProgress]++
		case service.StatusDone:
			counts[filterDone]++
		}
	}

	chips := make([]string, 0, 4)
	for _, f := range []filter{filterAll, filterPending, filterInProgress, filterDone} {
		label := fmt.Sprintf("%s %d", f.label(), counts[f])
		if f == m.filter {
			chips = append(chips, chipActiveStyle.Render(label))
		} else {
			chips = append(chips, chipStyle.Render(label))
		}
	}
	return strings.Join(chips, " ")
}

func (m *Model) viewList() string {
	vis := m.visible()
	if len(vis) == 0 {
		return helpStyle.Render("No tasks. Press 'a' to add one.") + "\n"
	}

	var b strings.Builder
	for i, t := range vis {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%s %s", cursor, statusGlyph(string(t.Status)), displayTitle(t.Title))
		switch {
		case t.Status == service.StatusDone:
			line = doneStyle.Render(line)
		case i == m.cursor:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)

		if i == m.cursor && t.Description != "" {
			b.WriteString("\n      " + descStyle.Render(displayTitle(t.Description)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewAdd() string {
	var b strings.Builder
	b.WriteString("New task\n\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")
	b.WriteString(m.descInput.View())
	b.WriteString("\n")
	return modalStyle.Render(b.String())
}

func (m *Model) viewEdit() string {
	var b strings.Builder
	b.WriteString("Edit title\n\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")
	return modalStyle.Render(b.String())
}

func (m *Model) viewConfirmDelete() string {
	body := fmt.Sprintf("Delete %q?\n\n(y)es  (n)o", displayTitle(m.deleteTitle))
	return modalStyle.Render(body)
}

func (m *Model) keyHints() string {
	switch m.mode {
	case modeAdd:
		return "enter continue/submit · tab switch field · esc cancel"
	case modeEdit:
		return "enter save · esc cancel"
	case modeConfirmDelete:
		return "y confirm · n cancel"
	default:
		hints := "a add · space cycle · e edit · d delete · J/K move · tab filter"
		if m.sess.CanUndo() {
			hints += " · u undo"
		}
		if m.sess.CanRedo() {
			hints += " · ctrl+r redo"
		}
		return hints + " · q quit"
	}
}

// displayTitle flattens newlines and substitutes a placeholder for
// whitespace-only text.
func displayTitle(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
