// Package tui provides the interactive terminal view over a task
// session: list with status filter, add/edit forms, delete
// confirmation, manual reorder and undo/redo.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lumina/internal/service"
	"lumina/internal/session"
)

type uiMode int

const (
	modeList uiMode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// filter is the status filter over the displayed list. The zero value
// shows everything.
type filter int

const (
	filterAll filter = iota
	filterPending
	filterInProgress
	filterDone
)

func (f filter) label() string {
	switch f {
	case filterPending:
		return "Pending"
	case filterInProgress:
		return "In Progress"
	case filterDone:
		return "Done"
	default:
		return "All"
	}
}

func (f filter) matches(t service.Task) bool {
	switch f {
	case filterPending:
		return t.Status == service.StatusPending
	case filterInProgress:
		return t.Status == service.StatusInProgress
	case filterDone:
		return t.Status == service.StatusDone
	default:
		return true
	}
}

// Model is the bubbletea model for the task view. All session calls
// happen synchronously inside Update: the coordinator is single-writer
// and the design allows one mutation in flight at a time.
type Model struct {
	sess *session.Session

	mode   uiMode
	filter filter
	cursor int

	titleInput textinput.Model
	descInput  textinput.Model
	addFocus   int // 0 = title, 1 = description
	editID     string

	deleteID    string
	deleteTitle string

	toast    string
	toastErr bool

	width  int
	height int

	expired bool
}

// New creates the model over a loaded session.
func New(sess *session.Session) *Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 255

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1024

	return &Model{
		sess:       sess,
		titleInput: title,
		descInput:  desc,
	}
}

// SessionExpired reports whether the view quit because the store
// rejected the credential.
func (m *Model) SessionExpired() bool {
	return m.expired
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// visible returns the tasks matching the active filter.
func (m *Model) visible() []service.Task {
	all := m.sess.Tasks()
	if m.filter == filterAll {
		return all
	}
	var out []service.Task
	for _, t := range all {
		if m.filter.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (service.Task, bool) {
	vis := m.visible()
	if len(vis) == 0 || m.cursor >= len(vis) {
		return service.Task{}, false
	}
	return vis[m.cursor], true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "tab":
		m.filter = (m.filter + 1) % 4
		m.clampCursor()

	case " ", "space", "enter":
		task, ok := m.selected()
		if !ok {
			break
		}
		next, err := m.sess.CycleStatus(context.Background(), task.ID)
		if err != nil {
			return m.fail("Failed to update status", err)
		}
		m.clampCursor()
		m.ok("Status updated: " + string(next))

	case "a":
		m.mode = modeAdd
		m.addFocus = 0
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.descInput.Blur()
		return m, m.titleInput.Focus()

	case "e":
		task, ok := m.selected()
		if !ok {
			break
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.titleInput.SetValue(task.Title)
		m.titleInput.CursorEnd()
		return m, m.titleInput.Focus()

	case "d":
		task, ok := m.selected()
		if !ok {
			break
		}
		m.mode = modeConfirmDelete
		m.deleteID = task.ID
		m.deleteTitle = task.Title

	case "J", "shift+down":
		m.moveSelected(1)
	case "K", "shift+up":
		m.moveSelected(-1)

	case "u", "ctrl+z":
		if !m.sess.CanUndo() {
			m.err("Nothing to undo")
			break
		}
		m.sess.Undo()
		m.clampCursor()
		m.ok("Undone")

	case "ctrl+r", "ctrl+y":
		if !m.sess.CanRedo() {
			m.err("Nothing to redo")
			break
		}
		m.sess.Redo()
		m.clampCursor()
		m.ok("Redone")

	case "R":
		if err := m.sess.Load(context.Background()); err != nil {
			return m.fail("Failed to load tasks", err)
		}
		m.clampCursor()
		m.ok("Reloaded")
	}
	return m, nil
}

// moveSelected swaps the selected task with its neighbor. Reorder is a
// whole-list operation, so it is only offered in the unfiltered view.
func (m *Model) moveSelected(delta int) {
	if m.filter != filterAll {
		m.err("Reorder only in the All view")
		return
	}
	tasks := m.sess.Tasks()
	target := m.cursor + delta
	if m.cursor < 0 || m.cursor >= len(tasks) || target < 0 || target >= len(tasks) {
		return
	}
	tasks[m.cursor], tasks[target] = tasks[target], tasks[m.cursor]
	if err := m.sess.Reorder(tasks); err != nil {
		m.err("Failed to reorder")
		return
	}
	m.cursor = target
	m.ok("Reordered")
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.titleInput.Blur()
		m.descInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		if m.addFocus == 0 {
			m.addFocus = 1
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.addFocus = 0
		m.descInput.Blur()
		return m, m.titleInput.Focus()

	case "enter":
		if m.addFocus == 0 {
			m.addFocus = 1
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		return m.submitAdd()
	}

	var cmd tea.Cmd
	if m.addFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitAdd() (tea.Model, tea.Cmd) {
	draft := service.Draft{
		Title:       m.titleInput.Value(),
		Description: m.descInput.Value(),
	}
	_, err := m.sess.Add(context.Background(), draft)
	if errors.Is(err, session.ErrTitleRequired) {
		m.err("Title is required")
		return m, nil
	}
	if err != nil {
		m.mode = modeList
		return m.fail("Failed to add task", err)
	}
	m.mode = modeList
	m.cursor = 0
	m.ok("Task added")
	return m, nil
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.titleInput.Blur()
		return m, nil

	case "enter":
		err := m.sess.EditTitle(context.Background(), m.editID, m.titleInput.Value())
		if errors.Is(err, session.ErrTitleRequired) {
			m.err("Title is required")
			return m, nil
		}
		if err != nil {
			m.mode = modeList
			return m.fail("Failed to update task", err)
		}
		m.mode = modeList
		m.titleInput.Blur()
		m.ok("Task updated")
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeList
		if err := m.sess.Delete(context.Background(), m.deleteID); err != nil {
			return m.fail("Failed to delete task", err)
		}
		m.clampCursor()
		m.ok("Task deleted")
	case "n", "N", "esc":
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) ok(msg string) {
	m.toast, m.toastErr = msg, false
}

func (m *Model) err(msg string) {
	m.toast, m.toastErr = msg, true
}

// fail handles a store error. Session expiry quits the view; the
// credential has already been purged by the coordinator.
func (m *Model) fail(msg string, err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, service.ErrUnauthorized) {
		m.expired = true
		return m, tea.Quit
	}
	m.err(msg)
	return m, nil
}
