// Package session coordinates user-initiated mutations between local
// history and the remote task store. Optimistic mutations (status cycle,
// title edit) apply locally first and roll back if the store rejects
// them; add and delete apply locally only after the store confirms.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lumina/internal/history"
	"lumina/internal/service"
)

// ErrTitleRequired is returned when a mutation is given an empty title.
// It is rejected before any network call and never enters history.
var ErrTitleRequired = errors.New("title required")

// Credentials is the stored bearer credential as the coordinator sees
// it: something that can be discarded when the store reports the
// session expired.
type Credentials interface {
	Clear() error
}

// Mirror receives the current task list after each state change. The
// mirror is advisory only; the store stays authoritative and Load
// always re-fetches.
type Mirror interface {
	WriteTasks(tasks []service.Task) error
}

// Session owns one history stack and drives all mutations for a single
// UI session. Like the stack it wraps, it is single-writer: the
// presentation layer issues one mutation at a time.
type Session struct {
	svc    service.Service
	hist   *history.Stack
	creds  Credentials
	mirror Mirror
}

// Option configures a Session.
type Option func(*Session)

// WithCredentials attaches the stored credential so it can be purged
// when the store rejects it.
func WithCredentials(c Credentials) Option {
	return func(s *Session) { s.creds = c }
}

// WithMirror attaches an advisory local mirror of the task list.
func WithMirror(m Mirror) Option {
	return func(s *Session) { s.mirror = m }
}

// New creates a session with an empty task list.
func New(svc service.Service, opts ...Option) *Session {
	s := &Session{
		svc:  svc,
		hist: history.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the task list from the store and reinitializes history
// with it as the single snapshot. Any existing undo/redo state is
// discarded.
func (s *Session) Load(ctx context.Context) error {
	tasks, err := s.svc.ListTasks(ctx, "")
	if err != nil {
		return s.fail(err)
	}
	s.hist.Reset(tasks)
	s.writeMirror()
	return nil
}

// Add creates a task from the draft. Add is confirm-first: the task
// enters history only after the store returns the created record, so a
// failed add is never visible locally.
func (s *Session) Add(ctx context.Context, draft service.Draft) (service.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}

	created, err := s.svc.CreateTask(ctx, draft)
	if err != nil {
		return service.Task{}, s.fail(err)
	}

	s.hist.Commit(append([]service.Task{created}, s.hist.Current()...))
	s.writeMirror()
	return created, nil
}

// CycleStatus advances the task's status one step around the cycle
// PENDING -> IN_PROGRESS -> DONE -> PENDING. The change is optimistic:
// it is committed before the store confirms, and a failure commits an
// explicit rollback snapshot (the pointer is not rewound, so both the
// attempt and the rollback remain undoable).
func (s *Session) CycleStatus(ctx context.Context, id string) (service.Status, error) {
	prev := s.hist.Current()
	task, i := find(prev, id)
	if i < 0 {
		return "", service.ErrNotFound
	}
	next := task.Status.Next()

	updated := s.hist.Current()
	updated[i].Status = next
	s.hist.Commit(updated)
	s.writeMirror()

	if _, err := s.svc.UpdateTask(ctx, id, task.Title, task.Description, next); err != nil {
		s.hist.Commit(prev)
		s.writeMirror()
		return "", s.fail(err)
	}
	return next, nil
}

// EditTitle replaces the task's title, optimistically like CycleStatus.
// An empty title is rejected locally; an unchanged title is a no-op.
func (s *Session) EditTitle(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}

	prev := s.hist.Current()
	task, i := find(prev, id)
	if i < 0 {
		return service.ErrNotFound
	}
	if task.Title == title {
		return nil
	}

	updated := s.hist.Current()
	updated[i].Title = title
	s.hist.Commit(updated)
	s.writeMirror()

	if _, err := s.svc.UpdateTask(ctx, id, title, task.Description, task.Status); err != nil {
		s.hist.Commit(prev)
		s.writeMirror()
		return s.fail(err)
	}
	return nil
}

// Delete removes a task. Delete is confirm-first: the store is asked
// first, and only a confirmed success removes the task locally.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail(err)
	}

	cur := s.hist.Current()
	if _, i := find(cur, id); i >= 0 {
		s.hist.Commit(append(cur[:i], cur[i+1:]...))
		s.writeMirror()
	}
	return nil
}

// Reorder replaces the list order. It is a purely local mutation: the
// store never learns about ordering. The new order must contain exactly
// the current tasks.
func (s *Session) Reorder(order []service.Task) error {
	cur := s.hist.Current()
	if !samePermutation(cur, order) {
		return fmt.Errorf("reorder: id set does not match current list")
	}
	s.hist.Commit(order)
	s.writeMirror()
	return nil
}

// Undo steps history back by one snapshot. No-op at the oldest entry.
func (s *Session) Undo() []service.Task {
	tasks := s.hist.Undo()
	s.writeMirror()
	return tasks
}

// Redo steps history forward by one snapshot. No-op at the newest entry.
func (s *Session) Redo() []service.Task {
	tasks := s.hist.Redo()
	s.writeMirror()
	return tasks
}

// Tasks returns the currently displayed task list.
func (s *Session) Tasks() []service.Task {
	return s.hist.Current()
}

// CanUndo reports whether undo would change state.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether redo would change state.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// fail classifies a store error. A rejected credential is purged before
// the error is surfaced, so the caller can redirect to authentication.
func (s *Session) fail(err error) error {
	if errors.Is(err, service.ErrUnauthorized) && s.creds != nil {
		// Purge failures don't mask the session expiry itself.
		_ = s.creds.Clear()
	}
	return err
}

func (s *Session) writeMirror() {
	if s.mirror != nil {
		_ = s.mirror.WriteTasks(s.hist.Current())
	}
}

func find(tasks []service.Task, id string) (service.Task, int) {
	for i, t := range tasks {
		if t.ID == id {
			return t, i
		}
	}
	return service.Task{}, -1
}

func samePermutation(a, b []service.Task) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, t := range a {
		seen[t.ID]++
	}
	for _, t := range b {
		seen[t.ID]--
		if seen[t.ID] < 0 {
			return false
		}
	}
	return true
}
