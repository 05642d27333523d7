// Package history implements the linear undo/redo stack of task-list
// snapshots. Every mutation commits a full snapshot; undo and redo move
// a pointer over the stack without touching the network.
package history

import "lumina/internal/service"

// MaxEntries caps the stack. When a commit would exceed it, the oldest
// snapshot is evicted and the pointer shifts down with it.
const MaxEntries = 50

// Stack holds an ordered sequence of snapshots plus a pointer to the
// currently displayed one. All operations are total over the stack's
// bounds; undo at the oldest entry and redo at the newest are no-ops.
//
// Stack is designed for a single writer (one UI session) and is not
// safe for concurrent use.
type Stack struct {
	snaps [][]service.Task
	pos   int
}

// New creates a stack initialized with the given snapshot as its only
// entry.
func New(initial []service.Task) *Stack {
	s := &Stack{}
	s.Reset(initial)
	return s
}

// Reset replaces the stack with [initial] and points at it. Used
// whenever the list is freshly loaded from the store.
func (s *Stack) Reset(initial []service.Task) {
	s.snaps = [][]service.Task{clone(initial)}
	s.pos = 0
}

// Commit truncates any redo branch, appends newState and points at it.
// This is the only way new states enter history.
func (s *Stack) Commit(newState []service.Task) {
	s.snaps = append(s.snaps[:s.pos+1], clone(newState))
	s.pos = len(s.snaps) - 1
	if len(s.snaps) > MaxEntries {
		s.snaps = s.snaps[1:]
		s.pos--
	}
}

// Undo moves the pointer back by one and returns the snapshot now
// displayed. At the oldest entry it returns the current snapshot
// unchanged.
func (s *Stack) Undo() []service.Task {
	if s.pos > 0 {
		s.pos--
	}
	return s.Current()
}

// Redo moves the pointer forward by one and returns the snapshot now
// displayed. At the newest entry it returns the current snapshot
// unchanged.
func (s *Stack) Redo() []service.Task {
	if s.pos < len(s.snaps)-1 {
		s.pos++
	}
	return s.Current()
}

// Current returns the currently displayed snapshot.
func (s *Stack) Current() []service.Task {
	return clone(s.snaps[s.pos])
}

// CanUndo reports whether an older snapshot exists.
func (s *Stack) CanUndo() bool {
	return s.pos > 0
}

// CanRedo reports whether a newer snapshot exists.
func (s *Stack) CanRedo() bool {
	return s.pos < len(s.snaps)-1
}

// Len returns the number of snapshots on the stack.
func (s *Stack) Len() int {
	return len(s.snaps)
}

// clone copies a snapshot so callers and the stack never alias the same
// backing array. Task is a value type, so a slice copy is a full copy.
func clone(tasks []service.Task) []service.Task {
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out
}
