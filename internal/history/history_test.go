package history_test

import (
	"fmt"
	"testing"

	"lumina/internal/history"
	"lumina/internal/service"
)

func task(id string) service.Task {
	return service.Task{ID: id, Title: "task " + id, Status: service.StatusPending}
}

func ids(tasks []service.Task) string {
	s := ""
	for _, t := range tasks {
		s += t.ID
	}
	return s
}

func TestNewStartsWithSingleSnapshot(t *testing.T) {
	s := history.New([]service.Task{task("a"), task("b")})

	if got := ids(s.Current()); got != "ab" {
		t.Errorf("expected current ab, got %q", got)
	}
	if s.Len() != 1 {
		t.Errorf("expected length 1, got %d", s.Len())
	}
	if s.CanUndo() {
		t.Error("fresh stack should not allow undo")
	}
	if s.CanRedo() {
		t.Error("fresh stack should not allow redo")
	}
}

func TestCurrentTracksLatestCommit(t *testing.T) {
	s := history.New(nil)

	for i := 0; i < 5; i++ {
		snap := []service.Task{task(fmt.Sprintf("t%d", i))}
		s.Commit(snap)
		if got := ids(s.Current()); got != snap[0].ID {
			t.Errorf("after commit %d: expected current %q, got %q", i, snap[0].ID, got)
		}
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := history.New([]service.Task{task("a")})
	s.Commit([]service.Task{task("a"), task("b")})

	before := ids(s.Current())
	s.Undo()
	if got := ids(s.Current()); got != "a" {
		t.Errorf("expected a after undo, got %q", got)
	}
	s.Redo()
	if got := ids(s.Current()); got != before {
		t.Errorf("redo should restore %q, got %q", before, got)
	}
}

func TestUndoAtOldestIsNoop(t *testing.T) {
	s := history.New([]service.Task{task("a")})

	got := s.Undo()
	if ids(got) != "a" {
		t.Errorf("undo at oldest should return current snapshot, got %q", ids(got))
	}
	if s.CanUndo() {
		t.Error("still should not allow undo")
	}
}

func TestRedoAtNewestIsNoop(t *testing.T) {
	s := history.New([]service.Task{task("a")})
	s.Commit([]service.Task{task("b")})

	got := s.Redo()
	if ids(got) != "b" {
		t.Errorf("redo at newest should return current snapshot, got %q", ids(got))
	}
	if s.CanRedo() {
		t.Error("still should not allow redo")
	}
}

func TestCommitDiscardsRedoBranch(t *testing.T) {
	s := history.New([]service.Task{task("a")})
	s.Commit([]service.Task{task("b")})
	s.Commit([]service.Task{task("c")})

	s.Undo()
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("expected redo to be available after undos")
	}

	s.Commit([]service.Task{task("d")})
	if s.CanRedo() {
		t.Error("commit after undo must discard the redo branch")
	}
	if got := ids(s.Current()); got != "d" {
		t.Errorf("expected current d, got %q", got)
	}
	if s.Len() != 2 {
		t.Errorf("expected stack [a d], length 2, got %d", s.Len())
	}
}

// The delete/undo/reorder scenario: [A,B] -> delete B -> undo ->
// reorder. The reorder commit replaces the discarded [A] entry.
func TestDeleteUndoReorderScenario(t *testing.T) {
	a, b := task("a"), task("b")
	s := history.New([]service.Task{a, b})

	s.Commit([]service.Task{a})
	if s.Len() != 2 {
		t.Fatalf("expected length 2, got %d", s.Len())
	}
	if !s.CanUndo() || s.CanRedo() {
		t.Fatalf("expected canUndo=true canRedo=false, got %v %v", s.CanUndo(), s.CanRedo())
	}

	s.Undo()
	if got := ids(s.Current()); got != "ab" {
		t.Fatalf("expected ab after undo, got %q", got)
	}
	if !s.CanRedo() {
		t.Fatal("expected canRedo=true after undo")
	}

	s.Commit([]service.Task{b, a})
	if got := ids(s.Current()); got != "ba" {
		t.Errorf("expected ba, got %q", got)
	}
	if s.Len() != 2 {
		t.Errorf("expected [a] entry discarded, length 2, got %d", s.Len())
	}
	if s.CanRedo() {
		t.Error("expected canRedo=false after reorder commit")
	}
}

func TestCapEvictsOldest(t *testing.T) {
	s := history.New([]service.Task{task("seed")})

	for i := 0; i < history.MaxEntries+10; i++ {
		s.Commit([]service.Task{task(fmt.Sprintf("t%d", i))})
		if s.Len() > history.MaxEntries {
			t.Fatalf("commit %d: stack length %d exceeds cap", i, s.Len())
		}
	}

	if s.Len() != history.MaxEntries {
		t.Errorf("expected length %d at cap, got %d", history.MaxEntries, s.Len())
	}
	// Pointer keeps tracking the newest snapshot across evictions.
	if got := ids(s.Current()); got != fmt.Sprintf("t%d", history.MaxEntries+9) {
		t.Errorf("expected newest snapshot at pointer, got %q", got)
	}
	if s.CanRedo() {
		t.Error("pointer should be at the newest entry")
	}

	// The oldest surviving entry is reachable by undoing all the way.
	for s.CanUndo() {
		s.Undo()
	}
	if got := ids(s.Current()); got != fmt.Sprintf("t%d", 10) {
		t.Errorf("expected oldest surviving snapshot t10, got %q", got)
	}
}

func TestSnapshotsDoNotAliasCallerSlices(t *testing.T) {
	list := []service.Task{task("a"), task("b")}
	s := history.New(list)

	list[0] = task("mutated")
	if got := ids(s.Current()); got != "ab" {
		t.Errorf("mutating the caller's slice changed the snapshot: %q", got)
	}

	cur := s.Current()
	cur[0] = task("mutated")
	if got := ids(s.Current()); got != "ab" {
		t.Errorf("mutating a returned snapshot changed the stack: %q", got)
	}
}
