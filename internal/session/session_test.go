package session_test

import (
	"context"
	"errors"
	"testing"

	"lumina/internal/service"
	"lumina/internal/session"
	"lumina/internal/testutil"
)

func newSession(t *testing.T, svc *testutil.FakeService) *session.Session {
	t.Helper()
	s := session.New(svc)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return s
}

func ids(tasks []service.Task) string {
	s := ""
	for _, t := range tasks {
		s += t.ID + ";"
	}
	return s
}

func TestLoadResetsHistory(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	if _, err := s.Add(context.Background(), service.Draft{Title: "two"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !s.CanUndo() {
		t.Fatal("expected undo available after add")
	}

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("reload must discard undo/redo state")
	}
}

func TestAddPrependsConfirmedTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	created, err := s.Add(context.Background(), service.Draft{Title: "two", Description: "desc"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != created.ID {
		t.Errorf("new task should be prepended, got order %s", ids(tasks))
	}
	if tasks[0].Status != service.StatusPending {
		t.Errorf("new task should default to PENDING, got %s", tasks[0].Status)
	}
}

func TestAddEmptyTitleNeverCallsStore(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	before := ids(s.Tasks())
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(context.Background(), service.Draft{Title: title})
		if !errors.Is(err, session.ErrTitleRequired) {
			t.Errorf("title %q: expected ErrTitleRequired, got %v", title, err)
		}
	}

	if svc.CreateCalls != 0 {
		t.Errorf("expected no create calls, got %d", svc.CreateCalls)
	}
	if got := ids(s.Tasks()); got != before {
		t.Errorf("current list changed: %q -> %q", before, got)
	}
	if s.CanUndo() {
		t.Error("no history entry may exist for a rejected add")
	}
}

// Add is confirm-first: a failed add never appears in history, unlike
// the optimistic status/title mutations below.
func TestAddFailureLeavesHistoryUntouched(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)
	svc.CreateTaskErr = testutil.ErrRemote

	_, err := s.Add(context.Background(), service.Draft{Title: "two"})
	if !errors.Is(err, testutil.ErrRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}

	if len(s.Tasks()) != 1 {
		t.Errorf("failed add must not be visible, got %s", ids(s.Tasks()))
	}
	if s.CanUndo() {
		t.Error("failed add must not enter history")
	}
}

func TestCycleStatusWrapsAround(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	want := []service.Status{service.StatusInProgress, service.StatusDone, service.StatusPending}
	for _, expected := range want {
		got, err := s.CycleStatus(context.Background(), "t1")
		if err != nil {
			t.Fatalf("cycle failed: %v", err)
		}
		if got != expected {
			t.Errorf("expected %s, got %s", expected, got)
		}
		if s.Tasks()[0].Status != expected {
			t.Errorf("current list should show %s, got %s", expected, s.Tasks()[0].Status)
		}
	}

	if svc.Tasks()[0].Status != service.StatusPending {
		t.Errorf("store should have wrapped back to PENDING, got %s", svc.Tasks()[0].Status)
	}
}

// A failed cycle is briefly visible, then rolled back by a second
// commit. Both entries stay on the stack; the pointer is not rewound.
func TestCycleStatusRollsBackOnFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)
	svc.UpdateTaskErr = testutil.ErrRemote

	_, err := s.CycleStatus(context.Background(), "t1")
	if !errors.Is(err, testutil.ErrRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}

	if got := s.Tasks()[0].Status; got != service.StatusPending {
		t.Errorf("rollback should restore PENDING, got %s", got)
	}
	if !s.CanUndo() {
		t.Error("rollback consumes history slots; undo must be available")
	}

	// Undoing once exposes the speculative snapshot that was rolled back.
	prev := s.Undo()
	if prev[0].Status != service.StatusInProgress {
		t.Errorf("expected speculative IN_PROGRESS snapshot under the rollback, got %s", prev[0].Status)
	}
}

func TestCycleStatusUnknownID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	_, err := s.CycleStatus(context.Background(), "nope")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if svc.UpdateCalls != 0 {
		t.Errorf("unknown id must not reach the store, got %d calls", svc.UpdateCalls)
	}
}

func TestEditTitleOptimisticRollback(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "old", service.StatusPending)
	s := newSession(t, svc)
	svc.UpdateTaskErr = testutil.ErrRemote

	err := s.EditTitle(context.Background(), "t1", "new")
	if !errors.Is(err, testutil.ErrRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	if got := s.Tasks()[0].Title; got != "old" {
		t.Errorf("rollback should restore title, got %q", got)
	}
}

func TestEditTitleValidation(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "old", service.StatusPending)
	s := newSession(t, svc)

	if err := s.EditTitle(context.Background(), "t1", "  "); !errors.Is(err, session.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	// Unchanged title is a no-op: no call, no commit.
	if err := s.EditTitle(context.Background(), "t1", "old"); err != nil {
		t.Errorf("unchanged title should be a no-op, got %v", err)
	}
	if svc.UpdateCalls != 0 {
		t.Errorf("expected no update calls, got %d", svc.UpdateCalls)
	}
	if s.CanUndo() {
		t.Error("no-op edit must not enter history")
	}
}

func TestDeleteIsConfirmFirst(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	svc.Seed("t2", "two", service.StatusDone)
	s := newSession(t, svc)

	if err := s.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := ids(s.Tasks()); got != "t2;" {
		t.Errorf("expected only t2 left, got %s", got)
	}
}

func TestDeleteUnknownIDLeavesStateUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	err := s.Delete(context.Background(), "nope")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := ids(s.Tasks()); got != "t1;" {
		t.Errorf("no optimistic removal may occur, got %s", got)
	}
	if s.CanUndo() {
		t.Error("failed delete must not enter history")
	}
}

func TestDeleteRemoteFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)
	svc.DeleteTaskErr = testutil.ErrRemote

	if err := s.Delete(context.Background(), "t1"); !errors.Is(err, testutil.ErrRemote) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	if len(s.Tasks()) != 1 {
		t.Error("failed delete must not remove the task locally")
	}
}

func TestReorderIsLocalOnly(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	svc.Seed("t2", "two", service.StatusPending)
	s := newSession(t, svc)

	cur := s.Tasks()
	if err := s.Reorder([]service.Task{cur[1], cur[0]}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if got := ids(s.Tasks()); got != "t2;t1;" {
		t.Errorf("expected t2;t1; got %s", got)
	}
	if svc.UpdateCalls != 0 || svc.CreateCalls != 0 || svc.DeleteCalls != 0 {
		t.Error("reorder must never touch the store")
	}
	if !s.CanUndo() {
		t.Error("reorder is undoable")
	}
}

func TestReorderRejectsDifferentIDSet(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	err := s.Reorder([]service.Task{{ID: "other"}})
	if err == nil {
		t.Fatal("expected reorder with mismatched ids to fail")
	}
	if s.CanUndo() {
		t.Error("rejected reorder must not enter history")
	}
}

func TestSessionExpiredPurgesCredential(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	creds := &testutil.FakeCredentials{}

	s := session.New(svc, session.WithCredentials(creds))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	svc.UpdateTaskErr = service.ErrUnauthorized
	_, err := s.CycleStatus(context.Background(), "t1")
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if creds.Cleared != 1 {
		t.Errorf("expected credential cleared once, got %d", creds.Cleared)
	}
	// The optimistic edit in flight is still rolled back.
	if got := s.Tasks()[0].Status; got != service.StatusPending {
		t.Errorf("rollback should apply on session expiry too, got %s", got)
	}
}

func TestUndoRedoAcrossMutations(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("t1", "one", service.StatusPending)
	s := newSession(t, svc)

	if _, err := s.Add(context.Background(), service.Draft{Title: "two"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	added := s.Tasks()[0].ID

	tasks := s.Undo()
	if got := ids(tasks); got != "t1;" {
		t.Errorf("undo should drop the added task, got %s", got)
	}
	tasks = s.Redo()
	if got := ids(tasks); got != added+";t1;" {
		t.Errorf("redo should restore the added task, got %s", got)
	}
}
