// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lumina/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. Errors can be injected per method; call counters allow
// asserting that an operation never reached the store.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	next  int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Call counters
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// Seed adds a task directly to the store and returns it.
func (f *FakeService) Seed(id, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: time.Now(),
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, status service.Status) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []service.Task
	for _, t := range f.tasks {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}

	f.next++
	t := service.Task{
		ID:          fmt.Sprintf("fake-%d", f.next),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      service.StatusPending,
		CreatedAt:   time.Now(),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id, title, description string, status service.Status) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Title = title
			f.tasks[i].Description = description
			f.tasks[i].Status = status
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// FakeAuth is an in-memory implementation of service.Auth for testing.
type FakeAuth struct {
	Token     string
	LoginErr  error
	SignupErr error

	LastUsername string
	LastEmail    string
}

// Login implements service.Auth.
func (f *FakeAuth) Login(ctx context.Context, username, password string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.LastUsername = username
	return f.Token, nil
}

// Signup implements service.Auth.
func (f *FakeAuth) Signup(ctx context.Context, username, email, password string) (string, error) {
	if f.SignupErr != nil {
		return "", f.SignupErr
	}
	f.LastUsername = username
	f.LastEmail = email
	return f.Token, nil
}

// FakeCredentials records whether the stored credential was cleared.
type FakeCredentials struct {
	Cleared  int
	ClearErr error
}

// Clear implements session.Credentials.
func (f *FakeCredentials) Clear() error {
	f.Cleared++
	return f.ClearErr
}

// ErrRemote is a generic injectable remote failure.
var ErrRemote = errors.New("remote failure")
