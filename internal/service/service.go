// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when the store rejects the stored credential.
// Callers treat it as a session-expired condition: the credential must be
// discarded and the user sent back to authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when the store does not know the given task id.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task store operations.
// All network calls go through this interface; the coordinator and the
// presentation layer never talk HTTP directly.
type Service interface {
	// ListTasks returns all tasks, optionally filtered by status.
	// An empty status means no filter. Results are in store order
	// (newest first).
	ListTasks(ctx context.Context, status Status) ([]Task, error)

	// CreateTask creates a new task from the draft and returns the
	// store's record of it (id and creation time assigned).
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// UpdateTask replaces title, description and status of the task
	// with the given id and returns the updated record.
	UpdateTask(ctx context.Context, id, title, description string, status Status) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id string) error
}

// Auth defines the interface to the authentication gate. It is separate
// from Service because its calls carry no credential.
type Auth interface {
	// Login exchanges username and password for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// Signup registers a new account and returns a bearer token.
	Signup(ctx context.Context, username, email, password string) (string, error)
}
