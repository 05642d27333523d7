// Package luminahttp implements the service interfaces over the lumina
// task store's HTTP API.
package luminahttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lumina/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service and service.Auth against the REST
// API exposed by luminad.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the store at baseURL. The bearer token is
// attached to every task request; it may be empty for a client that is
// only used for login/signup.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}
}

// SetToken replaces the bearer credential, e.g. after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = token
}

type taskJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (t taskJSON) toTask() service.Task {
	created, _ := time.Parse(time.RFC3339, t.CreatedAt)
	return service.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      service.Status(t.Status),
		CreatedAt:   created,
	}
}

// ListTasks returns all tasks, optionally filtered by status.
func (c *Client) ListTasks(ctx context.Context, status service.Status) ([]service.Task, error) {
	path := "/todos"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var raw []taskJSON
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &raw); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(raw))
	for _, r := range raw {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// CreateTask creates a new task and returns the store's record of it.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	body := map[string]any{
		"title":       draft.Title,
		"description": draft.Description,
		"status":      string(service.StatusPending),
	}

	var raw taskJSON
	if err := c.do(ctx, http.MethodPost, "/todos", body, http.StatusCreated, &raw); err != nil {
		return service.Task{}, err
	}
	return raw.toTask(), nil
}

// UpdateTask replaces the task's title, description and status.
func (c *Client) UpdateTask(ctx context.Context, id, title, description string, status service.Status) (service.Task, error) {
	body := map[string]any{
		"title":       title,
		"description": description,
		"status":      string(status),
	}

	var raw taskJSON
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), body, http.StatusOK, &raw); err != nil {
		return service.Task{}, err
	}
	return raw.toTask(), nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

// Login exchanges username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
}

// Signup registers a new account and returns a bearer token.
func (c *Client) Signup(ctx context.Context, username, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/signup", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := c.send(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", wrapError(resp.StatusCode, data)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("malformed response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("malformed response: missing access_token")
	}
	return out.AccessToken, nil
}

// do issues one authenticated request and decodes the response into out
// when the expected status is returned. Any other status is mapped
// through wrapError.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != want {
		return wrapError(resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request timed out")
		}
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	return resp, nil
}

// wrapError maps an error status to the service error taxonomy. The
// server's {message} body is carried along when present.
func wrapError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	switch status {
	case http.StatusUnauthorized:
		if payload.Message != "" {
			return fmt.Errorf("%w: %s", service.ErrUnauthorized, payload.Message)
		}
		return service.ErrUnauthorized
	case http.StatusNotFound:
		if payload.Message != "" {
			return fmt.Errorf("%w: %s", service.ErrNotFound, payload.Message)
		}
		return service.ErrNotFound
	}
	if payload.Message != "" {
		return fmt.Errorf("server error (%d): %s", status, payload.Message)
	}
	return fmt.Errorf("server error (%d)", status)
}
