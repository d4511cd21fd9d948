// Package client is the Go consumer of the task tracker API. It persists the
// bearer token across runs, attaches it to every protected request, and
// exposes the identity through an observable Session so callers react to
// transitions instead of poking at auth state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"TASKTRACKER_BACK-END/internal/dto"
)

// ErrUnauthorized is returned when the server rejects the credential.
var ErrUnauthorized = errors.New("not authorized")

// APIError carries a non-2xx response's status and message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to the task tracker backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	session *Session
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		session: NewSession(),
	}
}

// Session exposes the observable session state.
func (c *Client) Session() *Session {
	return c.session
}

// Restore resolves identity from the stored token, once, at startup. A
// rejected token is discarded immediately so it is never replayed in a loop.
func (c *Client) Restore(ctx context.Context) error {
	if _, err := c.tokens.Load(); err != nil {
		if errors.Is(err, ErrNoToken) {
			c.session.set(StateUnauthenticated, nil)
			return nil
		}
		return err
	}

	var resp dto.ProfileResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp, true)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			if clearErr := c.tokens.Clear(); clearErr != nil {
				return clearErr
			}
			c.session.set(StateUnauthenticated, nil)
			return nil
		}
		return err
	}

	c.session.set(StateAuthenticated, &resp.User)
	return nil
}

// Signup registers a new account and starts a session with the returned token.
func (c *Client) Signup(ctx context.Context, name, email, pass string) (*dto.UserResponse, error) {
	body := dto.SignupRequest{Name: name, Email: email, Password: pass}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp, false); err != nil {
		return nil, err
	}
	return c.startSession(&resp)
}

// Login authenticates and starts a session with the returned token.
func (c *Client) Login(ctx context.Context, email, pass string) (*dto.UserResponse, error) {
	body := dto.LoginRequest{Email: email, Password: pass}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	return c.startSession(&resp)
}

// Logout forgets the stored token and drops to unauthenticated.
func (c *Client) Logout() error {
	if err := c.tokens.Clear(); err != nil {
		return err
	}
	c.session.set(StateUnauthenticated, nil)
	return nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CreateTask creates a task owned by the authenticated user.
func (c *Client) CreateTask(ctx context.Context, title, description, status string) (*dto.TaskResponse, error) {
	body := dto.CreateTaskRequest{Title: title, Description: description, Status: status}
	var resp dto.CreateTaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	var resp []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var resp dto.TaskDetailResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// UpdateTask applies a partial update to one task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var resp dto.TaskDetailResponse
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, patch, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// DeleteTask removes one task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, true)
}

func (c *Client) startSession(resp *dto.AuthResponse) (*dto.UserResponse, error) {
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, err
	}
	user := resp.User
	c.session.set(StateAuthenticated, &user)
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, err := c.tokens.Load()
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				return ErrUnauthorized
			}
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
