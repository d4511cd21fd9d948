package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TASKTRACKER_BACK-END/internal/config"
	"TASKTRACKER_BACK-END/internal/dto"
	"TASKTRACKER_BACK-END/internal/handlers"
	"TASKTRACKER_BACK-END/internal/middleware"
	"TASKTRACKER_BACK-END/internal/routes"
	"TASKTRACKER_BACK-END/internal/store"
	"TASKTRACKER_BACK-END/internal/token"
)

type testServer struct {
	*httptest.Server
	users *store.MemoryUserRepository
	tasks *store.MemoryTaskRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	codec := token.NewCodec(&config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour})
	users := store.NewMemoryUserRepository()
	tasks := store.NewMemoryTaskRepository()
	authn := middleware.NewAuthenticator(codec, users)

	mux := routes.SetupRoutes(
		handlers.NewAuthHandler(users, codec),
		handlers.NewTasksHandler(tasks),
		handlers.NewHealthHandler(nil),
		authn,
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, users: users, tasks: tasks}
}

func (ts *testServer) request(t *testing.T, method, path, bearer string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (ts *testServer) signup(t *testing.T, name, email, pass string) dto.AuthResponse {
	t.Helper()

	resp, body := ts.request(t, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"name": name, "email": email, "password": pass})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup failed: %s", body)

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth
}

func (ts *testServer) createTask(t *testing.T, bearer, title string) dto.TaskResponse {
	t.Helper()

	resp, body := ts.request(t, http.MethodPost, "/api/tasks", bearer,
		map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create task failed: %s", body)

	var created dto.CreateTaskResponse
	require.NoError(t, json.Unmarshal(body, &created))
	return created.Task
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Message
}

func TestSignup(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, body := ts.request(t, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"name": "Ann", "email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "Ann", auth.User.Name)
	assert.Equal(t, "ann@x.com", auth.User.Email)
	assert.NotEmpty(t, auth.User.ID)

	// the user object must not carry any password material
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	var userFields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["user"], &userFields))
	assert.NotContains(t, userFields, "password")
	assert.NotContains(t, userFields, "password_hash")
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	for _, payload := range []map[string]string{
		{"email": "ann@x.com", "password": "secret1"},
		{"name": "Ann", "password": "secret1"},
		{"name": "Ann", "email": "ann@x.com"},
	} {
		resp, body := ts.request(t, http.MethodPost, "/api/auth/signup", "", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "All fields are required", errorMessage(t, body))
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.signup(t, "Ann", "ann@x.com", "secret1")

	// same email, different case: still a duplicate
	resp, body := ts.request(t, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"name": "Ann Again", "email": "Ann@X.com", "password": "secret2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", errorMessage(t, body))
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.signup(t, "Ann", "ann@x.com", "secret1")

	resp, body := ts.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "ann@x.com", auth.User.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.signup(t, "Ann", "ann@x.com", "secret1")

	// wrong password and unknown email read identically
	for _, payload := range []map[string]string{
		{"email": "ann@x.com", "password": "wrong"},
		{"email": "ghost@x.com", "password": "secret1"},
	} {
		resp, body := ts.request(t, http.MethodPost, "/api/auth/login", "", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid email or password", errorMessage(t, body))
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")

	resp, body := ts.request(t, http.MethodGet, "/api/auth/profile", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, auth.User.ID, profile.User.ID)
	assert.Equal(t, "ann@x.com", profile.User.Email)
}

func TestProtectedEndpoints_RequireToken(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	endpoints := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/profile"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/00000000-0000-0000-0000-000000000000"},
		{http.MethodPut, "/api/tasks/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/api/tasks/00000000-0000-0000-0000-000000000000"},
	}
	for _, e := range endpoints {
		resp, _ := ts.request(t, e.method, e.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", e.method, e.path)
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")

	resp, body := ts.request(t, http.MethodPost, "/api/tasks", auth.Token,
		map[string]string{"title": "write report", "description": "quarterly numbers"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.CreateTaskResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "write report", created.Task.Title)
	assert.Equal(t, "quarterly numbers", created.Task.Description)
	assert.Equal(t, "pending", created.Task.Status)
	assert.Equal(t, auth.User.ID, created.Task.OwnerID)
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")

	resp, body := ts.request(t, http.MethodPost, "/api/tasks", auth.Token,
		map[string]string{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title is required", errorMessage(t, body))

	resp, _ = ts.request(t, http.MethodPost, "/api/tasks", auth.Token,
		map[string]string{"title": "ok", "status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListTasks_NewestFirst(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")

	first := ts.createTask(t, auth.Token, "first")
	second := ts.createTask(t, auth.Token, "second")

	resp, body := ts.request(t, http.MethodGet, "/api/tasks", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(body, &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestGetTask(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")
	task := ts.createTask(t, auth.Token, "mine")

	resp, body := ts.request(t, http.MethodGet, "/api/tasks/"+task.ID, auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail dto.TaskDetailResponse
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, task.ID, detail.Task.ID)

	// unknown ids and non-UUID ids are both plain 404s
	for _, id := range []string{"11111111-1111-1111-1111-111111111111", "not-a-uuid"} {
		resp, body := ts.request(t, http.MethodGet, "/api/tasks/"+id, auth.Token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Task not found", errorMessage(t, body))
	}
}

// Another user's task must look exactly like a missing task.
func TestTaskOwnershipIsolation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ann := ts.signup(t, "Ann", "ann@x.com", "secret1")
	bob := ts.signup(t, "Bob", "bob@x.com", "secret2")
	task := ts.createTask(t, ann.Token, "ann's task")

	checks := []struct {
		method string
		body   interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"title": "hijacked"}},
		{http.MethodDelete, nil},
	}
	for _, c := range checks {
		resp, body := ts.request(t, c.method, "/api/tasks/"+task.ID, bob.Token, c.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s as non-owner", c.method)
		assert.Equal(t, "Task not found", errorMessage(t, body))
	}

	// and Bob's list stays empty
	resp, body := ts.request(t, http.MethodGet, "/api/tasks", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(body, &tasks))
	assert.Empty(t, tasks)

	// Ann still owns her task, title intact
	resp, body = ts.request(t, http.MethodGet, "/api/tasks/"+task.ID, ann.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.TaskDetailResponse
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "ann's task", detail.Task.Title)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")
	task := ts.createTask(t, auth.Token, "write report")

	resp, body := ts.request(t, http.MethodPut, "/api/tasks/"+task.ID, auth.Token,
		map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail dto.TaskDetailResponse
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "completed", detail.Task.Status)
	assert.Equal(t, "write report", detail.Task.Title)

	// empty patch changes nothing; unknown fields are ignored
	resp, body = ts.request(t, http.MethodPut, "/api/tasks/"+task.ID, auth.Token,
		map[string]string{"bogus": "field"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "completed", detail.Task.Status)
	assert.Equal(t, "write report", detail.Task.Title)

	// PATCH works the same as PUT
	resp, body = ts.request(t, http.MethodPatch, "/api/tasks/"+task.ID, auth.Token,
		map[string]string{"title": "finish report"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "finish report", detail.Task.Title)

	resp, body = ts.request(t, http.MethodPut, "/api/tasks/"+task.ID, auth.Token,
		map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "status must be pending, in-progress, or completed", errorMessage(t, body))
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")
	task := ts.createTask(t, auth.Token, "ephemeral")

	resp, body := ts.request(t, http.MethodDelete, "/api/tasks/"+task.ID, auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "{}", string(body))

	resp, body = ts.request(t, http.MethodGet, "/api/tasks/"+task.ID, auth.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", errorMessage(t, body))

	resp, _ = ts.request(t, http.MethodDelete, "/api/tasks/"+task.ID, auth.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTokenOfDeletedUserIsRejected(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := ts.signup(t, "Ann", "ann@x.com", "secret1")

	// remove the subject behind a live token
	ts.users.Remove(uuid.MustParse(auth.User.ID))

	resp, _ := ts.request(t, http.MethodGet, "/api/auth/profile", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
