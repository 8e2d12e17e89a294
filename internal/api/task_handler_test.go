package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskStore is a mock implementation of store.TaskStore for testing
type MockTaskStore struct {
	ListFn   func(ctx context.Context) ([]domain.Task, error)
	GetFn    func(ctx context.Context, id string) (domain.Task, error)
	InsertFn func(ctx context.Context, task domain.Task) error
	UpdateFn func(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	RemoveFn func(ctx context.Context, id string) (bool, error)
	CountFn  func(ctx context.Context) (int, int, error)
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskStore) Get(ctx context.Context, id string) (domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return domain.Task{}, store.ErrTaskNotFound
}

func (m *MockTaskStore) Insert(ctx context.Context, task domain.Task) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return domain.Task{}, store.ErrTaskNotFound
}

func (m *MockTaskStore) Remove(ctx context.Context, id string) (bool, error) {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, id)
	}
	return false, nil
}

func (m *MockTaskStore) Count(ctx context.Context) (int, int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, 0, nil
}

// recordingEmitter collects emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []events.Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]events.Type, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTaskRouter mounts the handler on a chi router so path params resolve.
func newTaskRouter(h *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeTask(t *testing.T, rr *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var resp TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestNewTaskHandler(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, nil, discardLogger()) })
	assert.Panics(t, func() { NewTaskHandler(memory.NewTaskStore(), nil, nil) })

	h := NewTaskHandler(memory.NewTaskStore(), nil, discardLogger())
	assert.Equal(t, events.Discard, h.emitter)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedErr    string
	}{
		{
			name:           "valid",
			body:           `{"title":"Learn Docker","description":"Complete tutorial"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty_strings_accepted",
			body:           `{"title":"","description":""}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_description",
			body:           `{"title":"x"}`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid description: required field",
		},
		{
			name:           "missing_both",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid title: required field; Invalid description: required field",
		},
		{
			name:           "malformed_json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid request format",
		},
		{
			name:           "empty_body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid request format",
		},
		{
			name:           "stray_closing_brace",
			body:           `{"title":"a","description":"b"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid request format",
		},
		{
			name:           "stray_closing_bracket",
			body:           `{"title":"a","description":"b"}]`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid request format",
		},
		{
			name:           "wrong_type",
			body:           `{"title":1,"description":"d"}`,
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "Invalid request format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := memory.NewTaskStore()
			emitter := &recordingEmitter{}
			router := newTaskRouter(NewTaskHandler(s, emitter, discardLogger()))

			rr := doRequest(t, router, http.MethodPost, "/api/tasks", tc.body)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			if tc.expectedErr != "" {
				assert.Equal(t, tc.expectedErr, decodeError(t, rr)["error"])
				total, _, err := s.Count(context.Background())
				require.NoError(t, err)
				assert.Zero(t, total, "failed create must not store anything")
				assert.Empty(t, emitter.types())
				return
			}

			resp := decodeTask(t, rr)
			assert.NotEmpty(t, resp.ID)
			assert.False(t, resp.Completed)
			assert.True(t, resp.CreatedAt.Equal(resp.UpdatedAt))

			stored, err := s.Get(context.Background(), resp.ID)
			require.NoError(t, err)
			assert.Equal(t, resp.Title, stored.Title)
			assert.Equal(t, []events.Type{events.TaskCreated}, emitter.types())
		})
	}
}

func TestTaskHandler_CreateTaskStoreFailure(t *testing.T) {
	logBuf, _ := logger.SetupTestLogger(t, nil)
	mockStore := &MockTaskStore{
		InsertFn: func(ctx context.Context, task domain.Task) error {
			return errors.New("postgres://admin:secret@db:5432 unavailable")
		},
	}
	router := newTaskRouter(NewTaskHandler(mockStore, nil, discardLogger()))

	rr := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"a","description":"b"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "An unexpected error occurred")
	assert.NotContains(t, body, "secret")

	entries := logBuf.FindEntries(t, "API error response")
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.NotContains(t, logBuf.String(), "secret", "logged error must be redacted")
}

func TestTaskHandler_CreateTaskValidationLogsAtWarn(t *testing.T) {
	logBuf, _ := logger.SetupTestLogger(t, nil)
	router := newTaskRouter(NewTaskHandler(memory.NewTaskStore(), nil, discardLogger()))

	rr := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"a"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	entries := logBuf.FindEntries(t, "API error response")
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "Invalid description: required field", entries[0]["user_message"])
}

func TestTaskHandler_ListTasks(t *testing.T) {
	s := memory.NewTaskStore()
	router := newTaskRouter(NewTaskHandler(s, nil, discardLogger()))

	t.Run("empty", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/tasks", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"tasks":[],"total":0}`, rr.Body.String())
	})

	t.Run("populated", func(t *testing.T) {
		for _, title := range []string{"a", "b", "c"} {
			require.NoError(t, s.Insert(context.Background(), *domain.NewTask(title, "d")))
		}

		rr := doRequest(t, router, http.MethodGet, "/api/tasks", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp TaskListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 3, resp.Total)
		assert.Len(t, resp.Tasks, 3)
	})

	t.Run("store_failure", func(t *testing.T) {
		mockStore := &MockTaskStore{
			ListFn: func(ctx context.Context) ([]domain.Task, error) {
				return nil, errors.New("boom")
			},
		}
		rr := doRequest(t, newTaskRouter(NewTaskHandler(mockStore, nil, discardLogger())),
			http.MethodGet, "/api/tasks", "")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	s := memory.NewTaskStore()
	task := domain.NewTask("Learn Docker", "Complete tutorial")
	require.NoError(t, s.Insert(context.Background(), *task))

	emitter := &recordingEmitter{}
	router := newTaskRouter(NewTaskHandler(s, emitter, discardLogger()))

	t.Run("found", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/tasks/"+task.ID, "")
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeTask(t, rr)
		assert.Equal(t, task.ID, resp.ID)
		assert.Equal(t, "Learn Docker", resp.Title)
		assert.Equal(t, "Complete tutorial", resp.Description)
	})

	t.Run("not_found", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/tasks/nope", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Task with id nope not found"}`, rr.Body.String())
		assert.Equal(t, []events.Type{events.TaskNotFound}, emitter.types())
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Minute)

	newFixture := func(t *testing.T) (*memory.TaskStore, domain.Task, *recordingEmitter, http.Handler) {
		t.Helper()
		s := memory.NewTaskStore(memory.WithClock(func() time.Time { return later }))
		task := domain.Task{
			ID:          "task-1",
			Title:       "Learn Docker",
			Description: "Complete tutorial",
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		require.NoError(t, s.Insert(context.Background(), task))
		emitter := &recordingEmitter{}
		return s, task, emitter, newTaskRouter(NewTaskHandler(s, emitter, discardLogger()))
	}

	t.Run("partial_update", func(t *testing.T) {
		_, task, emitter, router := newFixture(t)

		rr := doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID, `{"completed":true}`)
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeTask(t, rr)
		assert.True(t, resp.Completed)
		assert.Equal(t, task.Title, resp.Title)
		assert.Equal(t, task.Description, resp.Description)
		assert.True(t, resp.CreatedAt.Equal(created))
		assert.True(t, resp.UpdatedAt.Equal(later))

		require.Len(t, emitter.events, 1)
		assert.Equal(t, events.TaskUpdated, emitter.events[0].Type)
		assert.Equal(t, task.ID, emitter.events[0].TaskID)
	})

	t.Run("empty_body_object_refreshes_timestamp", func(t *testing.T) {
		_, task, _, router := newFixture(t)

		rr := doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID, `{}`)
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeTask(t, rr)
		assert.Equal(t, task.Title, resp.Title)
		assert.False(t, resp.Completed)
		assert.True(t, resp.UpdatedAt.Equal(later))
	})

	t.Run("all_fields", func(t *testing.T) {
		s, task, _, router := newFixture(t)

		rr := doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID,
			`{"title":"New","description":"","completed":true}`)
		require.Equal(t, http.StatusOK, rr.Code)

		stored, err := s.Get(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", stored.Title)
		assert.Equal(t, "", stored.Description)
		assert.True(t, stored.Completed)
	})

	t.Run("not_found", func(t *testing.T) {
		_, _, emitter, router := newFixture(t)

		rr := doRequest(t, router, http.MethodPut, "/api/tasks/missing", `{"completed":true}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Task with id missing not found"}`, rr.Body.String())
		assert.Equal(t, []events.Type{events.TaskNotFound}, emitter.types())
	})

	t.Run("malformed_json", func(t *testing.T) {
		s, task, _, router := newFixture(t)

		rr := doRequest(t, router, http.MethodPut, "/api/tasks/"+task.ID, `{"completed":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, rr)["error"])

		stored, err := s.Get(context.Background(), task.ID)
		require.NoError(t, err)
		assert.True(t, stored.UpdatedAt.Equal(created), "rejected update must not touch the task")
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	s := memory.NewTaskStore()
	task := domain.NewTask("a", "b")
	require.NoError(t, s.Insert(context.Background(), *task))

	emitter := &recordingEmitter{}
	router := newTaskRouter(NewTaskHandler(s, emitter, discardLogger()))

	rr := doRequest(t, router, http.MethodDelete, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())

	rr = doRequest(t, router, http.MethodGet, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, "/api/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Task with id `+task.ID+` not found"}`, rr.Body.String())

	assert.Equal(t,
		[]events.Type{events.TaskDeleted, events.TaskNotFound, events.TaskNotFound},
		emitter.types())
}

func TestTaskHandler_DeleteTaskStoreFailure(t *testing.T) {
	mockStore := &MockTaskStore{
		RemoveFn: func(ctx context.Context, id string) (bool, error) {
			return false, errors.New("boom")
		},
	}
	router := newTaskRouter(NewTaskHandler(mockStore, nil, discardLogger()))

	rr := doRequest(t, router, http.MethodDelete, "/api/tasks/x", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTaskHandler_EmitterFailureDoesNotFailRequest(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logBuf, nil))
	emitter := &recordingEmitter{err: errors.New("sink down")}
	router := newTaskRouter(NewTaskHandler(memory.NewTaskStore(), emitter, log))

	rr := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"a","description":"b"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, logBuf.String(), "failed to emit event")
}
