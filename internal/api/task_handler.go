package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskHandler handles task CRUD requests. Each method performs exactly one
// store operation; the store serializes them.
type TaskHandler struct {
	store   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler. A nil emitter discards events.
func NewTaskHandler(taskStore store.TaskStore, emitter events.EventEmitter, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task store cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	if emitter == nil {
		emitter = events.Discard
	}

	return &TaskHandler{
		store:   taskStore,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		h.respondStoreError(w, r, "", err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("listing tasks", slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	task := domain.NewTask(*req.Title, *req.Description)
	if err := h.store.Insert(r.Context(), *task); err != nil {
		h.respondStoreError(w, r, task.ID, err)
		return
	}

	h.emit(r, events.NewEvent(events.TaskCreated, task.ID, slog.String("title", task.Title)))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(*task))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := getPathID(r)

	task, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id} requests.
// Only the fields present in the body are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := getPathID(r)

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.store.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		h.respondStoreError(w, r, id, err)
		return
	}

	h.emit(r, events.NewEvent(events.TaskUpdated, task.ID,
		slog.String("title", task.Title),
		slog.String("fields", strings.Join(req.changedFields(), ","))))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := getPathID(r)

	removed, err := h.store.Remove(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, id, err)
		return
	}
	if !removed {
		h.respondStoreError(w, r, id, store.ErrTaskNotFound)
		return
	}

	h.emit(r, events.NewEvent(events.TaskDeleted, id))
	shared.RespondNoContent(w)
}

// respondStoreError writes the error response for a failed store call.
// Not-found errors carry the requested ID in the message.
func (h *TaskHandler) respondStoreError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if store.IsNotFoundError(err) {
		h.emit(r, events.NewEvent(events.TaskNotFound, id, slog.String("method", r.Method)))
		shared.RespondWithError(w, r, http.StatusNotFound, NotFoundMessage(id))
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// emit publishes an event. Sink failures are logged and never fail the request.
func (h *TaskHandler) emit(r *http.Request, event *events.Event) {
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("failed to emit event",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}
