package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/store"
)

// MetricsContentType is the Prometheus text exposition content type.
const MetricsContentType = "text/plain; version=0.0.4; charset=utf-8"

const metricsTemplate = `# HELP tasks_total Total number of tasks
# TYPE tasks_total counter
tasks_total %d

# HELP tasks_completed Number of completed tasks
# TYPE tasks_completed gauge
tasks_completed %d

# HELP tasks_pending Number of pending tasks
# TYPE tasks_pending gauge
tasks_pending %d
`

// SystemHandler serves the informational root, health and metrics endpoints.
type SystemHandler struct {
	app    config.AppConfig
	store  store.TaskStore
	now    func() time.Time
	logger *slog.Logger
}

// NewSystemHandler creates a SystemHandler. The environment reported by
// /health is taken from app, which is read once at startup.
func NewSystemHandler(app config.AppConfig, taskStore store.TaskStore, logger *slog.Logger) *SystemHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task store cannot be nil for SystemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SystemHandler")
	}

	return &SystemHandler{
		app:    app,
		store:  taskStore,
		now:    time.Now,
		logger: logger.With(slog.String("component", "system_handler")),
	}
}

// WithClock replaces the time source used for health timestamps.
func (h *SystemHandler) WithClock(now func() time.Time) *SystemHandler {
	h.now = now
	return h
}

// Root handles GET / requests.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{
		Message:     "Task Management API - Go Edition",
		Version:     h.app.Version,
		DockerTrack: "go",
		Endpoints: map[string]string{
			"health":  "/health",
			"tasks":   "/api/tasks",
			"metrics": "/metrics",
		},
		QuickStart: map[string]string{
			"create_task": "POST /api/tasks",
			"list_tasks":  "GET /api/tasks",
		},
	})
}

// Health handles GET /health requests.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     h.app.Version,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Environment: h.app.Environment,
		Database:    "in-memory",
	})
}

// Metrics handles GET /metrics requests with task counters in the
// Prometheus text format.
func (h *SystemHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	total, completed, err := h.store.Count(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, MetricsContentType, RenderMetrics(total, completed))
}

// RenderMetrics formats the task counters. pending is derived from the same
// snapshot so total == completed + pending.
func RenderMetrics(total, completed int) string {
	return fmt.Sprintf(metricsTemplate, total, completed, total-completed)
}
