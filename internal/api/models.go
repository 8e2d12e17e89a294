package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
// Both fields must be present; empty strings are accepted.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// UpdateTaskRequest defines the payload for PUT /api/tasks/{id}.
// Any subset of fields may be sent; absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ToPatch converts the request to a domain.TaskPatch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// changedFields lists the JSON names of the fields present in the request.
func (r UpdateTaskRequest) changedFields() []string {
	var fields []string
	if r.Title != nil {
		fields = append(fields, "title")
	}
	if r.Description != nil {
		fields = append(fields, "description")
	}
	if r.Completed != nil {
		fields = append(fields, "completed")
	}
	return fields
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListResponse is the body of GET /api/tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// RootResponse is the informational body of GET /.
type RootResponse struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	DockerTrack string            `json:"docker_track"`
	Endpoints   map[string]string `json:"endpoints"`
	QuickStart  map[string]string `json:"quick_start"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// tasksToResponse converts tasks to a TaskListResponse. The list is never
// nil so an empty store serializes as [].
func tasksToResponse(tasks []domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return TaskListResponse{Tasks: out, Total: len(out)}
}
