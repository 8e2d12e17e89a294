package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task storage.
// Every method is atomic with respect to every other method; there is no
// multi-task transaction support.
type TaskStore interface {
	// List returns a snapshot of all tasks. Order is unspecified.
	List(ctx context.Context) ([]domain.Task, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id string) (domain.Task, error)

	// Insert adds a new task. The caller generates the ID.
	// Returns ErrInvalidEntity if the task fails validation and
	// ErrTaskExists if the ID is already taken.
	Insert(ctx context.Context, task domain.Task) error

	// Update applies the present fields of patch and refreshes UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)

	// Remove deletes a task and reports whether it was present.
	Remove(ctx context.Context, id string) (bool, error)

	// Count returns the total and completed task counts from a single
	// consistent view of the store.
	Count(ctx context.Context) (total int, completed int, err error)
}
