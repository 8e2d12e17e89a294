package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a single mutex.
// Every method holds the lock for its whole read-modify-write sequence, so
// no caller can observe a partially updated task. Tasks are stored and
// returned by value.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
	now   func() time.Time
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the time source used to refresh UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ store.TaskStore = (*TaskStore)(nil)

// List returns a snapshot of every task. Order is unspecified.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out, nil
}

// Get returns the task with the given ID or store.ErrTaskNotFound.
func (s *TaskStore) Get(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return t, nil
}

// Insert adds a new task.
func (s *TaskStore) Insert(ctx context.Context, task domain.Task) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "insert", "validation failed", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return store.ErrTaskExists
	}
	s.tasks[task.ID] = task
	return nil
}

// Update applies patch to the stored task and returns the result.
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}

	patch.Apply(&t, s.now())
	s.tasks[id] = t
	return t, nil
}

// Remove deletes the task and reports whether it existed.
func (s *TaskStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

// Count returns the total and completed counts under one lock hold.
func (s *TaskStore) Count(ctx context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := 0
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return len(s.tasks), completed, nil
}
