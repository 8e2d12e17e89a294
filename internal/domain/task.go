package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work tracked by the API.
// The ID and CreatedAt fields never change after creation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a pending Task with a freshly generated ID.
// CreatedAt and UpdatedAt share a single timestamp.
func NewTask(title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the invariants the store relies on.
// Title and description may be empty: only their presence at creation is
// enforced, and that happens at the API boundary.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTaskID)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidTimestamps)
	}
	return nil
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply writes the present fields onto t and refreshes UpdatedAt.
// UpdatedAt never moves backwards, even if the wall clock does.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}

	now = now.UTC()
	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	t.UpdatedAt = now
}
