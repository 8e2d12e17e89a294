// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskID is returned when a task has no identifier.
	ErrEmptyTaskID = errors.New("task ID cannot be empty")

	// ErrInvalidTimestamps is returned when a task was updated before it was created.
	ErrInvalidTimestamps = errors.New("task updated_at precedes created_at")
)
