package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Type identifies an extension point.
type Type string

// Event types emitted by the HTTP layer.
const (
	RequestStarted  Type = "request.started"
	RequestFinished Type = "request.finished"
	TaskCreated     Type = "task.created"
	TaskUpdated     Type = "task.updated"
	TaskDeleted     Type = "task.deleted"
	TaskNotFound    Type = "task.not_found"
)

// Event is a single observation published through an EventEmitter.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID

	// Type indicates which extension point produced the event
	Type Type

	// TaskID is the task the event concerns, empty for request events
	TaskID string

	// Attrs carries event-specific structured data
	Attrs []slog.Attr

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time
}

// NewEvent creates an Event of the given type.
func NewEvent(eventType Type, taskID string, attrs ...slog.Attr) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		Attrs:     attrs,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that consume events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that publish events.
// This lets handlers report what happened without knowing who listens.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

type discardEmitter struct{}

func (discardEmitter) EmitEvent(context.Context, *Event) error { return nil }

// Discard is an EventEmitter that drops every event.
var Discard EventEmitter = discardEmitter{}
