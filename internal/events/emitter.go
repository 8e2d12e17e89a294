package events

import (
	"context"
	"log/slog"
)

// InMemoryEventEmitter is a simple implementation of the EventEmitter interface
// that dispatches events synchronously, on the caller's goroutine, to the
// handlers it was built with. The handler list never changes, so concurrent
// emits need no locking.
type InMemoryEventEmitter struct {
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger, handlers ...EventHandler) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: append(make([]EventHandler, 0, len(handlers)), handlers...),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	var firstErr error
	for i, handler := range e.handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
