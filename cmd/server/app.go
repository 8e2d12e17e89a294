package main

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// The single task store shared by every request goroutine.
	taskStore store.TaskStore

	// Observability sink for request and task events.
	emitter events.EventEmitter
}

// newApplication wires the store and the event emitter. Events are written
// to the application logger.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	emitter := events.NewInMemoryEventEmitter(logger, events.NewLogHandler(logger))

	return &application{
		config:    cfg,
		logger:    logger,
		taskStore: memory.NewTaskStore(),
		emitter:   emitter,
	}, nil
}
