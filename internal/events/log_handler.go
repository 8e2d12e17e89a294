package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

// LogHandler writes every event as a structured log record. It prefers the
// request-scoped logger carried in ctx so records keep their trace ID.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler that falls back to l when the context
// carries no logger.
func NewLogHandler(l *slog.Logger) *LogHandler {
	return &LogHandler{logger: l}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	attrs := make([]slog.Attr, 0, len(event.Attrs)+2)
	attrs = append(attrs, slog.String("event", string(event.Type)))
	if event.TaskID != "" {
		attrs = append(attrs, slog.String("task_id", event.TaskID))
	}
	attrs = append(attrs, event.Attrs...)

	log.LogAttrs(ctx, levelFor(event.Type), messageFor(event.Type), attrs...)
	return nil
}

func levelFor(t Type) slog.Level {
	switch t {
	case RequestStarted:
		return slog.LevelDebug
	case TaskNotFound:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func messageFor(t Type) string {
	switch t {
	case RequestStarted:
		return "request started"
	case RequestFinished:
		return "request completed"
	case TaskCreated:
		return "task created"
	case TaskUpdated:
		return "task updated"
	case TaskDeleted:
		return "task deleted"
	case TaskNotFound:
		return "task not found"
	default:
		return string(t)
	}
}
