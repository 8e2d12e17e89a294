// Package middleware provides HTTP middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that assigns each request a trace ID,
// stores a logger scoped to that trace ID in the request context, and emits
// request.started and request.finished events.
//
// A trace ID supplied by the client in the X-Trace-Id header is reused.
// Otherwise the request ID set by chi's RequestID middleware is used, and
// a fresh ID is generated when neither is present. The trace ID is echoed
// back in the X-Trace-Id response header.
func NewTraceMiddleware(log *slog.Logger, emitter events.EventEmitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(shared.TraceIDHeader)
			if id == "" {
				id = chimiddleware.GetReqID(r.Context())
			}
			ctx := shared.WithTraceID(r.Context(), id)
			traceID := shared.GetTraceID(ctx)
			ctx = logger.WithLogger(ctx, log.With(slog.String("trace_id", traceID)))
			r = r.WithContext(ctx)

			w.Header().Set(shared.TraceIDHeader, traceID)

			emit(r, emitter, events.NewEvent(events.RequestStarted, "",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr)))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				emit(r, emitter, events.NewEvent(events.RequestFinished, "",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start))))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// emit publishes an event, logging rather than failing on sink errors.
func emit(r *http.Request, emitter events.EventEmitter, event *events.Event) {
	if err := emitter.EmitEvent(r.Context(), event); err != nil {
		logger.FromContext(r.Context()).Warn("failed to emit event",
			"event_type", event.Type,
			"error", err)
	}
}
