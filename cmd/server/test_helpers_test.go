package main

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/testutils"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration bound to an ephemeral local port.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			LogLevel:        "debug",
			LogFormat:       "json",
			ShutdownTimeout: 2 * time.Second,
		},
		App: config.AppConfig{
			Name:        "Task Management API",
			Version:     "1.0.0",
			Environment: "test",
		},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	app, err := newApplication(testConfig(), slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	return app
}

// newTestServer serves a fresh application's router.
func newTestServer(t *testing.T) (*application, *httptest.Server) {
	t.Helper()
	app := newTestApp(t)
	return app, testutils.CreateTestServer(t, app.setupRouter())
}
