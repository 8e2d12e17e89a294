package main

import (
	"testing"

	"github.com/phrazzld/task-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "task-api", cmd.Use)
	for _, name := range []string{"host", "port", "log-level", "config"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should be registered", name)
	}
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	cleanup := testutils.SetupEnv(t, map[string]string{
		"HOST":      "127.0.0.1",
		"LOG_LEVEL": "info",
	})
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{"bad_log_level", []string{"--log-level", "verbose"}},
		{"port_out_of_range", []string{"--port", "70000"}},
		{"missing_config_file", []string{"--config", "/nonexistent/config.yaml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetArgs(tc.args)
			cmd.SilenceErrors = true

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to load configuration")
		})
	}
}
