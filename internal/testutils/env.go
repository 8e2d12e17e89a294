package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupEnv sets environment variables for the duration of a test and
// returns a function that restores the previous values. Variables that
// were unset before are unset again.
//
//	cleanup := testutils.SetupEnv(t, map[string]string{"PORT": "9090"})
//	defer cleanup()
func SetupEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()

	type saved struct {
		value string
		set   bool
	}
	original := make(map[string]saved, len(envVars))
	for name := range envVars {
		value, set := os.LookupEnv(name)
		original[name] = saved{value: value, set: set}
	}

	for name, value := range envVars {
		require.NoError(t, os.Setenv(name, value), "Failed to set environment variable %s", name)
	}

	return func() {
		for name, prev := range original {
			var err error
			if prev.set {
				err = os.Setenv(name, prev.value)
			} else {
				err = os.Unsetenv(name)
			}
			if err != nil {
				t.Logf("Warning: failed to restore environment variable %s: %v", name, err)
			}
		}
	}
}
