package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not_found", store.ErrNotFound, http.StatusNotFound},
		{"task_not_found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped_not_found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"duplicate", store.ErrTaskExists, http.StatusConflict},
		{"invalid_entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain_validation", domain.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Task already exists", GetSafeErrorMessage(store.ErrTaskExists))
	assert.Equal(t, "Invalid task data", GetSafeErrorMessage(domain.ErrValidation))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	leaky := errors.New("dial tcp 10.0.0.5:5432: password=hunter2")
	msg := GetSafeErrorMessage(leaky)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "hunter2")
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Task with id abc-123 not found", NotFoundMessage("abc-123"))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Run("validator_errors", func(t *testing.T) {
		title := "only title"
		err := shared.ValidateRequest(&CreateTaskRequest{Title: &title})
		require.Error(t, err)
		assert.Equal(t, "Invalid description: required field", SanitizeValidationError(err))
	})

	t.Run("other_error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("x")))
	})
}

func TestGetValidationTagMessage(t *testing.T) {
	assert.Equal(t, "required field", getValidationTagMessage("required"))
	assert.Equal(t, "too short", getValidationTagMessage("min"))
	assert.Equal(t, "too long", getValidationTagMessage("max"))
	assert.Equal(t, "validation failed", getValidationTagMessage("email"))
}
