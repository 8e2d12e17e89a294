package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
	})
	return server
}

// CleanupResponseBody registers a cleanup function to close the response body
// to prevent resource leaks.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// ExecuteRawRequest sends body verbatim. An empty body sends no body at all.
// headers are key/value pairs.
func ExecuteRawRequest(
	t *testing.T,
	server *httptest.Server,
	method, path, body string,
	headers ...string,
) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	require.True(t, len(headers)%2 == 0, "headers must be key/value pairs")
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute %s %s", method, path)
	CleanupResponseBody(t, resp)
	return resp
}

// ExecuteJSONRequest marshals body to JSON and sends it. A nil body sends no body.
func ExecuteJSONRequest(
	t *testing.T,
	server *httptest.Server,
	method, path string,
	body interface{},
) *http.Response {
	t.Helper()

	if body == nil {
		return ExecuteRawRequest(t, server, method, path, "")
	}

	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err, "Failed to marshal request body")
	return ExecuteRawRequest(t, server, method, path, string(bodyBytes))
}

// DecodeJSONResponse decodes the response body into v.
func DecodeJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.NoError(t, json.Unmarshal(body, v), "Failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse checks that a response carries the expected status
// and exact error message.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedMessage string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var errResp shared.ErrorResponse
	DecodeJSONResponse(t, resp, &errResp)
	assert.Equal(t, expectedMessage, errResp.Error)
}
