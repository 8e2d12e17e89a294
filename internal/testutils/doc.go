// Package testutils provides HTTP and environment helpers shared by the
// package tests.
//
// Typical use against a router:
//
//	server := testutils.CreateTestServer(t, router)
//	resp := testutils.ExecuteJSONRequest(t, server, http.MethodPost, "/api/tasks",
//	    map[string]string{"title": "a", "description": "b"})
//	var task api.TaskResponse
//	testutils.DecodeJSONResponse(t, resp, &task)
//
// Response bodies are closed via t.Cleanup, so callers never close them.
package testutils
