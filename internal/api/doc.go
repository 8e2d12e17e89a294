// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between HTTP clients and the
// task store, translating HTTP concerns to store operations and reporting
// each outcome through the injected event emitter.
package api
