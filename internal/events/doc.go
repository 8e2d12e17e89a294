// Package events provides the observability hooks of the service.
//
// HTTP handlers and middleware emit an Event at each defined extension point
// (request start and end, an applied task mutation, a lookup that found
// nothing) without knowing which sinks consume it. LogHandler is the default
// sink and writes every event as a structured log record.
//
// The primary components are:
// - Event: a single observation with its type and attributes
// - EventHandler: Interface for components that consume events
// - EventEmitter: Interface for components that publish events
package events
