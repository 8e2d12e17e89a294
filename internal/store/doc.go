// Package store defines interfaces for task storage operations.
// These interfaces abstract the underlying storage mechanism from
// the HTTP layer, so handlers depend on behavior rather than on a
// concrete map or database.
package store
