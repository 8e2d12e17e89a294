// Package memory provides the in-memory implementation of the storage
// interfaces defined in the internal/store package. All state lives in a
// single map guarded by one mutex and is lost when the process exits.
package memory
