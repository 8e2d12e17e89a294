// Package ciutil detects the CI environment and locates the project root,
// so tests that build container images can find the build context no matter
// which directory `go test` runs them from.
package ciutil
