// Package config handles configuration loading, parsing, and validation
// from various sources (flags, environment variables, files). It provides
// type-safe access to the settings the server needs while keeping
// configuration details out of the HTTP and storage layers.
package config
