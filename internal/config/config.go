package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	App    AppConfig    `mapstructure:"app"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             validate:"required"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// AppConfig describes the running service. These values are reported by
// the root and health endpoints and never change after startup.
type AppConfig struct {
	Name        string `mapstructure:"name"        validate:"required"`
	Version     string `mapstructure:"version"     validate:"required"`
	Environment string `mapstructure:"environment" validate:"required"`
}

// Addr returns the host:port pair the server listens on.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
