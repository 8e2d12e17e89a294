package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/spf13/pflag"
)

// loadAppConfig loads the application configuration from flags, environment
// variables or a config file.
func loadAppConfig(fs *pflag.FlagSet, configFile string) (*config.Config, error) {
	cfg, err := config.Load(config.WithFlags(fs), config.WithConfigFile(configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"addr", cfg.Server.Addr(),
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.App.Environment)

	return cfg, nil
}
