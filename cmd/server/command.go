package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRootCommand builds the task-api command. Flags override environment
// variables and the optional config file.
func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "task-api",
		Short:        "Serve the Task Management API",
		Long:         `Serve CRUD over an in-memory task collection, plus /health and /metrics. Data does not survive a restart.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp(cmd, configFile)
			if err != nil {
				return err
			}
			return app.run(cmd.Context())
		},
	}

	cmd.Flags().String("host", "", "Interface to bind (default 0.0.0.0, env HOST)")
	cmd.Flags().Int("port", 0, "Port to listen on (default 8080, env PORT)")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to a config file")

	return cmd
}

// initializeApp loads configuration and sets up application components.
func initializeApp(cmd *cobra.Command, configFile string) (*application, error) {
	cfg, err := loadAppConfig(cmd.Flags(), configFile)
	if err != nil {
		return nil, err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return nil, err
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return app, nil
}
