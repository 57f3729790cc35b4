package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-report-api/internal/config"
	"github.com/yukikurage/task-report-api/internal/database"
	"github.com/yukikurage/task-report-api/internal/logger"
)

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Task assignment and reporting server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// bootstrap loads configuration, sets up logging and opens the database.
func bootstrap() (*config.Config, error) {
	cfg := config.Load()
	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
