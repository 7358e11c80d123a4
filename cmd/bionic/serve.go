package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/bionic/server"
)

// shutdownGrace is how long in-flight requests may run after a signal
const shutdownGrace = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: `Serve POST /api/convert and GET /api/health until interrupted.
SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "Listen host (default from config)")
	cmd.Flags().IntP("port", "p", 0, "Listen port (default from config)")
	cmd.Flags().Int64("max-file-size", 0, "Largest accepted upload in bytes (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if size, _ := cmd.Flags().GetInt64("max-file-size"); size > 0 {
		cfg.MaxFileSize = size
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Options{
		MaxFileSize: cfg.MaxFileSize,
		Configure:   cfg.Apply,
		Logger:      logger,
	})
	return srv.ListenAndServe(cmd.Context(), cfg.Addr(), shutdownGrace)
}
