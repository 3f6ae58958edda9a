package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/todolists/internal/infrastructure/config"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/logging"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/server"
)

func main() {
	if err := newRootCmd(serve).Execute(); err != nil {
		os.Exit(1)
	}
}

// runFunc starts the server with the resolved configuration
type runFunc func(ctx context.Context, cfg *config.Config) error

func newRootCmd(run runFunc) *cobra.Command {
	var (
		host     string
		port     string
		logLevel string
		dev      bool
	)

	cmd := &cobra.Command{
		Use:           "todolists",
		Short:         "Serve session-backed todo lists over HTTP",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override environment variables
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("dev") {
				cfg.Logging.Development = dev
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Interface to listen on (env HOST)")
	cmd.Flags().StringVarP(&port, "port", "p", "4567", "Port to listen on (env PORT)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode: console logs, gin debug output (env LOG_DEV)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}
