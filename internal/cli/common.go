package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcampelo/briza/internal/config"
	"github.com/rcampelo/briza/internal/db"
	"github.com/rcampelo/briza/internal/logging"
	"github.com/rcampelo/briza/internal/warehouse/postgres"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/spf13/cobra"
)

// loadConfig reads configuration for a command, honoring --env-file and
// promoting the log level to debug when --verbose is set.
func loadConfig(cmd *cobra.Command) (*config.Config, briza.Logger, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		envFile = ""
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if getVerboseFlag(cmd) {
		level = "debug"
	}
	logger := logging.NewConsoleLogger(level, cfg.LogFormat)
	return cfg, logger, nil
}

// connectWarehouse opens a pooled warehouse connection with retry.
// The caller owns the returned client and must Close it.
func connectWarehouse(ctx context.Context, cfg *config.Config, logger briza.Logger) (*postgres.Client, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	pool, err := db.NewConnector(cfg.DatabaseURL, logger).Connect(ctx)
	if err != nil {
		return nil, err
	}
	return postgres.NewClient(pool, logger), nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
