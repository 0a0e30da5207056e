package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smart-agriculture/internal/app"
	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/config"
	"smart-agriculture/internal/logger"
)

type options struct {
	envFile  string
	logLevel string
}

// rootCommand creates the smartagri command tree.
func rootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "smartagri",
		Short:        "Smart agriculture records and analytics service",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(
		serveCommand(opts),
		migrateCommand(opts),
		seedCommand(opts),
		sweepCommand(opts),
	)
	return rootCmd
}

// withApp loads configuration, builds the application and runs fn against it.
func withApp(ctx context.Context, opts *options, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	baseLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	a, err := app.New(cfg, baseLogger, clock.System())
	if err != nil {
		baseLogger.Error("failed to initialize application", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	return fn(ctx, a)
}
