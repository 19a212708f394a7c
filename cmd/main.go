package main

import (
	"context"
	"os"

	"riskdesk/internal/adapters/config"
	"riskdesk/internal/adapters/errors/noop"
	"riskdesk/internal/adapters/errors/sentry"
	"riskdesk/internal/cli"
	"riskdesk/pkg/errors"
	"riskdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)
	defer errorTracker.Flush(context.Background())

	rootCmd := cli.NewRootCmd(cfg, log)
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to init Sentry, falling back to no-op tracker: %v", err)
		return noop.New()
	}
	return tracker
}
