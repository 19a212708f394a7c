package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"riskdesk/pkg/errors"
)

type Config struct {
	App           AppConfig
	Sizing        SizingConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"riskdesk"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// SizingConfig overrides the engine's named thresholds. Defaults mirror the
// constants in the sizing package.
type SizingConfig struct {
	LevelRiskFraction      float64 `envconfig:"SIZING_LEVEL_RISK_FRACTION" default:"0.02"`
	MarginWarnUtilization  float64 `envconfig:"SIZING_MARGIN_WARN_UTILIZATION" default:"0.80"`
	EquityConcentrationMax float64 `envconfig:"SIZING_EQUITY_CONCENTRATION_MAX" default:"0.25"`
	OptionRiskTolerance    float64 `envconfig:"SIZING_OPTION_RISK_TOLERANCE" default:"1.10"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from the environment, with .env as a fallback
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment config")
	}
	return &cfg, nil
}
