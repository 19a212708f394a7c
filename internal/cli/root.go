// Package cli provides the terminal adapter for the position risk engine.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"riskdesk/internal/adapters/config"
	"riskdesk/internal/domain/sizing"
	"riskdesk/internal/domain/trade"
	"riskdesk/pkg/logger"
)

// App holds the dependencies shared by every command
type App struct {
	Config     *config.Config
	Calculator *sizing.Calculator
	Log        *logger.Logger
}

// NewRootCmd creates the root command for the CLI
func NewRootCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Calculator: sizing.NewCalculator(sizing.Config{
			LevelRiskFraction:      cfg.Sizing.LevelRiskFraction,
			MarginWarnUtilization:  cfg.Sizing.MarginWarnUtilization,
			EquityConcentrationMax: cfg.Sizing.EquityConcentrationMax,
			OptionRiskTolerance:    cfg.Sizing.OptionRiskTolerance,
		}),
		Log: log,
	}

	rootCmd := &cobra.Command{
		Use:           "riskdesk",
		Short:         "Position sizing and trade validation",
		Long:          "Sizes a trade position from an account size and a risk-budgeting method,\nwith field-level validation and decimal-exact math.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSizeCmd(app))
	rootCmd.AddCommand(newCheckCmd(app))
	rootCmd.AddCommand(newFieldsCmd(app))

	return rootCmd
}

// parseAssetMethod resolves and validates the --asset and --method flags
func parseAssetMethod(assetFlag, methodFlag string) (trade.AssetType, trade.RiskMethod, error) {
	asset := trade.AssetType(strings.ToLower(strings.TrimSpace(assetFlag)))
	if !asset.Valid() {
		return "", "", fmt.Errorf("unknown asset type %q (equity, option, future)", assetFlag)
	}
	method := trade.ParseMethod(methodFlag)
	if !method.Valid() {
		return "", "", fmt.Errorf("unknown risk method %q (percentage, fixed_amount, level_based)", methodFlag)
	}
	return asset, method, nil
}

// parseFieldArgs turns repeated --set key=value flags into a field map
func parseFieldArgs(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid field assignment %q, expected key=value", pair)
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields, nil
}
