package cli

import (
	"github.com/spf13/cobra"

	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
)

func newFieldsCmd(app *App) *cobra.Command {
	var (
		assetFlag  string
		methodFlag string
	)

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Show the required fields per asset type and risk method",
		RunE: func(cmd *cobra.Command, args []string) error {
			assets := []trade.AssetType{trade.AssetEquity, trade.AssetOption, trade.AssetFuture}
			methods := []trade.RiskMethod{trade.MethodPercentage, trade.MethodFixedAmount, trade.MethodLevelBased}

			if assetFlag != "" {
				asset, _, err := parseAssetMethod(assetFlag, "percentage")
				if err != nil {
					return err
				}
				assets = []trade.AssetType{asset}
			}
			if methodFlag != "" {
				_, method, err := parseAssetMethod("equity", methodFlag)
				if err != nil {
					return err
				}
				methods = []trade.RiskMethod{method}
			}

			rows := make([]requiredRow, 0, len(assets)*len(methods))
			for _, asset := range assets {
				for _, method := range methods {
					rows = append(rows, requiredRow{
						Asset:  asset,
						Method: method,
						Fields: validation.RequiredFields(asset, method),
					})
				}
			}

			renderRequired(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&assetFlag, "asset", "", "asset type: equity, option, future")
	cmd.Flags().StringVar(&methodFlag, "method", "", "risk method: percentage, fixed_amount, level_based")

	return cmd
}
