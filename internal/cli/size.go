package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskdesk/internal/domain/form"
)

func newSizeCmd(app *App) *cobra.Command {
	var (
		assetFlag  string
		methodFlag string
		setFlags   []string
	)

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Calculate a position size from field values",
		Example: `  riskdesk size --asset equity --method percentage \
    --set account_size=10000 --set symbol=AAPL --set entry_price=50.00 \
    --set stop_loss_price=48.00 --set risk_percentage=2 --set trade_direction=LONG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, method, err := parseAssetMethod(assetFlag, methodFlag)
			if err != nil {
				return err
			}
			fields, err := parseFieldArgs(setFlags)
			if err != nil {
				return err
			}

			controller := form.NewController(asset, method, app.Calculator, app.Log)
			for name, value := range fields {
				controller.SetField(name, value)
			}

			state := controller.Snapshot()
			if !state.Submittable {
				renderFormState(cmd.OutOrStdout(), state, controller.Button())
				return fmt.Errorf("form is not submittable (%s)", controller.Button().Reason())
			}

			outcome, err := controller.Submit()
			if err != nil {
				if outcome != nil && outcome.Report != nil {
					renderTradeReport(cmd.OutOrStdout(), outcome.Report)
				}
				return err
			}

			renderResult(cmd.OutOrStdout(), asset, outcome.Result)
			if !outcome.Result.Success {
				return fmt.Errorf("calculation failed: %s", outcome.Result.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assetFlag, "asset", "equity", "asset type: equity, option, future")
	cmd.Flags().StringVar(&methodFlag, "method", "percentage", "risk method: percentage, fixed_amount, level_based")
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "field value as key=value (repeatable)")

	return cmd
}
