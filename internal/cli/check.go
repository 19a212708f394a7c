package cli

import (
	"github.com/spf13/cobra"

	"riskdesk/internal/domain/form"
)

func newCheckCmd(app *App) *cobra.Command {
	var (
		assetFlag  string
		methodFlag string
		setFlags   []string
		history    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate field values and show the resulting form and button state",
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
			renderFormState(cmd.OutOrStdout(), state, controller.Button())
			if history {
				renderHistory(cmd.OutOrStdout(), controller.Button().History())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assetFlag, "asset", "equity", "asset type: equity, option, future")
	cmd.Flags().StringVar(&methodFlag, "method", "percentage", "risk method: percentage, fixed_amount, level_based")
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "field value as key=value (repeatable)")
	cmd.Flags().BoolVar(&history, "history", false, "print recorded button transitions")

	return cmd
}
