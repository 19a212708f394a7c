package cli

import (
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"riskdesk/internal/domain/form"
	"riskdesk/internal/domain/sizing"
	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
)

var unitLabels = map[trade.AssetType]string{
	trade.AssetEquity: "shares",
	trade.AssetOption: "contracts",
	trade.AssetFuture: "contracts",
}

func renderResult(out io.Writer, asset trade.AssetType, result *sizing.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("POSITION SIZE")
	t.SetStyle(table.StyleRounded)

	if !result.Success {
		t.AppendRows([]table.Row{
			{"Status", "FAILED"},
			{"Error", result.ErrorMessage},
		})
		t.Render()
		return
	}

	t.AppendRows([]table.Row{
		{"Status", "OK"},
		{"Method", result.Method.String()},
		{"Position size", humanize.Comma(result.PositionSize) + " " + unitLabels[asset]},
		{"Risk budget", dollars(result.RiskAmount)},
		{"Risk per unit", dollars(result.RiskPerUnit)},
		{"Estimated risk", dollars(result.EstimatedRisk)},
	})
	t.Render()

	renderWarnings(out, result.Warnings)
}

func renderWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("WARNINGS")
	t.SetStyle(table.StyleRounded)
	for _, w := range warnings {
		t.AppendRow(table.Row{w})
	}
	t.Render()
}

func renderFormState(out io.Writer, state validation.FormState, button *form.ButtonModel) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("FIELD VALIDATION")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value", "Required", "Status"})

	for _, name := range sortedFieldNames(state) {
		fs := state.Fields[name]
		status := "ok"
		if !fs.Valid {
			status = fs.Error
		}
		required := ""
		if fs.Required {
			required = "yes"
		}
		t.AppendRow(table.Row{fs.Field, fs.Value, required, status})
	}
	for _, name := range state.MissingRequired() {
		if _, present := state.Fields[name]; !present {
			t.AppendRow(table.Row{name, "", "yes", "not set"})
		}
	}
	t.Render()

	v := table.NewWriter()
	v.SetOutputMirror(out)
	v.SetTitle("FORM VERDICT")
	v.SetStyle(table.StyleRounded)
	v.AppendRows([]table.Row{
		{"Submittable", yesNo(state.Submittable)},
		{"Has errors", yesNo(state.HasErrors)},
		{"Required filled", yesNo(state.AllRequiredFilled)},
		{"Button", button.State().String()},
		{"Reason", button.Reason().String()},
		{"Tooltip", button.Tooltip()},
	})
	v.Render()
}

func renderTradeReport(out io.Writer, report *validation.TradeReport) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("TRADE VALIDATION")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Error"})

	names := make([]string, 0, len(report.FieldErrors))
	for name := range report.FieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AppendRow(table.Row{name, report.FieldErrors[name]})
	}
	t.Render()

	renderWarnings(out, report.Warnings)
}

func renderHistory(out io.Writer, history []form.Transition) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("BUTTON TRANSITIONS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "From", "To", "Reason", "At"})
	for i, tr := range history {
		t.AppendRow(table.Row{i + 1, tr.From.String(), tr.To.String(), tr.Reason.String(),
			tr.Timestamp.Format("15:04:05.000")})
	}
	t.Render()
}

type requiredRow struct {
	Asset  trade.AssetType
	Method trade.RiskMethod
	Fields []string
}

func renderRequired(out io.Writer, rows []requiredRow) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("REQUIRED FIELDS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Asset", "Method", "Fields"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Asset.String(), row.Method.String(), strings.Join(row.Fields, ", ")})
	}
	t.Render()
}

func sortedFieldNames(state validation.FormState) []string {
	names := make([]string, 0, len(state.Fields))
	for name := range state.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dollars(d decimal.Decimal) string {
	return "$" + humanize.CommafWithDigits(d.InexactFloat64(), 2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
