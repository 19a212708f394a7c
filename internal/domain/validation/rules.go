package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"riskdesk/internal/domain/trade"
)

// Cross-field business rules: relational checks single-field validation
// cannot see. Errors block submission; warnings never do.

var (
	minStopSeparation = dec("0.01")

	fixedRiskAccountCap = dec("0.05") // fixed risk amount capped at 5% of account

	riskPercentWarnCeiling = dec("10")   // above this: risky but permitted
	riskPercentHardCeiling = dec("100")  // above this: rejected outright
	riskPercentHardFloor   = dec("0.01") // below this: rejected outright

	marginWarnUtilization = dec("0.8")
)

// TradeReport is the outcome of cross-field validation over a trade record
type TradeReport struct {
	Valid       bool
	FieldErrors map[string]string
	Warnings    []string
}

func newTradeReport() *TradeReport {
	return &TradeReport{
		Valid:       true,
		FieldErrors: make(map[string]string),
		Warnings:    make([]string, 0),
	}
}

func (r *TradeReport) addError(field, message string) {
	r.Valid = false
	if _, exists := r.FieldErrors[field]; !exists {
		r.FieldErrors[field] = message
	}
}

func (r *TradeReport) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateTrade runs every cross-field rule applicable to the trade.
// Pure: identical input yields an identical report.
func ValidateTrade(t trade.Trade) *TradeReport {
	report := newTradeReport()
	if t == nil {
		report.addError(trade.FieldAccountSize, "no trade data")
		return report
	}

	validateProfile(report, t.Profile())

	switch v := t.(type) {
	case *trade.Equity:
		validateDirection(report, v.Direction, trade.AssetEquity)
		validateStopAndLevel(report, v.Method, v.Direction,
			v.EntryPrice, v.StopLossPrice, v.SupportResistanceLevel)
	case *trade.Option:
		validateDirection(report, v.Direction, trade.AssetOption)
		validateOptionLevels(report, v)
	case *trade.Future:
		validateDirection(report, v.Direction, trade.AssetFuture)
		validateStopAndLevel(report, v.Method, v.Direction,
			v.EntryPrice, v.StopLossPrice, v.SupportResistanceLevel)
		validateFutureMargin(report, v)
	default:
		report.addError(trade.FieldAccountSize, fmt.Sprintf("unsupported asset type: %s", t.Asset()))
	}

	return report
}

func validateProfile(report *TradeReport, p trade.RiskProfile) {
	if p.AccountSize.LessThanOrEqual(decimal.Zero) {
		report.addError(trade.FieldAccountSize, "account size must be positive")
		return
	}

	if p.Method == trade.MethodPercentage && !p.RiskPercentage.IsZero() {
		switch {
		case p.RiskPercentage.GreaterThan(riskPercentHardCeiling):
			report.addError(trade.FieldRiskPercentage, "risk percentage cannot exceed 100%")
		case p.RiskPercentage.LessThan(riskPercentHardFloor):
			report.addError(trade.FieldRiskPercentage, "risk percentage cannot be below 0.01%")
		case p.RiskPercentage.GreaterThan(riskPercentWarnCeiling):
			report.warn("risk percentage %s%% is unusually high", p.RiskPercentage.String())
		}
	}

	if p.Method == trade.MethodFixedAmount && !p.FixedRiskAmount.IsZero() {
		limit := p.AccountSize.Mul(fixedRiskAccountCap)
		if p.FixedRiskAmount.GreaterThan(limit) {
			report.addError(trade.FieldFixedRiskAmount,
				fmt.Sprintf("fixed risk amount exceeds 5%% of account size (%s)", limit.StringFixed(2)))
		}
	}
}

func validateDirection(report *TradeReport, d trade.Direction, asset trade.AssetType) {
	if d == "" {
		return
	}
	if !d.ValidFor(asset) {
		report.addError(trade.FieldTradeDirection,
			fmt.Sprintf("direction %q is not valid for %s trades", d, asset))
	}
}

// validateStopAndLevel applies the direction-aware polarity and minimum
// separation rules to whichever reference price the method selects
func validateStopAndLevel(report *TradeReport, method trade.RiskMethod, d trade.Direction,
	entry, stopLoss, level decimal.Decimal) {

	if entry.LessThanOrEqual(decimal.Zero) {
		return
	}

	if method.UsesStopLoss() && !stopLoss.IsZero() {
		checkReferencePrice(report, trade.FieldStopLossPrice, "stop loss", d, entry, stopLoss)
	}

	if method.UsesLevel() && !level.IsZero() {
		checkReferencePrice(report, trade.FieldSupportResistanceLevel, "support/resistance level", d, entry, level)
	}
}

func checkReferencePrice(report *TradeReport, field, label string, d trade.Direction,
	entry, reference decimal.Decimal) {

	switch d {
	case trade.DirectionLong:
		if reference.GreaterThanOrEqual(entry) {
			report.addError(field, fmt.Sprintf("%s must be below entry price for long trades", label))
			return
		}
	case trade.DirectionShort:
		if reference.LessThanOrEqual(entry) {
			report.addError(field, fmt.Sprintf("%s must be above entry price for short trades", label))
			return
		}
	default:
		return
	}

	if entry.Sub(reference).Abs().LessThan(minStopSeparation) {
		report.addError(field, fmt.Sprintf("%s is too close to entry price (minimum %s)", label, minStopSeparation))
	}
}

func validateOptionLevels(report *TradeReport, t *trade.Option) {
	if !t.Method.UsesLevel() {
		return
	}

	if t.SupportLevel.LessThanOrEqual(decimal.Zero) {
		report.addError(trade.FieldSupportLevel, "support level must be positive")
	}
	if t.ResistanceLevel.LessThanOrEqual(decimal.Zero) {
		report.addError(trade.FieldResistanceLevel, "resistance level must be positive")
	}
	if t.SupportLevel.GreaterThan(decimal.Zero) && t.ResistanceLevel.GreaterThan(decimal.Zero) &&
		t.SupportLevel.GreaterThanOrEqual(t.ResistanceLevel) {
		report.addError(trade.FieldSupportLevel, "support level must be below resistance level")
	}
}

func validateFutureMargin(report *TradeReport, t *trade.Future) {
	if t.MarginRequirement.IsZero() || t.AccountSize.LessThanOrEqual(decimal.Zero) {
		return
	}

	// Hard cap: a single contract must be affordable
	if t.MarginRequirement.GreaterThan(t.AccountSize) {
		report.addError(trade.FieldMarginRequirement, "margin requirement exceeds account size")
		return
	}

	// Soft limit: even one contract close to the account ceiling is worth flagging;
	// the calculator re-checks utilization against the sized position
	if t.MarginRequirement.GreaterThan(t.AccountSize.Mul(marginWarnUtilization)) {
		report.warn("margin requirement uses more than 80%% of account size")
	}
}
