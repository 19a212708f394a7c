package sizing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"riskdesk/internal/domain/trade"
)

// Default thresholds. The margin warning threshold (80% utilization) and the
// margin hard cap (100% of account, enforced by shrinking) are deliberately
// separate limits.
const (
	DefaultLevelRiskFraction      = 0.02 // risk budget for level-based sizing, fraction of account
	DefaultMarginWarnUtilization  = 0.80 // warn when estimated total margin exceeds this fraction of account
	DefaultEquityConcentrationMax = 0.25 // warn when position value exceeds this fraction of account
	DefaultOptionRiskTolerance    = 1.10 // warn when premium at risk exceeds budget by this factor
)

// Config carries the named sizing thresholds. Zero values fall back to the
// package defaults so an empty Config is usable.
type Config struct {
	LevelRiskFraction      float64
	MarginWarnUtilization  float64
	EquityConcentrationMax float64
	OptionRiskTolerance    float64
}

// Calculator computes position sizes from trade records. Pure and
// deterministic: no I/O, decimal-only arithmetic, reentrant.
type Calculator struct {
	levelRiskFraction      decimal.Decimal
	marginWarnUtilization  decimal.Decimal
	equityConcentrationMax decimal.Decimal
	optionRiskTolerance    decimal.Decimal
}

// Result is the outcome of one sizing calculation. Immutable once returned;
// a failed calculation never carries a partial position.
type Result struct {
	Success       bool
	PositionSize  int64
	EstimatedRisk decimal.Decimal
	RiskAmount    decimal.Decimal
	RiskPerUnit   decimal.Decimal
	Method        trade.RiskMethod
	Warnings      []string
	ErrorMessage  string
}

// NewCalculator creates a calculator with the given thresholds
func NewCalculator(cfg Config) *Calculator {
	if cfg.LevelRiskFraction <= 0 {
		cfg.LevelRiskFraction = DefaultLevelRiskFraction
	}
	if cfg.MarginWarnUtilization <= 0 {
		cfg.MarginWarnUtilization = DefaultMarginWarnUtilization
	}
	if cfg.EquityConcentrationMax <= 0 {
		cfg.EquityConcentrationMax = DefaultEquityConcentrationMax
	}
	if cfg.OptionRiskTolerance <= 0 {
		cfg.OptionRiskTolerance = DefaultOptionRiskTolerance
	}
	return &Calculator{
		levelRiskFraction:      decimal.NewFromFloat(cfg.LevelRiskFraction),
		marginWarnUtilization:  decimal.NewFromFloat(cfg.MarginWarnUtilization),
		equityConcentrationMax: decimal.NewFromFloat(cfg.EquityConcentrationMax),
		optionRiskTolerance:    decimal.NewFromFloat(cfg.OptionRiskTolerance),
	}
}

// Calculate sizes the position for any supported trade record
func (c *Calculator) Calculate(t trade.Trade) *Result {
	if t == nil {
		return failure("", "no trade provided")
	}
	switch v := t.(type) {
	case *trade.Equity:
		return c.calculateEquity(v)
	case *trade.Option:
		return c.calculateOption(v)
	case *trade.Future:
		return c.calculateFuture(v)
	}
	return failure("", fmt.Sprintf("unsupported asset type: %s", t.Asset()))
}

func (c *Calculator) calculateEquity(t *trade.Equity) *Result {
	riskAmount, errMsg := c.riskAmount(t.RiskProfile)
	if errMsg != "" {
		return failure(t.Method, errMsg)
	}
	if t.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "entry price must be positive")
	}

	riskPerShare := priceDistance(t.EntryPrice, t.StopLossPrice, t.SupportResistanceLevel, t.Method)
	if riskPerShare.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "risk distance cannot be zero or undefined")
	}

	result := &Result{
		Success:     true,
		Method:      t.Method,
		RiskAmount:  riskAmount,
		RiskPerUnit: riskPerShare,
		Warnings:    make([]string, 0),
	}

	shares := riskAmount.Div(riskPerShare).IntPart()

	// Cannot buy more shares than capital allows
	maxShares := t.AccountSize.Div(t.EntryPrice).IntPart()
	if shares > maxShares {
		shares = maxShares
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"position capped at %d shares by available capital", maxShares))
	}

	result.PositionSize = shares
	result.EstimatedRisk = decimal.NewFromInt(shares).Mul(riskPerShare)

	positionValue := decimal.NewFromInt(shares).Mul(t.EntryPrice)
	if positionValue.GreaterThan(t.AccountSize.Mul(c.equityConcentrationMax)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"position value %s exceeds %s%% of account",
			positionValue.StringFixed(2),
			c.equityConcentrationMax.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}

	return result
}

func (c *Calculator) calculateOption(t *trade.Option) *Result {
	riskAmount, errMsg := c.riskAmount(t.RiskProfile)
	if errMsg != "" {
		return failure(t.Method, errMsg)
	}

	if t.Premium.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "premium must be positive")
	}
	multiplier := t.Multiplier()
	if multiplier <= 0 {
		return failure(t.Method, "contract multiplier must be positive")
	}

	// Level-based sizing validates the level range elsewhere but keeps the
	// premium-cost formula: max loss on a long option is the premium paid.
	costPerContract := t.Premium.Mul(decimal.NewFromInt(multiplier))
	if costPerContract.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "risk distance cannot be zero or undefined")
	}

	contracts := riskAmount.Div(costPerContract).IntPart()
	estimatedRisk := decimal.NewFromInt(contracts).Mul(costPerContract)

	result := &Result{
		Success:       true,
		Method:        t.Method,
		PositionSize:  contracts,
		EstimatedRisk: estimatedRisk,
		RiskAmount:    riskAmount,
		RiskPerUnit:   costPerContract,
		Warnings:      make([]string, 0),
	}

	if estimatedRisk.GreaterThan(riskAmount.Mul(c.optionRiskTolerance)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"premium cost %s exceeds risk budget %s by more than %s%%",
			estimatedRisk.StringFixed(2), riskAmount.StringFixed(2),
			c.optionRiskTolerance.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}

	return result
}

func (c *Calculator) calculateFuture(t *trade.Future) *Result {
	riskAmount, errMsg := c.riskAmount(t.RiskProfile)
	if errMsg != "" {
		return failure(t.Method, errMsg)
	}
	if t.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "entry price must be positive")
	}
	if t.TickSize.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "tick size must be positive")
	}
	if t.TickValue.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "tick value must be positive")
	}
	if t.MarginRequirement.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "margin requirement must be positive")
	}

	distance := priceDistance(t.EntryPrice, t.StopLossPrice, t.SupportResistanceLevel, t.Method)
	if distance.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "risk distance cannot be zero or undefined")
	}

	ticksAtRisk := distance.Div(t.TickSize)
	riskPerContract := ticksAtRisk.Mul(t.TickValue)
	if riskPerContract.LessThanOrEqual(decimal.Zero) {
		return failure(t.Method, "risk distance cannot be zero or undefined")
	}

	result := &Result{
		Success:     true,
		Method:      t.Method,
		RiskAmount:  riskAmount,
		RiskPerUnit: riskPerContract,
		Warnings:    make([]string, 0),
	}

	contracts := riskAmount.Div(riskPerContract).IntPart()

	// Hard cap: total margin may never exceed the account; shrink, don't reject
	totalMargin := decimal.NewFromInt(contracts).Mul(t.MarginRequirement)
	if totalMargin.GreaterThan(t.AccountSize) {
		contracts = t.AccountSize.Div(t.MarginRequirement).IntPart()
		totalMargin = decimal.NewFromInt(contracts).Mul(t.MarginRequirement)
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"insufficient margin: position reduced to %d contracts", contracts))
	}

	if totalMargin.GreaterThan(t.AccountSize.Mul(c.marginWarnUtilization)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"margin utilization %s exceeds %s%% of account",
			totalMargin.StringFixed(2),
			c.marginWarnUtilization.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}

	result.PositionSize = contracts
	result.EstimatedRisk = decimal.NewFromInt(contracts).Mul(riskPerContract)

	return result
}

// riskAmount derives the dollar risk budget from the shared profile.
// Returns a non-empty message on failure.
func (c *Calculator) riskAmount(p trade.RiskProfile) (decimal.Decimal, string) {
	if p.AccountSize.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, "account size must be positive"
	}

	var amount decimal.Decimal
	switch p.Method {
	case trade.MethodPercentage:
		amount = p.AccountSize.Mul(p.RiskPercentage).Div(decimal.NewFromInt(100))
	case trade.MethodFixedAmount:
		amount = p.FixedRiskAmount
	case trade.MethodLevelBased:
		amount = p.AccountSize.Mul(c.levelRiskFraction)
	default:
		return decimal.Zero, fmt.Sprintf("unknown risk method: %s", p.Method)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, "risk amount must be positive"
	}
	return amount, ""
}

// priceDistance selects the stop or level reference per risk method and
// returns the absolute distance from entry
func priceDistance(entry, stopLoss, level decimal.Decimal, method trade.RiskMethod) decimal.Decimal {
	if method.UsesLevel() {
		if level.IsZero() {
			return decimal.Zero
		}
		return entry.Sub(level).Abs()
	}
	if stopLoss.IsZero() {
		return decimal.Zero
	}
	return entry.Sub(stopLoss).Abs()
}

func failure(method trade.RiskMethod, message string) *Result {
	return &Result{
		Success:       false,
		Method:        method,
		EstimatedRisk: decimal.Zero,
		RiskAmount:    decimal.Zero,
		RiskPerUnit:   decimal.Zero,
		Warnings:      make([]string, 0),
		ErrorMessage:  message,
	}
}
