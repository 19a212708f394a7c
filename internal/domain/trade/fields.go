package trade

// Canonical form field names. These are the keys of every flat string map
// crossing the engine boundary: raw edits in, exported trades out.
const (
	FieldAccountSize            = "account_size"
	FieldRiskMethod             = "risk_method"
	FieldRiskPercentage         = "risk_percentage"
	FieldFixedRiskAmount        = "fixed_risk_amount"
	FieldSymbol                 = "symbol"
	FieldOptionSymbol           = "option_symbol"
	FieldContractSymbol         = "contract_symbol"
	FieldEntryPrice             = "entry_price"
	FieldStopLossPrice          = "stop_loss_price"
	FieldSupportResistanceLevel = "support_resistance_level"
	FieldSupportLevel           = "support_level"
	FieldResistanceLevel        = "resistance_level"
	FieldPremium                = "premium"
	FieldContractMultiplier     = "contract_multiplier"
	FieldTickValue              = "tick_value"
	FieldTickSize               = "tick_size"
	FieldMarginRequirement      = "margin_requirement"
	FieldTradeDirection         = "trade_direction"
)
