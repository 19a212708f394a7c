package validation

import (
	"riskdesk/internal/domain/trade"
)

// Required-field resolver: a static (asset type x risk method) table, fixed at
// compile time. Switching method changes which fields are required without
// touching already-entered values; clearing those is the caller's job.

var requiredByAssetMethod = map[trade.AssetType]map[trade.RiskMethod][]string{
	trade.AssetEquity: {
		trade.MethodPercentage: {
			trade.FieldAccountSize, trade.FieldSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldRiskPercentage, trade.FieldStopLossPrice,
		},
		trade.MethodFixedAmount: {
			trade.FieldAccountSize, trade.FieldSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldFixedRiskAmount, trade.FieldStopLossPrice,
		},
		trade.MethodLevelBased: {
			trade.FieldAccountSize, trade.FieldSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldSupportResistanceLevel,
		},
	},
	trade.AssetOption: {
		trade.MethodPercentage: {
			trade.FieldAccountSize, trade.FieldOptionSymbol, trade.FieldPremium,
			trade.FieldContractMultiplier, trade.FieldTradeDirection, trade.FieldRiskPercentage,
		},
		trade.MethodFixedAmount: {
			trade.FieldAccountSize, trade.FieldOptionSymbol, trade.FieldPremium,
			trade.FieldContractMultiplier, trade.FieldTradeDirection, trade.FieldFixedRiskAmount,
		},
		trade.MethodLevelBased: {
			trade.FieldAccountSize, trade.FieldOptionSymbol, trade.FieldPremium,
			trade.FieldContractMultiplier, trade.FieldTradeDirection,
			trade.FieldSupportLevel, trade.FieldResistanceLevel,
		},
	},
	trade.AssetFuture: {
		trade.MethodPercentage: {
			trade.FieldAccountSize, trade.FieldContractSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldTickValue, trade.FieldTickSize,
			trade.FieldMarginRequirement, trade.FieldRiskPercentage, trade.FieldStopLossPrice,
		},
		trade.MethodFixedAmount: {
			trade.FieldAccountSize, trade.FieldContractSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldTickValue, trade.FieldTickSize,
			trade.FieldMarginRequirement, trade.FieldFixedRiskAmount, trade.FieldStopLossPrice,
		},
		trade.MethodLevelBased: {
			trade.FieldAccountSize, trade.FieldContractSymbol, trade.FieldEntryPrice,
			trade.FieldTradeDirection, trade.FieldTickValue, trade.FieldTickSize,
			trade.FieldMarginRequirement, trade.FieldSupportResistanceLevel,
		},
	},
}

// RequiredFields returns the ordered required-field list for the pair.
// Unknown pairs resolve to nil, which makes no form submittable (fail closed).
func RequiredFields(asset trade.AssetType, method trade.RiskMethod) []string {
	methods, ok := requiredByAssetMethod[asset]
	if !ok {
		return nil
	}
	fields, ok := methods[method]
	if !ok {
		return nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
