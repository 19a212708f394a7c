package trade

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"riskdesk/pkg/errors"
)

// Flat string-map import/export. The configuration collaborator persists
// trades as key -> string maps with numeric fields serialized as decimal
// strings, never floats. The form controller uses the same constructors on
// the submit path to turn validated field values into typed records.

// Export serializes the equity trade as a flat string map
func (t *Equity) Export() map[string]string {
	out := t.RiskProfile.export()
	out[FieldSymbol] = t.Symbol
	out[FieldEntryPrice] = t.EntryPrice.String()
	out[FieldTradeDirection] = t.Direction.String()
	if !t.StopLossPrice.IsZero() {
		out[FieldStopLossPrice] = t.StopLossPrice.String()
	}
	if !t.SupportResistanceLevel.IsZero() {
		out[FieldSupportResistanceLevel] = t.SupportResistanceLevel.String()
	}
	return out
}

// Export serializes the option trade as a flat string map
func (t *Option) Export() map[string]string {
	out := t.RiskProfile.export()
	out[FieldOptionSymbol] = t.OptionSymbol
	out[FieldPremium] = t.Premium.String()
	out[FieldContractMultiplier] = strconv.FormatInt(t.Multiplier(), 10)
	out[FieldTradeDirection] = t.Direction.String()
	if !t.SupportLevel.IsZero() {
		out[FieldSupportLevel] = t.SupportLevel.String()
	}
	if !t.ResistanceLevel.IsZero() {
		out[FieldResistanceLevel] = t.ResistanceLevel.String()
	}
	if !t.EntryPrice.IsZero() {
		out[FieldEntryPrice] = t.EntryPrice.String()
	}
	if !t.StopLossPrice.IsZero() {
		out[FieldStopLossPrice] = t.StopLossPrice.String()
	}
	return out
}

// Export serializes the futures trade as a flat string map
func (t *Future) Export() map[string]string {
	out := t.RiskProfile.export()
	out[FieldContractSymbol] = t.ContractSymbol
	out[FieldEntryPrice] = t.EntryPrice.String()
	out[FieldTickValue] = t.TickValue.String()
	out[FieldTickSize] = t.TickSize.String()
	out[FieldMarginRequirement] = t.MarginRequirement.String()
	out[FieldTradeDirection] = t.Direction.String()
	if !t.StopLossPrice.IsZero() {
		out[FieldStopLossPrice] = t.StopLossPrice.String()
	}
	if !t.SupportResistanceLevel.IsZero() {
		out[FieldSupportResistanceLevel] = t.SupportResistanceLevel.String()
	}
	return out
}

func (p RiskProfile) export() map[string]string {
	out := map[string]string{
		FieldAccountSize: p.AccountSize.String(),
		FieldRiskMethod:  p.Method.String(),
	}
	if !p.RiskPercentage.IsZero() {
		out[FieldRiskPercentage] = p.RiskPercentage.String()
	}
	if !p.FixedRiskAmount.IsZero() {
		out[FieldFixedRiskAmount] = p.FixedRiskAmount.String()
	}
	return out
}

// FromFields builds the trade record for the given asset class from a flat
// field map. Values are expected to have passed field validation already;
// unparseable numerics still fail closed with an invalid_format error.
func FromFields(asset AssetType, fields map[string]string) (Trade, error) {
	switch asset {
	case AssetEquity:
		return EquityFromFields(fields)
	case AssetOption:
		return OptionFromFields(fields)
	case AssetFuture:
		return FutureFromFields(fields)
	}
	return nil, errors.Newf("unknown asset type: %s", asset)
}

// EquityFromFields builds an equity trade from a flat field map
func EquityFromFields(fields map[string]string) (*Equity, error) {
	profile, err := profileFromFields(fields)
	if err != nil {
		return nil, err
	}

	t := &Equity{
		RiskProfile: profile,
		Symbol:      strings.TrimSpace(fields[FieldSymbol]),
	}

	if t.EntryPrice, err = fieldDecimal(fields, FieldEntryPrice); err != nil {
		return nil, err
	}
	if t.StopLossPrice, err = fieldDecimal(fields, FieldStopLossPrice); err != nil {
		return nil, err
	}
	if t.SupportResistanceLevel, err = fieldDecimal(fields, FieldSupportResistanceLevel); err != nil {
		return nil, err
	}
	t.Direction = ParseDirection(fields[FieldTradeDirection])

	return t, nil
}

// OptionFromFields builds an option trade from a flat field map
func OptionFromFields(fields map[string]string) (*Option, error) {
	profile, err := profileFromFields(fields)
	if err != nil {
		return nil, err
	}

	t := &Option{
		RiskProfile:        profile,
		OptionSymbol:       strings.TrimSpace(fields[FieldOptionSymbol]),
		ContractMultiplier: DefaultContractMultiplier,
	}

	if raw := strings.TrimSpace(fields[FieldContractMultiplier]); raw != "" {
		mult, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError(
				FieldContractMultiplier, errors.KindInvalidFormat, "must be a whole number", raw)
		}
		t.ContractMultiplier = mult
	}

	if t.Premium, err = fieldDecimal(fields, FieldPremium); err != nil {
		return nil, err
	}
	if t.SupportLevel, err = fieldDecimal(fields, FieldSupportLevel); err != nil {
		return nil, err
	}
	if t.ResistanceLevel, err = fieldDecimal(fields, FieldResistanceLevel); err != nil {
		return nil, err
	}
	if t.EntryPrice, err = fieldDecimal(fields, FieldEntryPrice); err != nil {
		return nil, err
	}
	if t.StopLossPrice, err = fieldDecimal(fields, FieldStopLossPrice); err != nil {
		return nil, err
	}
	t.Direction = ParseDirection(fields[FieldTradeDirection])

	return t, nil
}

// FutureFromFields builds a futures trade from a flat field map
func FutureFromFields(fields map[string]string) (*Future, error) {
	profile, err := profileFromFields(fields)
	if err != nil {
		return nil, err
	}

	t := &Future{
		RiskProfile:    profile,
		ContractSymbol: strings.TrimSpace(fields[FieldContractSymbol]),
	}

	if t.EntryPrice, err = fieldDecimal(fields, FieldEntryPrice); err != nil {
		return nil, err
	}
	if t.StopLossPrice, err = fieldDecimal(fields, FieldStopLossPrice); err != nil {
		return nil, err
	}
	if t.SupportResistanceLevel, err = fieldDecimal(fields, FieldSupportResistanceLevel); err != nil {
		return nil, err
	}
	if t.TickValue, err = fieldDecimal(fields, FieldTickValue); err != nil {
		return nil, err
	}
	if t.TickSize, err = fieldDecimal(fields, FieldTickSize); err != nil {
		return nil, err
	}
	if t.MarginRequirement, err = fieldDecimal(fields, FieldMarginRequirement); err != nil {
		return nil, err
	}
	t.Direction = ParseDirection(fields[FieldTradeDirection])

	return t, nil
}

// ParseMethod canonicalizes a raw risk method token
func ParseMethod(raw string) RiskMethod {
	return RiskMethod(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseDirection canonicalizes a raw direction token: LONG/SHORT upper-cased,
// call/put lower-cased. Anything else passes through and fails Valid()
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "long":
		return DirectionLong
	case "short":
		return DirectionShort
	case "call":
		return DirectionCall
	case "put":
		return DirectionPut
	}
	return Direction(strings.TrimSpace(raw))
}

func profileFromFields(fields map[string]string) (RiskProfile, error) {
	p := RiskProfile{Method: ParseMethod(fields[FieldRiskMethod])}

	var err error
	if p.AccountSize, err = fieldDecimal(fields, FieldAccountSize); err != nil {
		return p, err
	}
	if p.RiskPercentage, err = fieldDecimal(fields, FieldRiskPercentage); err != nil {
		return p, err
	}
	if p.FixedRiskAmount, err = fieldDecimal(fields, FieldFixedRiskAmount); err != nil {
		return p, err
	}
	return p, nil
}

func fieldDecimal(fields map[string]string, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(fields[key])
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.NewValidationError(
			key, errors.KindInvalidFormat, "must be a decimal number", raw)
	}
	return d, nil
}
