package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"riskdesk/internal/domain/trade"
	"riskdesk/pkg/errors"
)

// Per-field validation rules. One static table shared by every asset type;
// which fields matter for a given form is the required-field resolver's job.

type ruleKind int

const (
	decimalRule ruleKind = iota
	integerRule
	stringRule
	enumRule
)

type fieldRule struct {
	kind   ruleKind
	min    decimal.Decimal
	max    decimal.Decimal
	places int32 // max decimal places
	minInt int64
	maxInt int64
	maxLen int
	oneOf  []string
}

var fieldRules = map[string]fieldRule{
	trade.FieldAccountSize:            {kind: decimalRule, min: dec("0.01"), max: dec("1000000000"), places: 2},
	trade.FieldRiskPercentage:         {kind: decimalRule, min: dec("1.0"), max: dec("5.0"), places: 2},
	trade.FieldFixedRiskAmount:        {kind: decimalRule, min: dec("10"), max: dec("500"), places: 2},
	trade.FieldEntryPrice:             {kind: decimalRule, min: dec("0.01"), max: dec("1000000"), places: 4},
	trade.FieldStopLossPrice:          {kind: decimalRule, min: dec("0.01"), max: dec("1000000"), places: 4},
	trade.FieldSupportResistanceLevel: {kind: decimalRule, min: dec("0.01"), max: dec("1000000"), places: 4},
	trade.FieldSupportLevel:           {kind: decimalRule, min: dec("0.01"), max: dec("1000000"), places: 4},
	trade.FieldResistanceLevel:        {kind: decimalRule, min: dec("0.01"), max: dec("1000000"), places: 4},
	trade.FieldPremium:                {kind: decimalRule, min: dec("0.01"), max: dec("10000"), places: 4},
	trade.FieldTickValue:              {kind: decimalRule, min: dec("0.01"), max: dec("10000"), places: 4},
	trade.FieldTickSize:               {kind: decimalRule, min: dec("0.0001"), max: dec("1000"), places: 4},
	trade.FieldMarginRequirement:      {kind: decimalRule, min: dec("0.01"), max: dec("10000000"), places: 2},
	trade.FieldContractMultiplier:     {kind: integerRule, minInt: 1, maxInt: 10000},
	trade.FieldSymbol:                 {kind: stringRule, maxLen: 12},
	trade.FieldOptionSymbol:           {kind: stringRule, maxLen: 32},
	trade.FieldContractSymbol:         {kind: stringRule, maxLen: 12},
	trade.FieldTradeDirection:         {kind: enumRule, oneOf: []string{"long", "short", "call", "put"}},
	trade.FieldRiskMethod:             {kind: enumRule, oneOf: []string{"percentage", "fixed_amount", "level_based"}},
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ValidateField checks a single raw value against the field's rule.
// Returns nil for valid values, blank values, and unknown field names;
// blank-but-required is the form aggregator's concern.
func ValidateField(name, raw string) *errors.ValidationError {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	rule, ok := fieldRules[name]
	if !ok {
		// Unknown fields are ignored to support partial form population
		return nil
	}

	switch rule.kind {
	case decimalRule:
		return validateDecimal(name, value, rule)
	case integerRule:
		return validateInteger(name, value, rule)
	case stringRule:
		if len(value) > rule.maxLen {
			return errors.NewValidationError(name, errors.KindOutOfRange,
				fmt.Sprintf("must be at most %d characters", rule.maxLen), value)
		}
	case enumRule:
		lowered := strings.ToLower(value)
		for _, member := range rule.oneOf {
			if lowered == member {
				return nil
			}
		}
		return errors.NewValidationError(name, errors.KindInvalidFormat,
			fmt.Sprintf("must be one of: %s", strings.Join(rule.oneOf, ", ")), value)
	}
	return nil
}

func validateDecimal(name, value string, rule fieldRule) *errors.ValidationError {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return errors.NewValidationError(name, errors.KindInvalidFormat,
			"must be a decimal number", value)
	}
	if d.Exponent() < -rule.places {
		return errors.NewValidationError(name, errors.KindInvalidFormat,
			fmt.Sprintf("at most %d decimal places allowed", rule.places), value)
	}
	// Every decimal field in this domain is strictly positive
	if d.LessThanOrEqual(decimal.Zero) {
		return errors.NewValidationError(name, errors.KindOutOfRange,
			"must be greater than zero", value)
	}
	if d.LessThan(rule.min) || d.GreaterThan(rule.max) {
		return errors.NewValidationError(name, errors.KindOutOfRange,
			fmt.Sprintf("must be between %s and %s", rule.min, rule.max), value)
	}
	return nil
}

func validateInteger(name, value string, rule fieldRule) *errors.ValidationError {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return errors.NewValidationError(name, errors.KindInvalidFormat,
			"must be a whole number", value)
	}
	if n <= 0 {
		return errors.NewValidationError(name, errors.KindOutOfRange,
			"must be greater than zero", value)
	}
	if n < rule.minInt || n > rule.maxInt {
		return errors.NewValidationError(name, errors.KindOutOfRange,
			fmt.Sprintf("must be between %d and %d", rule.minInt, rule.maxInt), value)
	}
	return nil
}

// KnownField reports whether a field name has a validation rule
func KnownField(name string) bool {
	_, ok := fieldRules[name]
	return ok
}
