package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
	"riskdesk/pkg/errors"
)

func TestNewFieldState_BlankRequired(t *testing.T) {
	state := validation.NewFieldState(trade.FieldAccountSize, "   ", true)
	assert.False(t, state.Valid)
	assert.Equal(t, errors.KindRequiredMissing, state.Kind)
	assert.False(t, state.Filled())
}

func TestNewFieldState_BlankOptional(t *testing.T) {
	state := validation.NewFieldState(trade.FieldStopLossPrice, "", false)
	assert.True(t, state.Valid)
	assert.Empty(t, state.Kind)
}

func TestNewFieldState_InvalidValue(t *testing.T) {
	state := validation.NewFieldState(trade.FieldEntryPrice, "abc", true)
	assert.False(t, state.Valid)
	assert.Equal(t, errors.KindInvalidFormat, state.Kind)
	assert.NotEmpty(t, state.Error)
}

func TestAggregate_Submittable(t *testing.T) {
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)
	values := map[string]string{
		trade.FieldAccountSize:    "10000",
		trade.FieldSymbol:         "AAPL",
		trade.FieldEntryPrice:     "50.00",
		trade.FieldTradeDirection: "LONG",
		trade.FieldRiskPercentage: "2",
		trade.FieldStopLossPrice:  "48.00",
	}

	state := validation.Aggregate("form-1", values, required)
	assert.True(t, state.Submittable)
	assert.True(t, state.AllRequiredFilled)
	assert.False(t, state.HasErrors)
	assert.Empty(t, state.MissingRequired())
	assert.Empty(t, state.AbsentRequired())
}

func TestAggregate_BlankRequiredBlocksSubmit(t *testing.T) {
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)
	values := map[string]string{
		trade.FieldAccountSize:    "10000",
		trade.FieldSymbol:         "AAPL",
		trade.FieldEntryPrice:     "50.00",
		trade.FieldTradeDirection: "LONG",
		trade.FieldRiskPercentage: "2",
		trade.FieldStopLossPrice:  "  ",
	}

	state := validation.Aggregate("form-1", values, required)
	assert.False(t, state.Submittable)
	assert.False(t, state.AllRequiredFilled)
	assert.True(t, state.HasErrors)
	assert.Equal(t, []string{trade.FieldStopLossPrice}, state.MissingRequired())
	// The field is on the form, just blank
	assert.Empty(t, state.AbsentRequired())
}

func TestAggregate_AbsentRequired(t *testing.T) {
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)
	values := map[string]string{
		trade.FieldAccountSize: "10000",
		trade.FieldSymbol:      "AAPL",
	}

	state := validation.Aggregate("form-1", values, required)
	assert.False(t, state.Submittable)
	absent := state.AbsentRequired()
	assert.Contains(t, absent, trade.FieldEntryPrice)
	assert.Contains(t, absent, trade.FieldStopLossPrice)
	// Missing includes absent fields too
	assert.Subset(t, state.MissingRequired(), absent)
}

func TestAggregate_InvalidFieldBlocksSubmit(t *testing.T) {
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)
	values := map[string]string{
		trade.FieldAccountSize:    "10000",
		trade.FieldSymbol:         "AAPL",
		trade.FieldEntryPrice:     "50.00",
		trade.FieldTradeDirection: "LONG",
		trade.FieldRiskPercentage: "6", // above the permitted ceiling
		trade.FieldStopLossPrice:  "48.00",
	}

	state := validation.Aggregate("form-1", values, required)
	assert.False(t, state.Submittable)
	assert.True(t, state.HasErrors)
	require.Contains(t, state.Fields, trade.FieldRiskPercentage)
	assert.Equal(t, errors.KindOutOfRange, state.Fields[trade.FieldRiskPercentage].Kind)
	// A filled-but-invalid required field still counts as unfilled
	assert.False(t, state.AllRequiredFilled)
}

func TestAggregate_OptionalInvalidStillBlocks(t *testing.T) {
	required := []string{trade.FieldAccountSize}
	values := map[string]string{
		trade.FieldAccountSize: "10000",
		trade.FieldEntryPrice:  "not-a-number",
	}

	state := validation.Aggregate("form-1", values, required)
	assert.True(t, state.AllRequiredFilled)
	assert.True(t, state.HasErrors)
	assert.False(t, state.Submittable)
}

// Aggregating the same inputs twice yields the same verdict
func TestAggregate_Deterministic(t *testing.T) {
	required := validation.RequiredFields(trade.AssetFuture, trade.MethodPercentage)
	values := map[string]string{
		trade.FieldAccountSize:   "50000",
		trade.FieldTickValue:     "12.50",
		trade.FieldStopLossPrice: "bad",
	}

	first := validation.Aggregate("form-1", values, required)
	second := validation.Aggregate("form-1", values, required)
	assert.Equal(t, first, second)
}

func TestAggregate_CopiesRequiredSlice(t *testing.T) {
	required := []string{trade.FieldAccountSize, trade.FieldSymbol}
	state := validation.Aggregate("form-1", map[string]string{}, required)

	required[0] = "mutated"
	assert.Equal(t, trade.FieldAccountSize, state.Required[0])
}
