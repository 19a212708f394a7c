package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func percentageEquity(direction trade.Direction, entry, stop string) *trade.Equity {
	return &trade.Equity{
		RiskProfile: trade.RiskProfile{
			AccountSize:    dec("10000"),
			Method:         trade.MethodPercentage,
			RiskPercentage: dec("2"),
		},
		Symbol:        "AAPL",
		EntryPrice:    dec(entry),
		StopLossPrice: dec(stop),
		Direction:     direction,
	}
}

func TestValidateTrade_StopLossDirection(t *testing.T) {
	testCases := []struct {
		name      string
		direction trade.Direction
		entry     string
		stop      string
		wantError bool
	}{
		{"long stop below entry", trade.DirectionLong, "50.00", "48.00", false},
		{"long stop above entry", trade.DirectionLong, "50.00", "52.00", true},
		{"long stop at entry", trade.DirectionLong, "50.00", "50.00", true},
		{"short stop above entry", trade.DirectionShort, "50.00", "52.00", false},
		{"short stop below entry", trade.DirectionShort, "50.00", "48.00", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := validation.ValidateTrade(percentageEquity(tc.direction, tc.entry, tc.stop))
			if tc.wantError {
				assert.False(t, report.Valid)
				assert.Contains(t, report.FieldErrors, trade.FieldStopLossPrice)
			} else {
				assert.True(t, report.Valid, "%v", report.FieldErrors)
			}
		})
	}
}

func TestValidateTrade_StopTooClose(t *testing.T) {
	report := validation.ValidateTrade(percentageEquity(trade.DirectionLong, "50.00", "49.995"))
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors[trade.FieldStopLossPrice], "too close")
}

func TestValidateTrade_LevelDirection(t *testing.T) {
	levelTrade := &trade.Equity{
		RiskProfile: trade.RiskProfile{
			AccountSize: dec("10000"),
			Method:      trade.MethodLevelBased,
		},
		Symbol:                 "AAPL",
		EntryPrice:             dec("50.00"),
		SupportResistanceLevel: dec("53.00"),
		Direction:              trade.DirectionLong,
	}

	report := validation.ValidateTrade(levelTrade)
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors, trade.FieldSupportResistanceLevel)

	levelTrade.SupportResistanceLevel = dec("48.00")
	report = validation.ValidateTrade(levelTrade)
	assert.True(t, report.Valid, "%v", report.FieldErrors)
}

func TestValidateTrade_FixedAmountCap(t *testing.T) {
	input := &trade.Equity{
		RiskProfile: trade.RiskProfile{
			AccountSize:     dec("5000"),
			Method:          trade.MethodFixedAmount,
			FixedRiskAmount: dec("300"), // 6% of account
		},
		Symbol:        "AAPL",
		EntryPrice:    dec("50.00"),
		StopLossPrice: dec("48.00"),
		Direction:     trade.DirectionLong,
	}

	report := validation.ValidateTrade(input)
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors[trade.FieldFixedRiskAmount], "5%")

	input.FixedRiskAmount = dec("250") // exactly 5%
	report = validation.ValidateTrade(input)
	assert.True(t, report.Valid, "%v", report.FieldErrors)
}

func TestValidateTrade_RiskPercentageCeilings(t *testing.T) {
	input := percentageEquity(trade.DirectionLong, "50.00", "48.00")

	input.RiskPercentage = dec("12")
	report := validation.ValidateTrade(input)
	assert.True(t, report.Valid, "high but permitted")
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "unusually high")

	input.RiskPercentage = dec("150")
	report = validation.ValidateTrade(input)
	assert.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors, trade.FieldRiskPercentage)

	input.RiskPercentage = dec("0.005")
	report = validation.ValidateTrade(input)
	assert.False(t, report.Valid)
}

func TestValidateTrade_OptionLevels(t *testing.T) {
	input := &trade.Option{
		RiskProfile: trade.RiskProfile{
			AccountSize: dec("10000"),
			Method:      trade.MethodLevelBased,
		},
		OptionSymbol:       "AAPL240119C00190000",
		Premium:            dec("2.50"),
		ContractMultiplier: 100,
		SupportLevel:       dec("55.00"),
		ResistanceLevel:    dec("50.00"),
		Direction:          trade.DirectionCall,
	}

	report := validation.ValidateTrade(input)
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors[trade.FieldSupportLevel], "below resistance")

	input.SupportLevel = dec("50.00")
	input.ResistanceLevel = dec("55.00")
	report = validation.ValidateTrade(input)
	assert.True(t, report.Valid, "%v", report.FieldErrors)
}

func TestValidateTrade_DirectionPerAsset(t *testing.T) {
	report := validation.ValidateTrade(&trade.Option{
		RiskProfile: trade.RiskProfile{
			AccountSize:     dec("10000"),
			Method:          trade.MethodFixedAmount,
			FixedRiskAmount: dec("250"),
		},
		OptionSymbol:       "AAPL240119C00190000",
		Premium:            dec("2.50"),
		ContractMultiplier: 100,
		Direction:          trade.DirectionLong, // equities direction on an option
	})
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors, trade.FieldTradeDirection)
}

func TestValidateTrade_FutureMargin(t *testing.T) {
	input := &trade.Future{
		RiskProfile: trade.RiskProfile{
			AccountSize:     dec("10000"),
			Method:          trade.MethodFixedAmount,
			FixedRiskAmount: dec("500"),
		},
		ContractSymbol:    "ESZ5",
		EntryPrice:        dec("5000.00"),
		StopLossPrice:     dec("4997.50"),
		TickValue:         dec("12.50"),
		TickSize:          dec("0.25"),
		MarginRequirement: dec("12000"),
		Direction:         trade.DirectionLong,
	}

	report := validation.ValidateTrade(input)
	require.False(t, report.Valid)
	assert.Contains(t, report.FieldErrors[trade.FieldMarginRequirement], "exceeds account")

	input.MarginRequirement = dec("9000") // within account but above 80%
	report = validation.ValidateTrade(input)
	assert.True(t, report.Valid, "%v", report.FieldErrors)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "80%")
}

// Validating the same trade twice yields identical reports: no hidden state
func TestValidateTrade_Idempotent(t *testing.T) {
	input := percentageEquity(trade.DirectionLong, "50.00", "52.00")

	first := validation.ValidateTrade(input)
	second := validation.ValidateTrade(input)
	assert.Equal(t, first, second)
}
