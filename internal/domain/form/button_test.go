package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskdesk/internal/domain/form"
	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
	"riskdesk/pkg/errors"
)

func completeEquityValues() map[string]string {
	return map[string]string{
		trade.FieldAccountSize:    "10000",
		trade.FieldSymbol:         "AAPL",
		trade.FieldEntryPrice:     "50.00",
		trade.FieldTradeDirection: "LONG",
		trade.FieldRiskPercentage: "2",
		trade.FieldStopLossPrice:  "48.00",
	}
}

func equityFormState(values map[string]string) validation.FormState {
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)
	return validation.Aggregate("form-1", values, required)
}

func TestButtonModel_InitialState(t *testing.T) {
	model := form.NewButtonModel()
	assert.Equal(t, form.StateDisabled, model.State())
	assert.Equal(t, form.ReasonFormIncomplete, model.Reason())
	assert.Empty(t, model.History())
}

func TestButtonModel_UpdateRecordsTransition(t *testing.T) {
	model := form.NewButtonModel()

	recorded := model.Update(form.StateEnabled, form.ReasonFormComplete, "Ready to calculate", nil)
	require.True(t, recorded)

	history := model.History()
	require.Len(t, history, 1)
	assert.Equal(t, form.StateDisabled, history[0].From)
	assert.Equal(t, form.StateEnabled, history[0].To)
	assert.Equal(t, form.ReasonFormComplete, history[0].Reason)
	assert.NotZero(t, history[0].ID)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestButtonModel_SamePairNotRecorded(t *testing.T) {
	model := form.NewButtonModel()

	recorded := model.Update(form.StateDisabled, form.ReasonFormIncomplete, "new tooltip", nil)
	assert.False(t, recorded)
	assert.Empty(t, model.History())
	// Tooltip changes apply even without a recorded transition
	assert.Equal(t, "new tooltip", model.Tooltip())
}

func TestButtonModel_SameStateDifferentReasonRecorded(t *testing.T) {
	model := form.NewButtonModel()

	recorded := model.Update(form.StateDisabled, form.ReasonInvalidData, "bad entry price", nil)
	assert.True(t, recorded)
	assert.Len(t, model.History(), 1)
}

func TestButtonModel_HistoryIsCopy(t *testing.T) {
	model := form.NewButtonModel()
	model.Update(form.StateEnabled, form.ReasonFormComplete, "", nil)

	history := model.History()
	history[0].To = form.StateHidden
	assert.Equal(t, form.StateEnabled, model.History()[0].To)
}

func TestButtonModel_ObserverPanicIsolated(t *testing.T) {
	model := form.NewButtonModel()

	var calls []string
	model.OnTransition(func(tr form.Transition) {
		calls = append(calls, "first")
		panic("observer gone wrong")
	})
	model.OnTransition(func(tr form.Transition) {
		calls = append(calls, "second")
	})

	recorded := model.Update(form.StateEnabled, form.ReasonFormComplete, "", nil)
	assert.True(t, recorded)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, form.StateEnabled, model.State())
}

func TestButtonModel_HideAndShow(t *testing.T) {
	model := form.NewButtonModel()
	fs := equityFormState(completeEquityValues())

	require.True(t, model.Hide())
	assert.Equal(t, form.StateHidden, model.State())
	assert.Equal(t, form.ReasonUserDisabled, model.Reason())

	// Aggregation never pulls the button out of hidden
	assert.False(t, model.Apply(fs))
	assert.Equal(t, form.StateHidden, model.State())

	require.True(t, model.Show(fs))
	assert.Equal(t, form.StateEnabled, model.State())
	assert.Equal(t, form.ReasonFormComplete, model.Reason())
}

func TestButtonModel_ShowWhenVisibleIsNoop(t *testing.T) {
	model := form.NewButtonModel()
	assert.False(t, model.Show(equityFormState(completeEquityValues())))
	assert.Empty(t, model.History())
}

func TestClassify_Submittable(t *testing.T) {
	state, reason, tooltip := form.Classify(equityFormState(completeEquityValues()))
	assert.Equal(t, form.StateEnabled, state)
	assert.Equal(t, form.ReasonFormComplete, reason)
	assert.Equal(t, "Ready to calculate", tooltip)
}

func TestClassify_BlankRequiredField(t *testing.T) {
	values := completeEquityValues()
	values[trade.FieldStopLossPrice] = "  "

	state, reason, tooltip := form.Classify(equityFormState(values))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonMissingRequiredField, reason)
	assert.Contains(t, tooltip, trade.FieldStopLossPrice)
}

func TestClassify_InvalidData(t *testing.T) {
	values := completeEquityValues()
	values[trade.FieldEntryPrice] = "not-a-price"

	state, reason, tooltip := form.Classify(equityFormState(values))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonInvalidData, reason)
	assert.Contains(t, tooltip, trade.FieldEntryPrice)
}

func TestClassify_OutOfRangeIsInvalidData(t *testing.T) {
	values := completeEquityValues()
	values[trade.FieldRiskPercentage] = "6"

	state, reason, _ := form.Classify(equityFormState(values))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonInvalidData, reason)
}

func TestClassify_BlankRequiredWinsOverInvalid(t *testing.T) {
	values := completeEquityValues()
	values[trade.FieldStopLossPrice] = ""
	values[trade.FieldEntryPrice] = "abc"

	_, reason, _ := form.Classify(equityFormState(values))
	assert.Equal(t, form.ReasonMissingRequiredField, reason)
}

func TestClassify_MethodMismatch(t *testing.T) {
	// A fixed-amount value on a percentage form does not apply
	values := map[string]string{
		trade.FieldAccountSize:     "10000",
		trade.FieldFixedRiskAmount: "100",
	}
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)

	state, reason, tooltip := form.Classify(validation.Aggregate("form-1", values, required))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonMethodMismatch, reason)
	assert.Contains(t, tooltip, trade.FieldFixedRiskAmount)
}

func TestClassify_EmptyFormIsIncomplete(t *testing.T) {
	values := map[string]string{trade.FieldRiskMethod: "percentage"}
	required := validation.RequiredFields(trade.AssetEquity, trade.MethodPercentage)

	state, reason, _ := form.Classify(validation.Aggregate("form-1", values, required))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonFormIncomplete, reason)
}

func TestClassify_AbsentRequiredIsMissing(t *testing.T) {
	// Fields set through edits are always present; an untouched required
	// field has no state at all and still reads as missing
	values := completeEquityValues()
	delete(values, trade.FieldStopLossPrice)

	state, reason, tooltip := form.Classify(equityFormState(values))
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonMissingRequiredField, reason)
	assert.Contains(t, tooltip, trade.FieldStopLossPrice)
}

func TestClassify_ValidationErrorKind(t *testing.T) {
	// Field errors outside the format/range kinds fall through to a generic
	// validation error
	fs := validation.FormState{
		FormID: "form-1",
		Fields: map[string]validation.FieldState{
			trade.FieldStopLossPrice: {
				Field: trade.FieldStopLossPrice,
				Value: "52.00",
				Valid: false,
				Kind:  errors.KindCrossField,
				Error: "stop loss must be below entry price for long trades",
			},
		},
		Required:  []string{trade.FieldStopLossPrice},
		HasErrors: true,
	}

	state, reason, tooltip := form.Classify(fs)
	assert.Equal(t, form.StateDisabled, state)
	assert.Equal(t, form.ReasonValidationError, reason)
	assert.Contains(t, tooltip, "below entry price")
}
