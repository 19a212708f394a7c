package form

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
	"riskdesk/pkg/errors"
)

// ButtonState defines the states of the submit control
type ButtonState string

const (
	StateEnabled  ButtonState = "enabled"
	StateDisabled ButtonState = "disabled"
	StateLoading  ButtonState = "loading"
	StateHidden   ButtonState = "hidden"
)

// Valid checks if button state is valid
func (s ButtonState) Valid() bool {
	switch s {
	case StateEnabled, StateDisabled, StateLoading, StateHidden:
		return true
	}
	return false
}

// String returns string representation
func (s ButtonState) String() string {
	return string(s)
}

// Reason defines why the button is in its current state
type Reason string

const (
	ReasonFormComplete         Reason = "form_complete"
	ReasonFormIncomplete       Reason = "form_incomplete"
	ReasonValidationError      Reason = "validation_error"
	ReasonMissingRequiredField Reason = "missing_required_field"
	ReasonInvalidData          Reason = "invalid_data"
	ReasonProcessing           Reason = "processing"
	ReasonMethodMismatch       Reason = "method_mismatch"
	ReasonSystemError          Reason = "system_error"
	ReasonUserDisabled         Reason = "user_disabled"
)

// String returns string representation
func (r Reason) String() string {
	return string(r)
}

// Transition is one recorded state change. Immutable once appended.
type Transition struct {
	ID        uuid.UUID
	From      ButtonState
	To        ButtonState
	Reason    Reason
	Tooltip   string
	Context   map[string]string
	Timestamp time.Time
}

// ButtonModel tracks the submit control's state with append-only history.
// Not safe for concurrent use; the owning controller serializes access.
type ButtonModel struct {
	state     ButtonState
	reason    Reason
	tooltip   string
	history   []Transition
	observers []func(Transition)
}

// NewButtonModel creates a button model in the initial disabled state
func NewButtonModel() *ButtonModel {
	return &ButtonModel{
		state:   StateDisabled,
		reason:  ReasonFormIncomplete,
		history: make([]Transition, 0),
	}
}

// State returns the current button state
func (m *ButtonModel) State() ButtonState { return m.state }

// Reason returns the current transition reason
func (m *ButtonModel) Reason() Reason { return m.reason }

// Tooltip returns the current tooltip text
func (m *ButtonModel) Tooltip() string { return m.tooltip }

// History returns a copy of the recorded transitions
func (m *ButtonModel) History() []Transition {
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}

// OnTransition registers a callback invoked synchronously on every recorded
// transition. A panicking callback is swallowed so it cannot corrupt the
// state update or starve later callbacks.
func (m *ButtonModel) OnTransition(cb func(Transition)) {
	m.observers = append(m.observers, cb)
}

// Update moves the button to (state, reason). A transition is recorded only
// when the pair differs from the current one; tooltip-only changes are
// applied silently. Returns whether a transition was recorded.
func (m *ButtonModel) Update(state ButtonState, reason Reason, tooltip string, context map[string]string) bool {
	m.tooltip = tooltip

	if state == m.state && reason == m.reason {
		return false
	}

	transition := Transition{
		ID:        uuid.New(),
		From:      m.state,
		To:        state,
		Reason:    reason,
		Tooltip:   tooltip,
		Context:   context,
		Timestamp: time.Now(),
	}

	m.state = state
	m.reason = reason
	m.history = append(m.history, transition)

	for _, cb := range m.observers {
		m.notify(cb, transition)
	}
	return true
}

func (m *ButtonModel) notify(cb func(Transition), t Transition) {
	defer func() {
		recover()
	}()
	cb(t)
}

// Apply classifies the aggregated form state and updates the button.
// Hidden is an explicit UI directive and is never left by aggregation.
func (m *ButtonModel) Apply(fs validation.FormState) bool {
	if m.state == StateHidden {
		return false
	}
	state, reason, tooltip := Classify(fs)
	return m.Update(state, reason, tooltip, map[string]string{"form_id": fs.FormID})
}

// Hide takes the button off the form; validity is unaffected
func (m *ButtonModel) Hide() bool {
	return m.Update(StateHidden, ReasonUserDisabled, "", nil)
}

// Show restores the button to whatever the given form state warrants
func (m *ButtonModel) Show(fs validation.FormState) bool {
	if m.state != StateHidden {
		return false
	}
	state, reason, tooltip := Classify(fs)
	return m.Update(state, reason, tooltip, map[string]string{"form_id": fs.FormID})
}

// Classify maps a form verdict onto (state, reason, tooltip), picking the
// first blocking cause in priority order
func Classify(fs validation.FormState) (ButtonState, Reason, string) {
	if fs.Submittable {
		return StateEnabled, ReasonFormComplete, "Ready to calculate"
	}

	// 1. Nothing entered yet: the form is simply incomplete
	if untouched(fs) {
		return StateDisabled, ReasonFormIncomplete, "Complete the form to calculate"
	}

	// 2. Filled fields the current method does not use
	if stale := staleFields(fs); len(stale) > 0 {
		return StateDisabled, ReasonMethodMismatch,
			fmt.Sprintf("field %s does not apply to the selected risk method", stale[0])
	}

	// 3. Required fields left absent or blank
	if missing := fs.MissingRequired(); len(missing) > 0 {
		return StateDisabled, ReasonMissingRequiredField,
			fmt.Sprintf("Fill required field: %s", missing[0])
	}

	// 4. Format/range failures, then 5. any other field error
	var otherError *validation.FieldState
	for _, name := range orderedFieldNames(fs) {
		field := fs.Fields[name]
		if field.Valid || field.Kind == errors.KindRequiredMissing {
			continue
		}
		if field.Kind == errors.KindInvalidFormat || field.Kind == errors.KindOutOfRange {
			return StateDisabled, ReasonInvalidData,
				fmt.Sprintf("%s: %s", field.Field, field.Error)
		}
		if otherError == nil {
			f := field
			otherError = &f
		}
	}
	if otherError != nil {
		return StateDisabled, ReasonValidationError,
			fmt.Sprintf("%s: %s", otherError.Field, otherError.Error)
	}

	return StateDisabled, ReasonFormIncomplete, "Complete the form to calculate"
}

// untouched reports whether the user has entered nothing beyond the seeded
// risk method selector
func untouched(fs validation.FormState) bool {
	for name, field := range fs.Fields {
		if name == trade.FieldRiskMethod {
			continue
		}
		if field.Filled() {
			return false
		}
	}
	return true
}

// staleFields returns known trade fields that carry a value but are not part
// of the current required set, meaning they belong to another method or asset
func staleFields(fs validation.FormState) []string {
	requiredSet := make(map[string]bool, len(fs.Required))
	for _, name := range fs.Required {
		requiredSet[name] = true
	}

	stale := make([]string, 0)
	for _, name := range orderedFieldNames(fs) {
		field := fs.Fields[name]
		if name == trade.FieldRiskMethod || requiredSet[name] || !field.Filled() {
			continue
		}
		if validation.KnownField(name) {
			stale = append(stale, name)
		}
	}
	return stale
}

// orderedFieldNames walks required fields first (in resolver order), then
// the rest alphabetically, so classification is deterministic
func orderedFieldNames(fs validation.FormState) []string {
	seen := make(map[string]bool, len(fs.Fields))
	names := make([]string, 0, len(fs.Fields))
	for _, name := range fs.Required {
		if _, ok := fs.Fields[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(fs.Fields))
	for name := range fs.Fields {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
