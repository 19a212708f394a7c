package validation

import (
	"strings"

	"riskdesk/pkg/errors"
)

// Form aggregation: field states in, one immutable verdict out. The form
// state is replaced wholesale on every edit, never patched in place.

// FieldState is the validation outcome for a single field edit. Superseded
// by the next edit of the same field.
type FieldState struct {
	Field    string
	Value    string
	Valid    bool
	Kind     errors.Kind // empty when valid
	Error    string
	Required bool
}

// Filled reports whether the field holds a non-blank value
func (f FieldState) Filled() bool {
	return strings.TrimSpace(f.Value) != ""
}

// NewFieldState validates one raw value and records the outcome
func NewFieldState(name, raw string, required bool) FieldState {
	state := FieldState{
		Field:    name,
		Value:    raw,
		Valid:    true,
		Required: required,
	}

	if !state.Filled() {
		if required {
			state.Valid = false
			state.Kind = errors.KindRequiredMissing
			state.Error = "required field is empty"
		}
		return state
	}

	if verr := ValidateField(name, raw); verr != nil {
		state.Valid = false
		state.Kind = verr.Kind
		state.Error = verr.Message
	}
	return state
}

// FormState is the aggregated verdict over every field of one form
type FormState struct {
	FormID            string
	Fields            map[string]FieldState
	Required          []string
	HasErrors         bool
	AllRequiredFilled bool
	Submittable       bool
}

// Aggregate recomputes the form verdict from scratch: every present raw
// value is revalidated against the current required set
func Aggregate(formID string, values map[string]string, required []string) FormState {
	state := FormState{
		FormID:   formID,
		Fields:   make(map[string]FieldState, len(values)),
		Required: append([]string(nil), required...),
	}

	requiredSet := make(map[string]bool, len(required))
	for _, name := range required {
		requiredSet[name] = true
	}

	for name, raw := range values {
		state.Fields[name] = NewFieldState(name, raw, requiredSet[name])
	}

	state.HasErrors = false
	for _, fs := range state.Fields {
		if !fs.Valid {
			state.HasErrors = true
			break
		}
	}

	// No resolvable required set means the form can never submit
	state.AllRequiredFilled = len(required) > 0
	for _, name := range required {
		fs, present := state.Fields[name]
		if !present || !fs.Filled() || !fs.Valid {
			state.AllRequiredFilled = false
			break
		}
	}

	state.Submittable = !state.HasErrors && state.AllRequiredFilled
	return state
}

// MissingRequired returns the required fields that are absent or blank,
// in required-set order
func (s FormState) MissingRequired() []string {
	missing := make([]string, 0)
	for _, name := range s.Required {
		fs, present := s.Fields[name]
		if !present || !fs.Filled() {
			missing = append(missing, name)
		}
	}
	return missing
}

// AbsentRequired returns the required fields with no field state at all,
// meaning the form does not carry them for the current method
func (s FormState) AbsentRequired() []string {
	absent := make([]string, 0)
	for _, name := range s.Required {
		if _, present := s.Fields[name]; !present {
			absent = append(absent, name)
		}
	}
	return absent
}
