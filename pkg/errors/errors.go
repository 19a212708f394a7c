package errors

import (
	"errors"
	"fmt"
)

// Validation error kinds. The first four are recoverable by user correction
// and always travel as data, never as panics.

var (
	// ErrRequiredFieldMissing indicates a required field is blank
	ErrRequiredFieldMissing = errors.New("required field missing")

	// ErrInvalidFormat indicates a value could not be parsed for its field type
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange indicates a parsed value falls outside the field's min/max
	ErrOutOfRange = errors.New("value out of range")

	// ErrCrossFieldInconsistency indicates a relationship between fields is violated
	ErrCrossFieldInconsistency = errors.New("cross-field inconsistency")

	// ErrBusinessRuleViolation indicates an account-level cap or limit is violated
	ErrBusinessRuleViolation = errors.New("business rule violation")

	// ErrCalculationFailure indicates sizing could not produce a position
	ErrCalculationFailure = errors.New("calculation failure")
)

// Kind identifies which taxonomy bucket a validation error belongs to
type Kind string

const (
	KindRequiredMissing Kind = "required_field_missing"
	KindInvalidFormat   Kind = "invalid_format"
	KindOutOfRange      Kind = "out_of_range"
	KindCrossField      Kind = "cross_field_inconsistency"
	KindBusinessRule    Kind = "business_rule_violation"
	KindCalculation     Kind = "calculation_failure"
)

// String returns string representation
func (k Kind) String() string {
	return string(k)
}

// Sentinel returns the sentinel error for the kind, for use with errors.Is
func (k Kind) Sentinel() error {
	switch k {
	case KindRequiredMissing:
		return ErrRequiredFieldMissing
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindOutOfRange:
		return ErrOutOfRange
	case KindCrossField:
		return ErrCrossFieldInconsistency
	case KindBusinessRule:
		return ErrBusinessRuleViolation
	case KindCalculation:
		return ErrCalculationFailure
	}
	return ErrInvalidFormat
}

// ValidationError carries a field-scoped validation failure as data
type ValidationError struct {
	Field   string
	Kind    Kind
	Message string
	Value   string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field '%s': %s", e.Kind, e.Field, e.Message)
}

// Unwrap returns the taxonomy sentinel so errors.Is works on kinds
func (e *ValidationError) Unwrap() error {
	return e.Kind.Sentinel()
}

// NewValidationError creates a new validation error
func NewValidationError(field string, kind Kind, message string, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    kind,
		Message: message,
		Value:   value,
	}
}

// MultiError collects validation errors across fields
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("multiple errors (%d): %v", len(m.Errors), m.Errors[0])
}

// Add adds an error to the list
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// ToError returns the MultiError as an error, or nil if no errors
func (m *MultiError) ToError() error {
	if !m.HasErrors() {
		return nil
	}
	return m
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
