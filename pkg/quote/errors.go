package quote

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput matches errors caused by a payload that is not a JSON object.
	ErrMalformedInput = errors.New("malformed input")

	// ErrValidationFailed matches errors caused by one or more failing field rules.
	ErrValidationFailed = errors.New("validation failed")
)

// MalformedInputError reports a payload that could not be decoded.
type MalformedInputError struct {
	Cause error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %v", e.Cause)
}

// Unwrap returns the underlying decode error.
func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// FieldError describes one failing field.
type FieldError struct {
	// Field is the JSON key of the field (e.g., "prevInsurance_years").
	Field string

	// Rule is the rule that failed: "required", "oneof", "string" or "integer".
	Rule string

	// Message is a human-readable description of the failure.
	Message string
}

// Error returns "field: message".
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every field failure found in an applicant.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all field failures.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "invalid input data"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid input data: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid input data (%d errors):", len(e.Errors)))
	for _, fe := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(fe.Error())
	}
	return sb.String()
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Fields returns the names of the failing fields in document order.
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		names = append(names, fe.Field)
	}
	return names
}
