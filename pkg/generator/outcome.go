package generator

import (
	"errors"

	"acme-insurance/tarifa/pkg/quote"
	"acme-insurance/tarifa/pkg/storage"
)

// Run modes.
const (
	ModeGenerate = "generate"
	ModePreview  = "preview"
	ModeValidate = "validate"
)

// Outcomes recorded in metrics and the audit trail.
const (
	OutcomeSuccess          = "success"
	OutcomeNotFound         = "not_found"
	OutcomeMalformedInput   = "malformed_input"
	OutcomeValidationFailed = "validation_failed"
	OutcomeWriteFailed      = "write_failed"
	OutcomeError            = "error"
)

// Classify maps a run error to its outcome label.
func Classify(err error) string {
	var writeErr *storage.WriteError

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, storage.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, quote.ErrMalformedInput):
		return OutcomeMalformedInput
	case errors.Is(err, quote.ErrValidationFailed):
		return OutcomeValidationFailed
	case errors.As(err, &writeErr):
		return OutcomeWriteFailed
	default:
		return OutcomeError
	}
}
