package quote

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// rules checks the struct tags on Applicant. Field names in its errors are
// the JSON keys.
var rules = newRuleValidator()

func newRuleValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field rule of the applicant and returns a
// *ValidationError listing all failures, or nil if the applicant is valid.
// A nil applicant fails every required rule.
func Validate(a *Applicant) error {
	if a == nil {
		a = &Applicant{}
	}

	failed := make(map[string]FieldError, len(fieldOrder))
	for _, fe := range a.typeErrors {
		failed[fe.Field] = fe
	}

	if err := rules.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate applicant: %w", err)
		}
		for _, fe := range verrs {
			// A wrong-type value is already reported; don't add "required" on top.
			if _, seen := failed[fe.Field()]; seen {
				continue
			}
			failed[fe.Field()] = fieldErrorFrom(fe)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	errs := make([]FieldError, 0, len(failed))
	for _, name := range fieldOrder {
		if fe, ok := failed[name]; ok {
			errs = append(errs, fe)
		}
	}
	return &ValidationError{Errors: errs}
}

func fieldErrorFrom(fe validator.FieldError) FieldError {
	out := FieldError{Field: fe.Field(), Rule: fe.Tag()}
	switch fe.Tag() {
	case "required":
		out.Message = "is required"
	case "oneof":
		out.Message = "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		out.Message = fmt.Sprintf("failed the %q rule", fe.Tag())
	}
	return out
}
