package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Holder values.
const (
	HolderMainDriver = "CONDUCTOR_PRINCIPAL"
	HolderOther      = "OTHER"
)

// Answer values used by the applicant form for yes/no questions.
const (
	AnswerYes = "SI"
	AnswerNo  = "NO"
)

// JSON keys of the applicant profile.
const (
	FieldHolder              = "holder"
	FieldOccasionalDriver    = "occasionalDriver"
	FieldPrevInsuranceYears  = "prevInsurance_years"
	FieldPrevInsuranceExists = "prevInsurance_exists"
)

// fieldOrder is the order in which field failures are reported.
var fieldOrder = []string{
	FieldHolder,
	FieldOccasionalDriver,
	FieldPrevInsuranceYears,
	FieldPrevInsuranceExists,
}

// Applicant is a decoded applicant profile.
//
// A nil field means the key was absent, null, or held a value of the wrong
// JSON type. Decode remembers the wrong-type fields so Validate can report
// them with the right rule.
type Applicant struct {
	Holder              *string `json:"holder" validate:"required,oneof=CONDUCTOR_PRINCIPAL OTHER"`
	OccasionalDriver    *string `json:"occasionalDriver" validate:"required,oneof=SI NO"`
	PrevInsuranceYears  *int64  `json:"prevInsurance_years" validate:"required"`
	PrevInsuranceExists *string `json:"prevInsurance_exists" validate:"required,oneof=SI NO"`

	typeErrors []FieldError
}

// NewApplicant builds a fully populated applicant.
func NewApplicant(holder, occasionalDriver string, prevInsuranceYears int64, prevInsuranceExists string) *Applicant {
	return &Applicant{
		Holder:              &holder,
		OccasionalDriver:    &occasionalDriver,
		PrevInsuranceYears:  &prevInsuranceYears,
		PrevInsuranceExists: &prevInsuranceExists,
	}
}

// Decode parses a JSON applicant profile.
//
// It returns a *MalformedInputError if data is not valid JSON or its top-level
// value is a scalar or null. A top-level array carries no named fields and
// decodes to an empty Applicant. Unknown keys are ignored.
func Decode(data []byte) (*Applicant, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &MalformedInputError{Cause: err}
		}
		return &Applicant{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &MalformedInputError{Cause: err}
	}
	if fields == nil {
		return nil, &MalformedInputError{Cause: errors.New("top-level value is null, want an object")}
	}

	a := &Applicant{}
	a.Holder = a.decodeString(fields, FieldHolder)
	a.OccasionalDriver = a.decodeString(fields, FieldOccasionalDriver)
	a.PrevInsuranceYears = a.decodeInteger(fields, FieldPrevInsuranceYears)
	a.PrevInsuranceExists = a.decodeString(fields, FieldPrevInsuranceExists)

	return a, nil
}

func (a *Applicant) decodeString(fields map[string]json.RawMessage, name string) *string {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		a.typeErrors = append(a.typeErrors, FieldError{
			Field:   name,
			Rule:    "string",
			Message: "must be a string",
		})
		return nil
	}
	return &s
}

func (a *Applicant) decodeInteger(fields map[string]json.RawMessage, name string) *int64 {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil
	}

	n, ok := parseInteger(raw)
	if !ok {
		a.typeErrors = append(a.typeErrors, FieldError{
			Field:   name,
			Rule:    "integer",
			Message: "must be an integer",
		})
		return nil
	}
	return &n
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseInteger accepts a JSON number with an integral value (5, 5.0, -2, 1e2)
// or a string holding a base-10 integer ("5", " +7 ").
func parseInteger(raw json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
