package quote

import (
	"time"
)

// TimestampLayout is the FecCot layout (YYYY-MM-DDTHH:MM:SS, no zone).
const TimestampLayout = "2006-01-02T15:04:05"

// Mapper turns validated applicants into provider requests.
type Mapper struct {
	now      func() time.Time
	location *time.Location
	marshal  MarshalOptions
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithClock sets the timestamp source used for FecCot.
func WithClock(now func() time.Time) Option {
	return func(m *Mapper) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation sets the time zone FecCot is rendered in.
func WithLocation(loc *time.Location) Option {
	return func(m *Mapper) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithMarshalOptions sets the serialization options used by Generate.
func WithMarshalOptions(opts MarshalOptions) Option {
	return func(m *Mapper) {
		m.marshal = opts
	}
}

// NewMapper creates a Mapper that stamps requests with the local wall clock.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		now:      time.Now,
		location: time.Local,
		marshal:  DefaultMarshalOptions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map validates the applicant and builds the provider request.
// No request is returned unless every field rule passes.
func (m *Mapper) Map(a *Applicant) (*Request, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}

	occasional := *a.OccasionalDriver
	return &Request{
		Datos: Datos{
			DatosGenerales: DatosGenerales{
				CondPpalEsTomador: mainDriverIsHolder(*a.Holder),
				ConductorUnico:    singleDriver(occasional),
				FecCot:            m.now().In(m.location).Format(TimestampLayout),
				AnosSegAnte:       *a.PrevInsuranceYears,
				NroCondOca:        occasionalDriverCount(occasional),
				SeguroEnVigor:     policyInForce(*a.PrevInsuranceExists),
			},
		},
	}, nil
}

// Marshal serializes a request with the mapper's marshal options.
func (m *Mapper) Marshal(r *Request) ([]byte, error) {
	return r.Marshal(m.marshal)
}

// Generate decodes, validates, maps and serializes a JSON applicant profile.
func (m *Mapper) Generate(data []byte) ([]byte, error) {
	a, err := Decode(data)
	if err != nil {
		return nil, err
	}
	req, err := m.Map(a)
	if err != nil {
		return nil, err
	}
	return m.Marshal(req)
}

func mainDriverIsHolder(holder string) string {
	if holder == HolderMainDriver {
		return FlagYes
	}
	return FlagNo
}

// singleDriver and occasionalDriverCount read the same answer through
// separate tables: one keys on NO, the other on SI.
func singleDriver(occasionalDriver string) string {
	if occasionalDriver == AnswerNo {
		return FlagYes
	}
	return FlagNo
}

func occasionalDriverCount(occasionalDriver string) string {
	if occasionalDriver == AnswerYes {
		return "1"
	}
	return "0"
}

func policyInForce(prevInsuranceExists string) string {
	if prevInsuranceExists == AnswerYes {
		return FlagYes
	}
	return FlagNo
}
