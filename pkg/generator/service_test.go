package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"acme-insurance/tarifa/pkg/audit"
	"acme-insurance/tarifa/pkg/audit/recorder"
	auditstorage "acme-insurance/tarifa/pkg/audit/storage"
	"acme-insurance/tarifa/pkg/config"
	"acme-insurance/tarifa/pkg/quote"
	"acme-insurance/tarifa/pkg/storage"
	"acme-insurance/tarifa/pkg/telemetry/logging"
	"acme-insurance/tarifa/pkg/telemetry/metrics"
)

const validInput = `{
  "holder": "CONDUCTOR_PRINCIPAL",
  "occasionalDriver": "NO",
  "prevInsurance_years": 5,
  "prevInsurance_exists": "SI"
}`

const expectedXML = `<?xml version="1.0" encoding="UTF-8"?>
<TarificacionThirdPartyRequest>
  <Datos>
    <DatosGenerales>
      <CondPpalEsTomador>S</CondPpalEsTomador>
      <ConductorUnico>S</ConductorUnico>
      <FecCot>2024-03-07T09:05:03</FecCot>
      <AnosSegAnte>5</AnosSegAnte>
      <NroCondOca>0</NroCondOca>
      <SeguroEnVigor>S</SeguroEnVigor>
    </DatosGenerales>
  </Datos>
</TarificacionThirdPartyRequest>
`

var fixedTime = time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

type fixture struct {
	textfile string

	store   *storage.Memory
	audit   *auditstorage.MemoryStorage
	metrics *metrics.Collector
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		textfile: filepath.Join(t.TempDir(), "tarifa.prom"),
		store:    storage.NewMemory(),
		audit:    auditstorage.NewMemoryStorage(),
	}
	f.metrics = metrics.NewCollector(&config.MetricsConfig{
		Enabled:  true,
		Textfile: f.textfile,
	}, nil)

	mapper := quote.NewMapper(
		quote.WithClock(func() time.Time { return fixedTime }),
		quote.WithLocation(time.UTC),
	)

	f.service = New(f.store, mapper,
		WithAudit(recorder.NewRecorder(f.audit, nil)),
		WithMetrics(f.metrics),
		WithLogger(logging.Nop()),
	)
	return f
}

func (f *fixture) records(t *testing.T) []*audit.Record {
	t.Helper()
	records, err := f.audit.Query(context.Background(), &audit.Query{})
	if err != nil {
		t.Fatalf("audit Query() failed: %v", err)
	}
	return records
}

func TestService_Generate(t *testing.T) {
	f := newFixture(t)
	f.store.Put("applicant.json", []byte(validInput))

	result, err := f.service.Generate(context.Background(), "applicant.json", "insurance_request.xml")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	written, err := f.store.Read(context.Background(), "insurance_request.xml")
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if diff := cmp.Diff(expectedXML, string(written)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if string(result.Document) != string(written) {
		t.Error("result document differs from written output")
	}
	if result.RunID == "" {
		t.Error("expected run ID")
	}
	if result.InputHash != recorder.HashContent([]byte(validInput)) {
		t.Errorf("InputHash = %q", result.InputHash)
	}

	records := f.records(t)
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	rec := records[0]
	if rec.Outcome != OutcomeSuccess || rec.RunID != result.RunID || rec.Mode != ModeGenerate {
		t.Errorf("unexpected audit record: %+v", rec)
	}
	if rec.OutputHash != recorder.HashContent(written) {
		t.Errorf("audit OutputHash = %q", rec.OutputHash)
	}
}

func TestService_KeepsRunIDFromContext(t *testing.T) {
	f := newFixture(t)
	f.store.Put("applicant.json", []byte(validInput))

	ctx := logging.WithRunID(context.Background(), "run-42")
	result, err := f.service.Preview(ctx, "applicant.json")
	if err != nil {
		t.Fatalf("Preview() failed: %v", err)
	}
	if result.RunID != "run-42" {
		t.Errorf("RunID = %q, want run-42", result.RunID)
	}
}

func TestService_Failures(t *testing.T) {
	tests := []struct {
		name        string
		input       string // empty means the input is missing
		writeErr    error
		wantOutcome string
		wantFields  []string
	}{
		{
			name:        "missing input",
			wantOutcome: OutcomeNotFound,
		},
		{
			name:        "malformed JSON",
			input:       `{"holder": "OTHER",`,
			wantOutcome: OutcomeMalformedInput,
		},
		{
			name:        "invalid fields",
			input:       `{"holder": "NOBODY", "occasionalDriver": "NO", "prevInsurance_years": 5}`,
			wantOutcome: OutcomeValidationFailed,
			wantFields: []string{
				"holder: must be one of CONDUCTOR_PRINCIPAL, OTHER",
				"prevInsurance_exists: is required",
			},
		},
		{
			name:        "write failure",
			input:       validInput,
			writeErr:    errors.New("disk full"),
			wantOutcome: OutcomeWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.input != "" {
				f.store.Put("applicant.json", []byte(tt.input))
			}
			f.store.WriteErr = tt.writeErr

			result, err := f.service.Generate(context.Background(), "applicant.json", "out.xml")
			if err == nil {
				t.Fatal("expected error")
			}
			if result != nil {
				t.Error("expected nil result on failure")
			}
			if got := Classify(err); got != tt.wantOutcome {
				t.Errorf("Classify() = %q, want %q", got, tt.wantOutcome)
			}
			if f.store.Exists("out.xml") {
				t.Error("output must not be written on failure")
			}

			records := f.records(t)
			if len(records) != 1 {
				t.Fatalf("expected 1 audit record, got %d", len(records))
			}
			if records[0].Outcome != tt.wantOutcome {
				t.Errorf("audit outcome = %q, want %q", records[0].Outcome, tt.wantOutcome)
			}
			if records[0].Error == "" {
				t.Error("expected audit error message")
			}
			if diff := cmp.Diff(tt.wantFields, records[0].FieldErrors); diff != "" {
				t.Errorf("audit field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_PreviewWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.store.Put("applicant.json", []byte(validInput))

	result, err := f.service.Preview(context.Background(), "applicant.json")
	if err != nil {
		t.Fatalf("Preview() failed: %v", err)
	}
	if string(result.Document) != expectedXML {
		t.Errorf("unexpected document:\n%s", result.Document)
	}
	if diff := cmp.Diff([]string{"applicant.json"}, f.store.Names()); diff != "" {
		t.Errorf("store contents changed (-want +got):\n%s", diff)
	}
}

func TestService_Validate(t *testing.T) {
	f := newFixture(t)
	f.store.Put("good.json", []byte(validInput))
	f.store.Put("bad.json", []byte(`{"holder": "OTHER"}`))

	result, err := f.service.Validate(context.Background(), "good.json")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if result.Document != nil || result.Request != nil {
		t.Error("validate must not build a document")
	}

	_, err = f.service.Validate(context.Background(), "bad.json")
	var validationErr *quote.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *quote.ValidationError, got %v", err)
	}
	if diff := cmp.Diff([]string{"occasionalDriver", "prevInsurance_years", "prevInsurance_exists"}, validationErr.Fields()); diff != "" {
		t.Errorf("failing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Metrics(t *testing.T) {
	f := newFixture(t)
	f.store.Put("applicant.json", []byte(validInput))
	f.store.Put("bad.json", []byte(`{}`))

	ctx := context.Background()
	if _, err := f.service.Generate(ctx, "applicant.json", "out.xml"); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	f.service.Generate(ctx, "bad.json", "out2.xml")

	n, err := testutil.GatherAndCount(f.metrics.Registry(), "tarifa_generations_total")
	if err != nil {
		t.Fatalf("GatherAndCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 generations_total series, got %d", n)
	}

	data, err := os.ReadFile(f.textfile)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`tarifa_generations_total{mode="generate",outcome="success"} 1`,
		`tarifa_generations_total{mode="generate",outcome="validation_failed"} 1`,
		`tarifa_validation_failures_total{field="holder",rule="required"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestService_AuditFailureDoesNotFailRun(t *testing.T) {
	f := newFixture(t)
	f.store.Put("applicant.json", []byte(validInput))
	f.service.audit = failingSink{}

	if _, err := f.service.Generate(context.Background(), "applicant.json", "out.xml"); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !f.store.Exists("out.xml") {
		t.Error("expected output to be written")
	}
}

type failingSink struct{}

func (failingSink) Record(ctx context.Context, record *audit.Record) error {
	return errors.New("audit unavailable")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSuccess},
		{&storage.NotFoundError{Name: "x"}, OutcomeNotFound},
		{&quote.MalformedInputError{Cause: errors.New("eof")}, OutcomeMalformedInput},
		{&quote.ValidationError{}, OutcomeValidationFailed},
		{&storage.WriteError{Name: "x", Cause: errors.New("eio")}, OutcomeWriteFailed},
		{errors.New("boom"), OutcomeError},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestService_FailureLogNamesFields(t *testing.T) {
	var buf strings.Builder
	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewMemory()
	store.Put("bad.json", []byte(`{"holder": "OTHER", "occasionalDriver": "NO", "prevInsurance_years": 2}`))
	service := New(store, quote.NewMapper(), WithLogger(logger))

	if _, err := service.Validate(context.Background(), "bad.json"); err == nil {
		t.Fatal("expected validation failure")
	}

	out := buf.String()
	if !strings.Contains(out, `"msg":"run failed"`) {
		t.Fatalf("log = %q, want a run failed entry", out)
	}
	if !strings.Contains(out, `"fields":["prevInsurance_exists"]`) {
		t.Errorf("log = %q, want the failing fields", out)
	}
}
