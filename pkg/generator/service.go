package generator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"acme-insurance/tarifa/pkg/audit"
	"acme-insurance/tarifa/pkg/audit/recorder"
	"acme-insurance/tarifa/pkg/quote"
	"acme-insurance/tarifa/pkg/storage"
	"acme-insurance/tarifa/pkg/telemetry/logging"
	"acme-insurance/tarifa/pkg/telemetry/metrics"
)

// AuditSink receives one record per run. *recorder.Recorder implements it.
type AuditSink interface {
	Record(ctx context.Context, record *audit.Record) error
}

// Result describes a successful run.
type Result struct {
	RunID  string
	Mode   string
	Input  string
	Output string // empty unless Mode is ModeGenerate

	Applicant *quote.Applicant
	Request   *quote.Request // nil in ModeValidate
	Document  []byte         // nil in ModeValidate

	InputHash  string
	OutputHash string
	Duration   time.Duration
}

// Service runs invocations against a resource store.
type Service struct {
	store   storage.Store
	mapper  *quote.Mapper
	audit   AuditSink
	metrics *metrics.Collector
	logger  *logging.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAudit records every run in sink.
func WithAudit(sink AuditSink) Option {
	return func(s *Service) {
		s.audit = sink
	}
}

// WithMetrics records every run in collector and rewrites its textfile.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service.
func New(store storage.Store, mapper *quote.Mapper, opts ...Option) *Service {
	if mapper == nil {
		mapper = quote.NewMapper()
	}

	s := &Service{
		store:  store,
		mapper: mapper,
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate reads input, maps it and writes the document to output.
func (s *Service) Generate(ctx context.Context, input, output string) (*Result, error) {
	return s.run(ctx, ModeGenerate, input, output)
}

// Preview reads input and maps it without writing anything.
func (s *Service) Preview(ctx context.Context, input string) (*Result, error) {
	return s.run(ctx, ModePreview, input, "")
}

// Validate reads input and checks it against the field rules only.
func (s *Service) Validate(ctx context.Context, input string) (*Result, error) {
	return s.run(ctx, ModeValidate, input, "")
}

func (s *Service) run(ctx context.Context, mode, input, output string) (*Result, error) {
	runID := logging.GetRunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	ctx = logging.WithInput(ctx, input)

	result := &Result{
		RunID:  runID,
		Mode:   mode,
		Input:  input,
		Output: output,
	}

	start := s.now()
	err := s.execute(ctx, result)
	result.Duration = s.now().Sub(start)

	s.finish(ctx, result, start, err)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) execute(ctx context.Context, result *Result) error {
	data, err := s.store.Read(ctx, result.Input)
	if err != nil {
		return err
	}
	result.InputHash = recorder.HashContent(data)

	applicant, err := quote.Decode(data)
	if err != nil {
		return err
	}
	result.Applicant = applicant

	if result.Mode == ModeValidate {
		return quote.Validate(applicant)
	}

	req, err := s.mapper.Map(applicant)
	if err != nil {
		return err
	}

	doc, err := s.mapper.Marshal(req)
	if err != nil {
		return err
	}

	if result.Mode == ModeGenerate {
		if err := s.store.Write(ctx, result.Output, doc); err != nil {
			return err
		}
	}

	result.Request = req
	result.Document = doc
	result.OutputHash = recorder.HashContent(doc)
	return nil
}

func (s *Service) finish(ctx context.Context, result *Result, start time.Time, runErr error) {
	outcome := Classify(runErr)
	log := s.logger.WithContext(ctx)

	var fieldErrors []quote.FieldError
	var validationErr *quote.ValidationError
	if errors.As(runErr, &validationErr) {
		fieldErrors = validationErr.Errors
	}

	// Failures are reported to the operator by the caller; the log line is
	// informational.
	if runErr != nil {
		attrs := []any{
			"mode", result.Mode,
			"outcome", outcome,
			"duration", result.Duration,
			"error", runErr,
		}
		if validationErr != nil {
			attrs = append(attrs, "fields", validationErr.Fields())
		}
		log.Info("run failed", attrs...)
	} else {
		log.Info("run completed",
			"mode", result.Mode,
			"output", result.Output,
			"bytes", len(result.Document),
			"duration", result.Duration,
		)
	}

	if s.metrics != nil {
		s.metrics.RecordGeneration(result.Mode, outcome, result.Duration, len(result.Document))
		for _, fe := range fieldErrors {
			s.metrics.RecordFieldFailure(fe.Field, fe.Rule)
		}
		if err := s.metrics.WriteTextfile(); err != nil {
			log.Warn("failed to write metrics textfile", "error", err)
		}
	}

	if s.audit != nil {
		record := &audit.Record{
			RunID:      result.RunID,
			Mode:       result.Mode,
			Input:      result.Input,
			Output:     result.Output,
			InputHash:  result.InputHash,
			OutputHash: result.OutputHash,
			Outcome:    outcome,
			StartedAt:  start,
			Duration:   result.Duration,
		}
		if runErr != nil {
			record.Error = runErr.Error()
		}
		for _, fe := range fieldErrors {
			record.FieldErrors = append(record.FieldErrors, fe.Error())
		}

		// The run's own outcome stands even if the audit write fails.
		if err := s.audit.Record(ctx, record); err != nil {
			log.Error("failed to record audit entry", "error", err)
		}
	}
}
