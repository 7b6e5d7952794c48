package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"acme-insurance/tarifa/pkg/audit"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording. A disabled recorder drops records.
	Enabled bool

	// WriteTimeout bounds a single storage write.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder stores one audit record per generator run.
type Recorder struct {
	storage audit.Storage
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewRecorder creates a recorder backed by storage.
func NewRecorder(storage audit.Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Recorder{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "audit.recorder"),
		now:     time.Now,
	}
}

// Record assigns the record an ID and RecordedAt timestamp, then stores it.
func (r *Recorder) Record(ctx context.Context, record *audit.Record) error {
	if r == nil || !r.config.Enabled {
		return nil
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.RecordedAt = r.now()

	if r.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.WriteTimeout)
		defer cancel()
	}

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to write audit record",
			"record_id", record.ID,
			"run_id", record.RunID,
			"error", err,
		)
		return err
	}

	r.logger.Debug("audit record written",
		"record_id", record.ID,
		"run_id", record.RunID,
		"outcome", record.Outcome,
	)
	return nil
}

// Close closes the underlying storage.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.storage.Close()
}
