package audit

import (
	"context"
	"time"
)

// Record is the audit entry for one invocation.
type Record struct {
	ID    string `json:"id"`     // UUID v4
	RunID string `json:"run_id"` // Invocation ID, shared with log lines

	Mode   string `json:"mode"`   // "generate" or "preview"
	Input  string `json:"input"`  // Input resource name
	Output string `json:"output"` // Output resource name, empty for preview

	InputHash  string `json:"input_hash"`  // SHA-256 of the input bytes
	OutputHash string `json:"output_hash"` // SHA-256 of the generated document

	Outcome     string   `json:"outcome"`                // "success", "not_found", ...
	Error       string   `json:"error,omitempty"`        // Error message if the run failed
	FieldErrors []string `json:"field_errors,omitempty"` // "field: message" per failing rule

	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Query defines filter parameters for audit records.
type Query struct {
	// Since and Until bound StartedAt (both inclusive).
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`

	// Outcome filters by outcome.
	Outcome string `json:"outcome,omitempty"`

	// IDs restricts the query to specific records.
	IDs []string `json:"ids,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// SortOrder is "asc" or "desc" by StartedAt. Default: "desc".
	SortOrder string `json:"sort_order,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	// Limit and Offset are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns the
	// number deleted. Limit and Offset are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
