package config

import "time"

// Config is the root configuration structure for tarifa.
type Config struct {
	// Storage controls where input and output resources are resolved.
	Storage StorageConfig `yaml:"storage"`

	// Output controls the generated provider request.
	Output OutputConfig `yaml:"output"`

	// Clock controls the quote timestamp.
	Clock ClockConfig `yaml:"clock"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Audit contains the optional invocation audit trail configuration.
	Audit AuditConfig `yaml:"audit"`

	// Watch contains configuration for the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// StorageConfig configures the local resource store.
type StorageConfig struct {
	// Root is the directory relative resource names are resolved against.
	// Default: "."
	Root string `yaml:"root"`
}

// OutputConfig configures the generated XML document.
type OutputConfig struct {
	// DefaultFile is the output resource used when none is given.
	// Default: "insurance_request.xml"
	DefaultFile string `yaml:"default_file"`

	// Indent is the per-level indentation. Empty writes the document on one line.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// Declaration prepends <?xml version="1.0" encoding="UTF-8"?>.
	// Default: true
	Declaration bool `yaml:"declaration"`
}

// ClockConfig configures the FecCot timestamp.
type ClockConfig struct {
	// Timezone is an IANA zone name, or "Local" for the host zone.
	// Default: "Local"
	Timezone string `yaml:"timezone"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "warn"
	Level string `yaml:"level"`

	// Format is the log output format: text or json.
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus textfile written after each run.
type MetricsConfig struct {
	// Enabled turns metrics collection on.
	Enabled bool `yaml:"enabled"`

	// Textfile is the path of the node-exporter textfile. Required when enabled.
	Textfile string `yaml:"textfile"`

	// Namespace prefixes every metric name.
	// Default: "tarifa"
	Namespace string `yaml:"namespace"`
}

// AuditConfig configures the SQLite audit trail.
type AuditConfig struct {
	// Enabled records one audit entry per invocation.
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver: "sqlite" (pure Go) or "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention controls pruning of old audit entries.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig configures audit pruning.
type RetentionConfig struct {
	// Days is how long entries are kept. 0 keeps entries forever.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRecords caps the number of entries kept. 0 means unlimited.
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is the cron expression used by the watch command to prune.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last change before regenerating.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}
