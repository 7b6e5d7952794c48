package config

import "time"

// Default values for configuration fields.
const (
	DefaultStorageRoot = "."

	DefaultOutputFile        = "insurance_request.xml"
	DefaultOutputIndent      = "  "
	DefaultOutputDeclaration = true

	DefaultTimezone = "Local"

	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "text"

	DefaultMetricsNamespace = "tarifa"

	DefaultAuditDriver            = "sqlite"
	DefaultAuditPath              = "data/audit.db"
	DefaultAuditBusyTimeout       = 5 * time.Second
	DefaultAuditRetentionDays     = 90
	DefaultAuditRetentionSchedule = "0 3 * * *"

	DefaultWatchDebounce = 200 * time.Millisecond
)

// Default returns a configuration with every default applied.
// Load unmarshals the YAML file on top of it, so keys absent from the file
// keep their default, including booleans that default to true.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Root: DefaultStorageRoot,
		},
		Output: OutputConfig{
			DefaultFile: DefaultOutputFile,
			Indent:      DefaultOutputIndent,
			Declaration: DefaultOutputDeclaration,
		},
		Clock: ClockConfig{
			Timezone: DefaultTimezone,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Namespace: DefaultMetricsNamespace,
			},
		},
		Audit: AuditConfig{
			Driver:      DefaultAuditDriver,
			Path:        DefaultAuditPath,
			BusyTimeout: DefaultAuditBusyTimeout,
			Retention: RetentionConfig{
				Days:     DefaultAuditRetentionDays,
				Schedule: DefaultAuditRetentionSchedule,
			},
		},
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
	}
}

// ApplyDefaults fills fields that were explicitly emptied in the YAML file
// and cannot be meaningfully empty. Output.Indent is left alone: an empty
// indent selects the single-line form.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Root == "" {
		cfg.Storage.Root = DefaultStorageRoot
	}
	if cfg.Output.DefaultFile == "" {
		cfg.Output.DefaultFile = DefaultOutputFile
	}
	if cfg.Clock.Timezone == "" {
		cfg.Clock.Timezone = DefaultTimezone
	}
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Audit.Driver == "" {
		cfg.Audit.Driver = DefaultAuditDriver
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.BusyTimeout == 0 {
		cfg.Audit.BusyTimeout = DefaultAuditBusyTimeout
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
