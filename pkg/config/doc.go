// Package config provides configuration management for tarifa.
//
// Configuration is loaded from an optional YAML file with environment
// variable overrides. Values are applied in the following order (later
// overrides earlier):
//
//  1. Default values (Default, defaults.go)
//  2. Values from the YAML file, if a path is given
//  3. Environment variable overrides (TARIFA_*)
//  4. Validation (fails with every invalid field listed)
//
// Loading:
//
//	cfg, err := config.Load("tarifa.yaml")  // file + env
//	cfg, err := config.Load("")             // defaults + env
//
// Environment variables:
//
//   - TARIFA_STORAGE_ROOT overrides storage.root
//   - TARIFA_OUTPUT_DEFAULT_FILE overrides output.default_file
//   - TARIFA_CLOCK_TIMEZONE overrides clock.timezone
//   - TARIFA_LOG_LEVEL, TARIFA_LOG_FORMAT override telemetry.logging
//   - TARIFA_METRICS_ENABLED, TARIFA_METRICS_TEXTFILE override telemetry.metrics
//   - TARIFA_AUDIT_ENABLED, TARIFA_AUDIT_PATH override audit
//   - TARIFA_WATCH_DEBOUNCE overrides watch.debounce
//
// Example configuration:
//
//	storage:
//	  root: "/var/lib/tarifa"
//	output:
//	  default_file: "insurance_request.xml"
//	  indent: "  "
//	  declaration: true
//	clock:
//	  timezone: "Europe/Madrid"
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	audit:
//	  enabled: true
//	  path: "data/audit.db"
package config
