package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"acme-insurance/tarifa/pkg/config"
)

// Collector owns the Prometheus registry for a tarifa process.
// A disabled collector accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	generation *GenerationMetrics
}

// NewCollector creates a metrics collector. If registry is nil a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		config:     cfg,
		registry:   registry,
		generation: NewGenerationMetrics(cfg.Namespace, registry),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Enabled reports whether metrics are recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordGeneration records one invocation.
//
// Parameters:
//   - mode: "generate" or "preview"
//   - outcome: outcome label (e.g., "success", "validation_failed")
//   - duration: end-to-end duration
//   - size: generated document size in bytes, 0 when nothing was generated
func (c *Collector) RecordGeneration(mode, outcome string, duration time.Duration, size int) {
	if !c.config.Enabled {
		return
	}
	c.generation.Record(mode, outcome, duration, size)
}

// RecordFieldFailure records a failing validation rule.
func (c *Collector) RecordFieldFailure(field, rule string) {
	if !c.config.Enabled {
		return
	}
	c.generation.RecordFieldFailure(field, rule)
}

// WriteTextfile writes the registry to the configured textfile. It is a
// no-op when metrics are disabled.
func (c *Collector) WriteTextfile() error {
	if !c.config.Enabled {
		return nil
	}
	if c.config.Textfile == "" {
		return fmt.Errorf("metrics textfile path not configured")
	}
	if err := prometheus.WriteToTextfile(c.config.Textfile, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", c.config.Textfile, err)
	}
	return nil
}
