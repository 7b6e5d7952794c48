package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics tracks request generation.
type GenerationMetrics struct {
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
	documentBytes      prometheus.Histogram
	lastSuccess        prometheus.Gauge
}

// NewGenerationMetrics creates and registers generation metrics.
func NewGenerationMetrics(namespace string, registry *prometheus.Registry) *GenerationMetrics {
	gm := &GenerationMetrics{
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of request generations by outcome",
			},
			[]string{"mode", "outcome"},
		),

		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of request generation in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),

		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of failing applicant field rules",
			},
			[]string{"field", "rule"},
		),

		documentBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_bytes",
				Help:      "Size of generated provider requests in bytes",
				Buckets:   prometheus.ExponentialBuckets(128, 2, 6), // 128B to 4KB
			},
		),

		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful generation",
			},
		),
	}

	registry.MustRegister(
		gm.generationsTotal,
		gm.generationDuration,
		gm.validationFailures,
		gm.documentBytes,
		gm.lastSuccess,
	)

	return gm
}

// Record records one generation.
func (gm *GenerationMetrics) Record(mode, outcome string, duration time.Duration, size int) {
	gm.generationsTotal.WithLabelValues(mode, outcome).Inc()
	gm.generationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if size > 0 {
		gm.documentBytes.Observe(float64(size))
	}
	if outcome == "success" {
		gm.lastSuccess.SetToCurrentTime()
	}
}

// RecordFieldFailure records one failing field rule.
func (gm *GenerationMetrics) RecordFieldFailure(field, rule string) {
	gm.validationFailures.WithLabelValues(field, rule).Inc()
}
