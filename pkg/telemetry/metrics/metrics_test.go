package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"acme-insurance/tarifa/pkg/config"
)

func TestCollectorRecordGeneration(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: true}, nil)

	collector.RecordGeneration("generate", "success", 2*time.Millisecond, 512)
	collector.RecordGeneration("generate", "success", time.Millisecond, 500)
	collector.RecordGeneration("generate", "validation_failed", time.Millisecond, 0)

	if got := testutil.ToFloat64(collector.generation.generationsTotal.WithLabelValues("generate", "success")); got != 2 {
		t.Errorf("generations_total{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.generation.generationsTotal.WithLabelValues("generate", "validation_failed")); got != 1 {
		t.Errorf("generations_total{validation_failed} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.generation.lastSuccess); got == 0 {
		t.Error("last_success_timestamp_seconds not set")
	}
}

func TestCollectorRecordFieldFailure(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: true}, nil)

	collector.RecordFieldFailure("holder", "oneof")
	collector.RecordFieldFailure("holder", "oneof")
	collector.RecordFieldFailure("prevInsurance_years", "required")

	if got := testutil.ToFloat64(collector.generation.validationFailures.WithLabelValues("holder", "oneof")); got != 2 {
		t.Errorf("validation_failures_total{holder,oneof} = %v, want 2", got)
	}
}

func TestCollectorDisabled(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: false, Textfile: "/nonexistent/dir/x.prom"}, nil)

	collector.RecordGeneration("generate", "success", time.Millisecond, 100)
	collector.RecordFieldFailure("holder", "required")

	if got := testutil.CollectAndCount(collector.generation.generationsTotal); got != 0 {
		t.Errorf("disabled collector recorded %d series", got)
	}
	if err := collector.WriteTextfile(); err != nil {
		t.Errorf("WriteTextfile() on disabled collector error = %v", err)
	}
}

func TestCollectorWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tarifa.prom")
	collector := NewCollector(&config.MetricsConfig{Enabled: true, Textfile: path}, nil)

	collector.RecordGeneration("generate", "not_found", time.Millisecond, 0)

	if err := collector.WriteTextfile(); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `tarifa_generations_total{mode="generate",outcome="not_found"} 1`) {
		t.Errorf("textfile missing generation counter:\n%s", data)
	}
}

func TestCollectorWriteTextfileMissingPath(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	if err := collector.WriteTextfile(); err == nil {
		t.Error("WriteTextfile() without path expected error")
	}
}
