// Package metrics provides Prometheus metrics for tarifa runs.
//
// tarifa is a batch command, so nothing is scraped from it directly. After
// each run the collector's registry is written to a node-exporter textfile
// (see WriteTextfile), which the node exporter's textfile collector picks up.
//
// Metrics:
//   - tarifa_generations_total{mode,outcome}: invocations by outcome
//   - tarifa_generation_duration_seconds{mode}: end-to-end duration
//   - tarifa_validation_failures_total{field,rule}: failing field rules
//   - tarifa_document_bytes: size of generated documents
//   - tarifa_last_success_timestamp_seconds: time of the last successful run
//
// Usage:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordGeneration("generate", "success", time.Since(start), len(doc))
//	if err := collector.WriteTextfile(); err != nil {
//	    ...
//	}
package metrics
