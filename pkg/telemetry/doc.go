// Package telemetry groups the observability packages used by tarifa.
//
// # Components
//
//   - logging: slog-based structured logging with run context fields
//   - metrics: Prometheus metrics written to a node-exporter textfile
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//		return err
//	}
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "run completed", "bytes", len(doc))
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordGeneration("generate", "success", elapsed, len(doc))
//	if err := collector.WriteTextfile(); err != nil {
//		logger.Warn("failed to write metrics textfile", "error", err)
//	}
//
// tarifa runs once per invocation, so metrics are not served over HTTP.
package telemetry
