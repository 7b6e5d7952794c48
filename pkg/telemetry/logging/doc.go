// Package logging provides structured logging for tarifa.
//
// The package wraps Go's standard log/slog package to provide:
//   - Text and JSON output
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware logging with the invocation's run ID
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRunID(ctx, uuid.NewString())
//	logger.InfoContext(ctx, "request generated", "output", "insurance_request.xml")
//
// Logs go to stderr by default so they never mix with documents printed to
// stdout.
package logging
