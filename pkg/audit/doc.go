// Package audit defines the invocation audit trail.
//
// When enabled, every generate or preview run stores one Record: which input
// was read, which output was written, SHA-256 hashes of both, and how the run
// ended. Records never contain the applicant data itself.
//
// Subpackages:
//   - storage: SQLite and in-memory Storage backends
//   - recorder: builds and stores records, hashing helpers
//   - retention: age/count pruning and its cron scheduler
package audit
