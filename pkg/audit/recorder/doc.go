// Package recorder writes audit records for generator runs.
//
// Records are written synchronously: each CLI invocation produces at most a
// handful of records and the process exits right after. A failing audit
// backend never fails the run; the error is logged and returned to the
// caller, which decides what to do with it.
package recorder
