// Package retention prunes old audit records.
//
// The Pruner deletes records by age (RetentionDays) and by count
// (MaxRecords, oldest first). The Scheduler runs the pruner on a cron
// schedule while a long-lived command such as watch is running.
package retention
