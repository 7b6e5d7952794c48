package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/audit"
	"acme-insurance/tarifa/pkg/cli"
)

var auditFlags struct {
	limit      int
	offset     int
	outcome    string
	since      time.Duration
	format     string
	olderThan  time.Duration
	maxRecords int64
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Long: `Inspect and prune the audit trail of tarifa runs.

The audit trail is enabled with audit.enabled in the config file (or
TARIFA_AUDIT_ENABLED=true). Each run records the input and output names,
their SHA-256 hashes, the outcome and every failing field.

Subcommands:
  list   - List recent runs
  prune  - Delete old runs`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Long: `List recorded runs, newest first.

Examples:
  # Last 20 runs
  tarifa audit list --limit 20

  # Failed validations in the last day, as JSON
  tarifa audit list --outcome validation_failed --since 24h --format json`,
	Args: cobra.NoArgs,
	RunE: runAuditList,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs from the audit trail",
	Long: `Delete old runs from the audit trail.

Without flags the configured retention (audit.retention.days and
audit.retention.max_records) is applied.

Examples:
  # Apply the configured retention
  tarifa audit prune

  # Keep 30 days and at most 1000 runs
  tarifa audit prune --older-than 720h --max-records 1000`,
	Args: cobra.NoArgs,
	RunE: runAuditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd, auditPruneCmd)

	auditListCmd.Flags().IntVar(&auditFlags.limit, "limit", 20, "max results (0 for all)")
	auditListCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditListCmd.Flags().StringVar(&auditFlags.outcome, "outcome", "", "filter by outcome (success, not_found, malformed_input, validation_failed, write_failed, error)")
	auditListCmd.Flags().DurationVar(&auditFlags.since, "since", 0, "only runs started within this duration")
	auditListCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json, csv")

	auditPruneCmd.Flags().DurationVar(&auditFlags.olderThan, "older-than", 0, "delete runs older than this duration")
	auditPruneCmd.Flags().Int64Var(&auditFlags.maxRecords, "max-records", 0, "keep at most this many runs")
}

func runAuditList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(auditFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireAudit(); err != nil {
		return err
	}

	query := &audit.Query{
		Outcome: auditFlags.outcome,
		Limit:   auditFlags.limit,
		Offset:  auditFlags.offset,
	}
	if auditFlags.since > 0 {
		since := time.Now().Add(-auditFlags.since)
		query.Since = &since
	}

	records, err := a.auditStore.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("audit list", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), recordTable(records))
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireAudit(); err != nil {
		return err
	}

	deleted, err := pruneAudit(cmd.Context(), a)
	if err != nil {
		return cli.NewCommandError("audit prune", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d audit records.\n", deleted)
	return nil
}

func pruneAudit(ctx context.Context, a *app) (int64, error) {
	if auditFlags.olderThan == 0 && auditFlags.maxRecords == 0 {
		return a.pruner.Prune(ctx)
	}

	var total int64
	if auditFlags.olderThan > 0 {
		deleted, err := a.pruner.PruneOlderThan(ctx, auditFlags.olderThan)
		if err != nil {
			return total, err
		}
		total += deleted
	}
	if auditFlags.maxRecords > 0 {
		deleted, err := a.pruner.PruneToCount(ctx, auditFlags.maxRecords)
		if err != nil {
			return total, err
		}
		total += deleted
	}
	return total, nil
}

// recordTable renders audit records with cli formatters.
type recordTable []*audit.Record

func (t recordTable) Header() []string {
	return []string{"STARTED", "RUN ID", "MODE", "INPUT", "OUTPUT", "OUTCOME", "DURATION", "ERRORS"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.StartedAt.Local().Format(time.RFC3339),
			r.RunID,
			r.Mode,
			r.Input,
			dash(r.Output),
			r.Outcome,
			r.Duration.Round(time.Microsecond).String(),
			dash(strings.Join(r.FieldErrors, "; ")),
		})
	}
	return rows
}

func (t recordTable) Value() any {
	return []*audit.Record(t)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
