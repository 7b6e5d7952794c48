package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/cli"
	"acme-insurance/tarifa/pkg/generator"
	"acme-insurance/tarifa/pkg/telemetry/logging"
	"acme-insurance/tarifa/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <input> [output]",
	Short: "Regenerate the provider request whenever the input changes",
	Long: `Generate once, then regenerate every time the input file changes until
interrupted (SIGINT or SIGTERM).

A failed regeneration is reported and watching continues. Changes are
debounced (watch.debounce) and runs never overlap. When the audit trail is
enabled, retention pruning runs on audit.retention.schedule while watching.

Examples:
  tarifa watch applicant.json
  tarifa watch applicant.json quote.xml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	input := args[0]
	output := a.cfg.Output.DefaultFile
	if len(args) > 1 {
		output = args[1]
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
	ctx = logging.WithCommand(ctx, "watch")

	if a.pruner != nil {
		if err := a.pruner.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer a.pruner.Stop()
		if next := a.pruner.NextPruning(); next != nil {
			a.logger.Info("audit pruning scheduled", "next", next.Format(time.RFC3339))
		}
	}

	regenerate := newRegenerator(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.service, input, output)

	// The first run may fail; the input may be fixed while watching.
	_ = regenerate(ctx)

	fw, err := watch.NewFileWatcher(&watch.Config{
		Path:     a.store.Path(input),
		Debounce: a.cfg.Watch.Debounce,
	}, a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	if err := fw.Watch(ctx, regenerate); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// newRegenerator returns the watch callback. Every failure is printed to
// stderr: operator messages where one exists, the error itself otherwise.
func newRegenerator(stdout, stderr io.Writer, service *generator.Service, input, output string) func(context.Context) error {
	return func(ctx context.Context) error {
		result, err := service.Generate(ctx, input, output)
		if err != nil {
			if reported := reportRunError(stderr, "watch", input, err); !cli.IsReported(reported) {
				fmt.Fprintln(stderr, "Error:", reported)
			}
			return err
		}
		fmt.Fprintf(stdout, "Insurance request XML generated successfully at: %s\n", result.Output)
		return nil
	}
}
