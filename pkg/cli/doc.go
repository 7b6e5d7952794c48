/*
Package cli provides command-line helpers for the tarifa command.

Exit codes:

Commands return errors; ExitCode maps them to the process status. An
*ExitError carries an explicit code, and Quiet marks errors whose message
the command already printed for the operator:

	fmt.Fprintln(cmd.ErrOrStderr(), "Invalid JSON format.")
	return cli.Quiet(cli.ExitFailure, err)

Output Formatting:

Listings implement Table and are rendered as aligned text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, table); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
