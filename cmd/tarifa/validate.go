package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/telemetry/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Validate an applicant profile without generating anything",
	Long: `Read an applicant profile (JSON) and check every field rule.

Exits 0 when the profile is valid and 1 otherwise, listing every failing
field.

Examples:
  tarifa validate applicant.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	input := args[0]
	ctx := logging.WithCommand(cmd.Context(), "validate")

	if _, err := a.service.Validate(ctx, input); err != nil {
		return reportRunError(cmd.ErrOrStderr(), "validate", input, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Input data is valid: %s\n", input)
	return nil
}
