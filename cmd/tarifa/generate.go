package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/telemetry/logging"
)

var generateFlags struct {
	stdout bool
}

var generateCmd = &cobra.Command{
	Use:   "generate <input> [output]",
	Short: "Generate the provider request XML from an applicant profile",
	Long: `Read an applicant profile (JSON), validate it and write the
TarificacionThirdPartyRequest XML document.

The output defaults to output.default_file (insurance_request.xml). Relative
names are resolved against storage.root. Nothing is written if the input is
missing, is not valid JSON or fails validation.

Examples:
  # Write insurance_request.xml
  tarifa generate applicant.json

  # Write to a specific file
  tarifa generate applicant.json quote.xml

  # Print the document without writing it
  tarifa generate applicant.json --stdout`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateFlags.stdout, "stdout", false, "print the document instead of writing it")
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	ctx := logging.WithCommand(cmd.Context(), "generate")

	if generateFlags.stdout {
		result, err := a.service.Preview(ctx, input)
		if err != nil {
			return reportRunError(cmd.ErrOrStderr(), "generate", input, err)
		}
		_, err = cmd.OutOrStdout().Write(result.Document)
		return err
	}

	result, err := a.service.Generate(ctx, input, output)
	if err != nil {
		return reportRunError(cmd.ErrOrStderr(), "generate", input, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Insurance request XML generated successfully at: %s\n", result.Output)
	return nil
}
