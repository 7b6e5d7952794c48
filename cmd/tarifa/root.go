package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tarifa",
	Short: "tarifa - insurance quote request generator",
	Long: `tarifa reads an applicant profile (JSON), validates it and writes the
TarificacionThirdPartyRequest XML document used to request a quote from the
third-party insurance provider.

Configuration is read from the file given with --config (optional) and from
TARIFA_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the mapped status code.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
