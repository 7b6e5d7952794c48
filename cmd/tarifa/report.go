package main

import (
	"errors"
	"fmt"
	"io"

	"acme-insurance/tarifa/pkg/cli"
	"acme-insurance/tarifa/pkg/quote"
	"acme-insurance/tarifa/pkg/storage"
)

// reportRunError prints the operator message for a failed run. Errors
// without an operator message are returned as command errors for Execute
// to print.
func reportRunError(w io.Writer, command, input string, err error) error {
	var validationErr *quote.ValidationError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintf(w, "File not found: %s\n", input)
	case errors.Is(err, quote.ErrMalformedInput):
		fmt.Fprintln(w, "Invalid JSON format.")
	case errors.As(err, &validationErr):
		fmt.Fprintln(w, "Invalid input data.")
		for _, fe := range validationErr.Errors {
			fmt.Fprintf(w, "  - %s\n", fe.Error())
		}
	default:
		return cli.NewCommandError(command, err)
	}

	return cli.Quiet(cli.ExitFailure, err)
}
