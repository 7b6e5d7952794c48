package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is aligned plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or csv)", s)
	}
}

// Table is a listing that can be rendered in any OutputFormat.
type Table interface {
	// Header returns the column names.
	Header() []string

	// Rows returns one string slice per row, aligned with Header.
	Rows() [][]string

	// Value returns the data encoded by the JSON formatter.
	Value() any
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, table Table) error
}

// TextFormatter renders tables as tab-aligned columns.
type TextFormatter struct{}

// FormatTo writes table to w as aligned text.
func (f *TextFormatter) FormatTo(w io.Writer, table Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Header(), "\t"))
	for _, row := range table.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes table.Value() to w as JSON.
func (f *JSONFormatter) FormatTo(w io.Writer, table Table) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(table.Value())
}

// CSVFormatter formats output as CSV with a header row.
type CSVFormatter struct{}

// FormatTo writes table to w as CSV.
func (f *CSVFormatter) FormatTo(w io.Writer, table Table) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(table.Header()); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
