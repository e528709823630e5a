// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"

	"tollsweep/core/sensitivity"
	"tollsweep/core/sweep"
	"tollsweep/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal table
	FormatCLI Format = "cli"

	// FormatCSV is the machine-readable tabular sink
	FormatCSV Format = "csv"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter renders sweep and sensitivity results in one format.
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderSweep writes the KPI table for a sweep
	RenderSweep(w io.Writer, report *sweep.Report) error

	// RenderSensitivity writes the ranked impact table and curves
	RenderSensitivity(w io.Writer, analysis *sensitivity.Analysis) error
}

// New returns the formatter for a format name.
func New(name string) (Formatter, error) {
	switch Format(name) {
	case FormatCLI:
		return &cliFormatter{}, nil
	case FormatCSV:
		return &csvFormatter{}, nil
	case FormatMarkdown:
		return &markdownFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format %q", name)
	}
}
