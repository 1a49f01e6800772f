// Package output serializes cost ledgers for downstream consumers.
// The CSV form is the canonical exchange format: the presentation layer
// parses the header columns by name, so header and number formatting
// are part of the contract.
package output

import (
	"io"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCSV is the canonical comma-separated table
	FormatCSV Format = "csv"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the result
	Render(w io.Writer, result *Result) error
}

// Result is the complete output of one costing run
type Result struct {
	// Config echoes the programme configuration that produced the run
	Config *types.ProgrammeConfig `json:"config"`

	// Ledger is the ordered cost ledger
	Ledger types.Ledger `json:"ledger"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the run was performed
	Timestamp string `json:"timestamp"`

	// Duration is how long the run took
	Duration string `json:"duration"`

	// Version is the engine version
	Version string `json:"version"`
}

// For returns the formatter for a format type
func For(format Format) (Formatter, error) {
	switch format {
	case FormatCSV, "":
		return &CSVFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}
	return nil, errors.Configf("unknown output format %q", format)
}
