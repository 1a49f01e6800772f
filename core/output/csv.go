// Package output - CSV formatter
package output

import (
	"encoding/csv"
	"io"
	"strconv"
)

// costDecimals is the fixed number of decimal places in the cost
// column. Fixed-point output keeps the table locale-independent and
// byte-stable across runs.
const costDecimals = 2

// CSVFormatter renders the ledger as a comma-separated table with a
// `year, component, cost` header row.
type CSVFormatter struct{}

// Format implements Formatter
func (f *CSVFormatter) Format() Format {
	return FormatCSV
}

// Render implements Formatter
func (f *CSVFormatter) Render(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "component", "cost"}); err != nil {
		return err
	}
	for _, entry := range result.Ledger {
		row := []string{
			strconv.Itoa(entry.Year),
			entry.Component,
			entry.Cost.StringFixed(costDecimals),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
