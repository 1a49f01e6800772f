// Package output - JSON formatter
package output

import (
	"io"

	"github.com/goccy/go-json"
)

// JSONFormatter renders the full result, configuration echo included
type JSONFormatter struct{}

// Format implements Formatter
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
