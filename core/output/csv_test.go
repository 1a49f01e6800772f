// Package output_test - Formatter tests
package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"programme-cost/core/output"
	"programme-cost/core/types"
)

func fixtureResult() *output.Result {
	return &output.Result{
		Ledger: types.Ledger{
			{Year: 2020, Component: "personnel/cadre-1", Cost: decimal.NewFromFloat(1234.5)},
			{Year: 2020, Component: "travel/district", Cost: decimal.NewFromFloat(0.125)},
		},
	}
}

// TestCSVRender verifies the header and fixed-point cost column
func TestCSVRender(t *testing.T) {
	var buf bytes.Buffer
	f, err := output.For(output.FormatCSV)
	if err != nil {
		t.Fatalf("For(csv) failed: %v", err)
	}
	if err := f.Render(&buf, fixtureResult()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"year,component,cost",
		"2020,personnel/cadre-1,1234.50",
		"2020,travel/district,0.13",
	}
	if len(lines) != len(want) {
		t.Fatalf("rendered %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

// TestDefaultFormatIsCSV verifies the empty format selection
func TestDefaultFormatIsCSV(t *testing.T) {
	f, err := output.For("")
	if err != nil {
		t.Fatalf("For(\"\") failed: %v", err)
	}
	if f.Format() != output.FormatCSV {
		t.Errorf("default format = %s, want csv", f.Format())
	}
}

// TestUnknownFormatRejected verifies format validation
func TestUnknownFormatRejected(t *testing.T) {
	if _, err := output.For("yaml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

// TestJSONRender verifies the ledger survives the JSON round trip
func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	f, err := output.For(output.FormatJSON)
	if err != nil {
		t.Fatalf("For(json) failed: %v", err)
	}
	if err := f.Render(&buf, fixtureResult()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{`"personnel/cadre-1"`, `"travel/district"`, `"year"`} {
		if !strings.Contains(out, fragment) {
			t.Errorf("JSON output missing %s:\n%s", fragment, out)
		}
	}
}
