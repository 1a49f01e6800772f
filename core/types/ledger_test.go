// Package types_test - Ledger ordering tests
package types_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
)

// TestLedgerSort verifies year-major, component-minor ordering
func TestLedgerSort(t *testing.T) {
	ledger := types.Ledger{
		{Year: 2021, Component: "travel/district", Cost: decimal.NewFromInt(1)},
		{Year: 2020, Component: "travel/district", Cost: decimal.NewFromInt(2)},
		{Year: 2020, Component: "personnel/cadre-1", Cost: decimal.NewFromInt(3)},
		{Year: 2021, Component: "personnel/cadre-1", Cost: decimal.NewFromInt(4)},
	}
	ledger.Sort()

	want := []struct {
		year      int
		component string
	}{
		{2020, "personnel/cadre-1"},
		{2020, "travel/district"},
		{2021, "personnel/cadre-1"},
		{2021, "travel/district"},
	}
	for i, w := range want {
		if ledger[i].Year != w.year || ledger[i].Component != w.component {
			t.Errorf("entry %d = %d/%s, want %d/%s",
				i, ledger[i].Year, ledger[i].Component, w.year, w.component)
		}
	}
}

// TestLedgerTotal verifies summation
func TestLedgerTotal(t *testing.T) {
	ledger := types.Ledger{
		{Year: 2020, Component: "a", Cost: decimal.NewFromFloat(1.5)},
		{Year: 2020, Component: "b", Cost: decimal.NewFromFloat(2.5)},
	}
	if got := ledger.Total(); !got.Equal(decimal.NewFromInt(4)) {
		t.Errorf("Total = %s, want 4", got)
	}
}
