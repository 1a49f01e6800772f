// Package types - Cost ledger types
package types

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CostLedgerEntry is one output row: the discounted cost of a component
// in a programme year, expressed in the desired currency at desired-year
// prices.
type CostLedgerEntry struct {
	// Year is the programme year
	Year int `json:"year"`

	// Component is the module/category label
	Component string `json:"component"`

	// Cost is the discounted, rebased cost
	Cost decimal.Decimal `json:"cost"`
}

// Ledger is an ordered sequence of cost ledger entries
type Ledger []CostLedgerEntry

// Sort orders the ledger by year ascending, then component name.
// Output ordering is part of the engine contract; downstream consumers
// rely on it for deterministic diffs.
func (l Ledger) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Year != l[j].Year {
			return l[i].Year < l[j].Year
		}
		return l[i].Component < l[j].Component
	})
}

// Total sums all entries
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l {
		total = total.Add(e.Cost)
	}
	return total
}
