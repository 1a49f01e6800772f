// Package engine orchestrates one programme costing run: it walks the
// configured year range, invokes each configured cost module, rebases
// every raw line item to the desired currency and price year, discounts
// to present value and accumulates the ledger. The run is a pure,
// stateless-per-call transformation of (configuration, reference
// snapshot); any module failure aborts the whole run — a partial ledger
// could be mistaken for a complete one.
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"programme-cost/core/demography"
	"programme-cost/core/modules"
	"programme-cost/core/rebase"
	"programme-cost/core/refdata"
	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

var one = decimal.NewFromInt(1)

// Aggregator runs programme costings against a reference snapshot
type Aggregator struct {
	store      refdata.Store
	rebaser    *rebase.Rebaser
	population *demography.Resolver
}

// New creates an aggregator over a reference snapshot
func New(store refdata.Store) *Aggregator {
	return &Aggregator{
		store:      store,
		rebaser:    rebase.New(store),
		population: demography.New(store),
	}
}

type entryKey struct {
	year      int
	component string
}

// Run executes one costing run and returns the ordered ledger
func (a *Aggregator) Run(ctx context.Context, cfg *types.ProgrammeConfig) (types.Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := a.checkCurrency(ctx, cfg.DesiredCurrency); err != nil {
		return nil, err
	}

	deps := modules.Deps{Store: a.store, Population: a.population}
	configured := modules.ForConfig(deps, cfg.Components)

	rate := cfg.NormalizedDiscountRate()
	factor := one.Add(rate)
	target := types.Currency(cfg.DesiredCurrency)

	totals := make(map[entryKey]decimal.Decimal)
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Internal("costing run cancelled", err)
		}
		discount := factor.Pow(decimal.NewFromInt(int64(year - cfg.StartYear)))

		for _, mod := range configured {
			items, err := mod.Compute(ctx, cfg.Country, year)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				rebased, err := a.rebaser.Rebase(ctx, item.Value, target, cfg.DesiredYear)
				if err != nil {
					return nil, err
				}
				present := rebased.Amount.Div(discount)
				k := entryKey{year: year, component: item.Component}
				totals[k] = totals[k].Add(present)
			}
		}
	}

	ledger := make(types.Ledger, 0, len(totals))
	for k, cost := range totals {
		ledger = append(ledger, types.CostLedgerEntry{
			Year:      k.year,
			Component: k.component,
			Cost:      cost,
		})
	}
	ledger.Sort()
	return ledger, nil
}

// checkCurrency rejects output currencies the snapshot cannot convert
// into. USD needs no conversion series of its own.
func (a *Aggregator) checkCurrency(ctx context.Context, currency string) error {
	c := types.Currency(currency).Normalize()
	if c == types.CurrencyUSA {
		return nil
	}
	if _, err := a.store.Series(ctx, string(c), refdata.SeriesPPPConversionFactor); err != nil {
		return errors.Configf("unknown currency code %q", currency)
	}
	return nil
}
