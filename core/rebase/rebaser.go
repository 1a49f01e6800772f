// Package rebase converts monetary amounts between (currency, price
// year) pairs using chained economic conversion factors: PPP conversion
// factors move amounts between local-currency and international-dollar
// terms, and the GDP-deflator series shifts the price year. The rebaser
// is a pure function of the reference snapshot; no monetary value enters
// the ledger without passing through it.
package rebase

import (
	"context"

	"github.com/shopspring/decimal"

	"programme-cost/core/refdata"
	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Rebaser converts amounts between currencies and price years
type Rebaser struct {
	store refdata.Store
}

// New creates a rebaser over a reference snapshot
func New(store refdata.Store) *Rebaser {
	return &Rebaser{store: store}
}

// Rebase converts m into targetCurrency at targetYear prices.
//
// The chain: local currency -> international dollars via the source
// country's PPP conversion factor at the source year; a price-year
// shift in international-dollar space via the United States GDP-deflator
// ratio deflator(targetYear)/deflator(sourceYear); then international
// dollars -> target local currency via the target country's PPP factor
// at the target year. USD amounts are already in international-dollar
// terms, so their PPP step is skipped. Years outside the tabulated
// series span clamp to the nearest boundary year.
func (r *Rebaser) Rebase(ctx context.Context, m types.MoneyAt, targetCurrency types.Currency, targetYear int) (types.MoneyAt, error) {
	src := m.Currency.Normalize()
	tgt := targetCurrency.Normalize()

	// identity: same currency, same price year
	if src == tgt && m.Year == targetYear {
		return types.NewMoneyAt(m.Amount, targetCurrency, targetYear), nil
	}

	amount := m.Amount

	// step 1: local currency -> international dollars at the source year
	if src != types.CurrencyUSA {
		ppp, err := r.seriesValue(ctx, string(src), refdata.SeriesPPPConversionFactor, m.Year)
		if err != nil {
			return types.MoneyAt{}, err
		}
		if ppp.IsZero() {
			return types.MoneyAt{}, errors.Newf(errors.TypeMissingSeries,
				"zero PPP conversion factor for %s at year %d", src, m.Year)
		}
		amount = amount.Div(ppp)
	}

	// step 2: shift the price year in international-dollar space. The
	// United States series anchors international dollars, which keeps
	// the chain invertible across any country pair.
	if m.Year != targetYear {
		from, err := r.seriesValue(ctx, string(types.CurrencyUSA), refdata.SeriesGDPDeflator, m.Year)
		if err != nil {
			return types.MoneyAt{}, err
		}
		to, err := r.seriesValue(ctx, string(types.CurrencyUSA), refdata.SeriesGDPDeflator, targetYear)
		if err != nil {
			return types.MoneyAt{}, err
		}
		if from.IsZero() {
			return types.MoneyAt{}, errors.Newf(errors.TypeMissingSeries,
				"zero GDP deflator at year %d", m.Year)
		}
		amount = amount.Mul(to).Div(from)
	}

	// step 3: international dollars -> target currency at the target year
	if tgt != types.CurrencyUSA {
		ppp, err := r.seriesValue(ctx, string(tgt), refdata.SeriesPPPConversionFactor, targetYear)
		if err != nil {
			return types.MoneyAt{}, err
		}
		amount = amount.Mul(ppp)
	}

	return types.NewMoneyAt(amount, targetCurrency, targetYear), nil
}

// seriesValue fetches one series value, clamping out-of-span years to
// the nearest tabulated boundary.
func (r *Rebaser) seriesValue(ctx context.Context, country, series string, year int) (decimal.Decimal, error) {
	rec, err := r.store.Series(ctx, country, series)
	if err != nil {
		return decimal.Zero, err
	}
	v, ok := rec.ValueAt(year)
	if !ok {
		return decimal.Zero, errors.MissingSeries(country, series)
	}
	return v, nil
}
