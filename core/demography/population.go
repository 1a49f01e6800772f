// Package demography resolves population figures from the reference
// snapshot for modules that scale costs by population reach.
package demography

import (
	"context"

	"github.com/shopspring/decimal"

	"programme-cost/core/refdata"
)

// Population coverage of the reference table; years outside clamp to
// the nearest boundary, mirroring the economic-series policy.
const (
	FirstYear = 1950
	LastYear  = 2100
)

var thousand = decimal.NewFromInt(1000)

// Resolver looks up "Median" variant population figures
type Resolver struct {
	store refdata.Store
}

// New creates a resolver over a reference snapshot
func New(store refdata.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the population of a country in a year, in thousands
func (r *Resolver) Resolve(ctx context.Context, country string, year int) (decimal.Decimal, error) {
	if year < FirstYear {
		year = FirstYear
	} else if year > LastYear {
		year = LastYear
	}
	rec, err := r.store.Population(ctx, country, year)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.ValueThousands, nil
}

// Individuals returns the population as a head count
func (r *Resolver) Individuals(ctx context.Context, country string, year int) (decimal.Decimal, error) {
	thousands, err := r.Resolve(ctx, country, year)
	if err != nil {
		return decimal.Zero, err
	}
	return thousands.Mul(thousand), nil
}
