// Package modules - Travel and per-diem costs
package modules

import (
	"context"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Travel costs recurring trips using the country's tiered daily
// subsistence allowances. Local staff rates are the national-staff rate
// scaled by the country's local proportion.
type Travel struct {
	deps Deps
	cfg  *types.TravelConfig
}

func init() {
	Register("travel", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Travel == nil {
			return nil
		}
		return &Travel{deps: deps, cfg: components.Travel}
	})
}

// ID implements Module
func (m *Travel) ID() string {
	return "travel"
}

// Compute implements Module: one line item per configured trip
func (m *Travel) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	rec, err := m.deps.Store.PerDiem(ctx, country)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}

	items := make([]LineItem, 0, len(m.cfg.Trips))
	for _, trip := range m.cfg.Trips {
		rate := rec.Rate(trip.Division, trip.Local)
		days := decimal.NewFromInt(int64(trip.Days))
		travellers := decimal.NewFromInt(int64(trip.Travellers))
		count := decimal.NewFromInt(int64(trip.Count))
		amount := rate.Mul(days).Mul(travellers).Mul(count)

		items = append(items, LineItem{
			Component: "travel/" + trip.Division,
			Value:     types.NewMoneyAt(amount, rec.Currency, rec.Year),
		})
	}
	return items, nil
}
