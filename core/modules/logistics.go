// Package modules - Distance-weighted logistics
package modules

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

var two = decimal.NewFromInt(2)

// Logistics estimates aggregate distribution travel across a country's
// district divisions. Each round visits every district once over the
// typical inter-regional distance, both ways; travel effort optionally
// scales with population against a configured reference population.
type Logistics struct {
	deps Deps
	cfg  *types.LogisticsConfig
}

func init() {
	Register("logistics", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Logistics == nil {
			return nil
		}
		return &Logistics{deps: deps, cfg: components.Logistics}
	})
}

// ID implements Module
func (m *Logistics) ID() string {
	return "logistics"
}

// Compute implements Module
func (m *Logistics) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	vehicle, err := m.deps.Store.Vehicle(ctx, m.cfg.Vehicle)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}
	distances, err := m.deps.Store.Distances(ctx, country)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}
	typical, ok := distances.TypicalDistance()
	if !ok {
		return nil, errors.DataGap(m.ID(),
			errors.NotFound("distances", country+"/ddist95"))
	}
	divisions, err := m.deps.Store.Divisions(ctx, country)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}

	km := typical.
		Mul(decimal.NewFromInt(int64(divisions.DistrictDivisions))).
		Mul(two).
		Mul(decimal.NewFromInt(int64(m.cfg.RoundsPerYear)))

	if m.cfg.ReferencePopulation > 0 {
		population, err := m.deps.Population.Individuals(ctx, country, year)
		if err != nil {
			return nil, errors.DataGap(m.ID(), err)
		}
		km = km.Mul(population).Div(decimal.NewFromFloat(m.cfg.ReferencePopulation))
	}

	amount := vehicle.OperatingCostPerKm.Mul(km)
	return []LineItem{{
		Component: "logistics/" + strings.TrimSpace(m.cfg.Vehicle),
		Value:     types.NewMoneyAt(amount, vehicle.Currency, vehicle.Year),
	}}, nil
}
