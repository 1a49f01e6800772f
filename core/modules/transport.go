// Package modules - Vehicle operating costs
package modules

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Transport costs vehicle usage at catalog operating costs per km. The
// distance comes from the configuration, or is derived from the
// country's typical inter-regional distance when modeling average
// in-country travel.
type Transport struct {
	deps Deps
	cfg  *types.TransportConfig
}

func init() {
	Register("transport", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Transport == nil {
			return nil
		}
		return &Transport{deps: deps, cfg: components.Transport}
	})
}

// ID implements Module
func (m *Transport) ID() string {
	return "transport"
}

// Compute implements Module: one line item per configured vehicle
func (m *Transport) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	items := make([]LineItem, 0, len(m.cfg.Vehicles))
	for _, use := range m.cfg.Vehicles {
		rec, err := m.deps.Store.Vehicle(ctx, use.Model)
		if err != nil {
			return nil, errors.DataGap(m.ID(), err)
		}

		var distance decimal.Decimal
		if use.AnnualKm > 0 {
			distance = decimal.NewFromFloat(use.AnnualKm)
		} else {
			dist, err := m.deps.Store.Distances(ctx, country)
			if err != nil {
				return nil, errors.DataGap(m.ID(), err)
			}
			typical, ok := dist.TypicalDistance()
			if !ok {
				return nil, errors.DataGap(m.ID(),
					errors.NotFound("distances", country+"/ddist95"))
			}
			distance = typical.Mul(decimal.NewFromInt(int64(use.Trips)))
		}

		amount := rec.OperatingCostPerKm.Mul(distance)
		items = append(items, LineItem{
			Component: "transport/" + strings.TrimSpace(use.Model),
			Value:     types.NewMoneyAt(amount, rec.Currency, rec.Year),
		})
	}
	return items, nil
}
