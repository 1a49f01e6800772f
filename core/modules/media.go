// Package modules - Facility-based media distribution
package modules

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Media costs facility-based distribution of a catalog item (e.g. wall
// posters placed at health facilities), multiplying the unit cost by
// facility counts and optionally by administrative division offices.
type Media struct {
	deps Deps
	cfg  *types.MediaConfig
}

func init() {
	Register("media", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Media == nil {
			return nil
		}
		return &Media{deps: deps, cfg: components.Media}
	})
}

// ID implements Module
func (m *Media) ID() string {
	return "media"
}

// Compute implements Module
func (m *Media) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	supply, err := m.deps.Store.Supply(ctx, m.cfg.Item)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}
	facilities, err := m.deps.Store.Facilities(ctx, country)
	if err != nil {
		return nil, errors.DataGap(m.ID(), err)
	}

	placements := 0
	if len(m.cfg.Levels) == 0 {
		placements = facilities.Total()
	} else {
		for _, tier := range m.cfg.Levels {
			count, ok := facilities.CountFor(tier)
			if !ok {
				return nil, errors.Configf("unknown facility tier %q", tier)
			}
			placements += count
		}
	}

	if m.cfg.IncludeDivisionOffices {
		divisions, err := m.deps.Store.Divisions(ctx, country)
		if err != nil {
			return nil, errors.DataGap(m.ID(), err)
		}
		placements += divisions.ProvincialDivisions + divisions.DistrictDivisions
	}

	quantity := decimal.NewFromInt(int64(placements)).
		Mul(decimal.NewFromFloat(m.cfg.UnitsPerFacility))

	return []LineItem{{
		Component: "media/" + strings.TrimSpace(m.cfg.Item),
		Value:     supply.Money().Mul(quantity),
	}}, nil
}
