// Package modules - Personnel costs
package modules

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Personnel costs the configured cadre levels at the country's annual
// salaries, scaled by headcount.
type Personnel struct {
	deps Deps
	cfg  *types.PersonnelConfig
}

func init() {
	Register("personnel", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Personnel == nil {
			return nil
		}
		return &Personnel{deps: deps, cfg: components.Personnel}
	})
}

// ID implements Module
func (m *Personnel) ID() string {
	return "personnel"
}

// Compute implements Module: one line item per configured cadre
func (m *Personnel) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	items := make([]LineItem, 0, len(m.cfg.Cadres))
	for _, cadre := range m.cfg.Cadres {
		rec, err := m.deps.Store.Salary(ctx, country, cadre.Level)
		if err != nil {
			return nil, errors.DataGap(m.ID(), err)
		}
		label := cadre.Label
		if label == "" {
			label = fmt.Sprintf("personnel/cadre-%d", cadre.Level)
		}
		count := decimal.NewFromFloat(cadre.Count)
		items = append(items, LineItem{
			Component: label,
			Value:     rec.Money().Mul(count),
		})
	}
	return items, nil
}
