// Package modules - Office supply costs
package modules

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Supplies costs catalog purchases. Item names match with incidental
// whitespace trimmed on both the request and the catalog side.
type Supplies struct {
	deps Deps
	cfg  *types.SuppliesConfig
}

func init() {
	Register("supplies", func(deps Deps, components *types.ComponentsConfig) Module {
		if components.Supplies == nil {
			return nil
		}
		return &Supplies{deps: deps, cfg: components.Supplies}
	})
}

// ID implements Module
func (m *Supplies) ID() string {
	return "supplies"
}

// Compute implements Module: one line item per configured catalog item
func (m *Supplies) Compute(ctx context.Context, country string, year int) ([]LineItem, error) {
	items := make([]LineItem, 0, len(m.cfg.Items))
	for _, line := range m.cfg.Items {
		rec, err := m.deps.Store.Supply(ctx, line.Name)
		if err != nil {
			return nil, errors.DataGap(m.ID(), err)
		}
		quantity := decimal.NewFromFloat(line.Quantity)
		items = append(items, LineItem{
			Component: "supplies/" + strings.TrimSpace(line.Name),
			Value:     rec.Money().Mul(quantity),
		})
	}
	return items, nil
}
