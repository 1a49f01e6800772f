// Package modules provides the cost module library. Each module is an
// isolated lookup/compute unit producing raw, currency/year-tagged line
// items; normalization to the desired currency and year happens in the
// aggregator, never inside a module.
package modules

import (
	"context"
	"sort"
	"sync"

	"programme-cost/core/demography"
	"programme-cost/core/refdata"
	"programme-cost/core/types"
)

// LineItem is one raw cost line produced by a module. The value keeps
// its source (currency, year) provenance until the rebaser consumes it.
type LineItem struct {
	// Component is the module/category label of the line
	Component string

	// Value is the raw amount at its source currency and price year
	Value types.MoneyAt
}

// Deps are the collaborators handed to every module
type Deps struct {
	// Store is the read-only reference snapshot
	Store refdata.Store

	// Population resolves country/year population figures
	Population *demography.Resolver
}

// Module computes the raw cost lines of one programme component for a
// country/year. A missing reference row for the configured country is a
// DATA_GAP error; modules never substitute data across countries.
type Module interface {
	// ID returns the module identifier
	ID() string

	// Compute produces the raw line items for one programme year
	Compute(ctx context.Context, country string, year int) ([]LineItem, error)
}

// Factory builds a module from the programme components configuration,
// or returns nil when its section is absent.
type Factory func(deps Deps, components *types.ComponentsConfig) Module

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a module factory. Called from init; duplicate
// registration panics.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("module already registered: " + id)
	}
	registry[id] = factory
}

// IDs lists all registered module identifiers, sorted
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForConfig instantiates the configured modules in identifier order
func ForConfig(deps Deps, components *types.ComponentsConfig) []Module {
	if components == nil {
		return nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Module
	for _, id := range ids {
		if m := registry[id](deps, components); m != nil {
			out = append(out, m)
		}
	}
	return out
}
