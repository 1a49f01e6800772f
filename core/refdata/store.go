// Package refdata provides read-only, key-based access to the nine
// reference tables the costing engine draws on. Stores are explicitly
// constructed and passed in by parameter; the engine never touches
// ambient state. A store is never written to on the costing path.
package refdata

import (
	"context"
	"strings"
)

// Store is the read-only reference-data accessor. Every lookup is a
// point query on declared key columns; a miss is a NOT_FOUND error
// (MISSING_SERIES for the economic series table) and callers decide the
// fallback policy — the store never guesses.
type Store interface {
	// Salary returns the salary record for a country and cadre level
	Salary(ctx context.Context, country string, cadreLevel int) (SalaryRecord, error)

	// PerDiem returns the per-diem record for a country
	PerDiem(ctx context.Context, country string) (PerDiemRecord, error)

	// Vehicle returns the transport catalog record for a vehicle model
	Vehicle(ctx context.Context, model string) (TransportRecord, error)

	// Supply returns the catalog record for an item name; matching
	// trims incidental whitespace on both sides
	Supply(ctx context.Context, item string) (SupplyRecord, error)

	// Distances returns the inter-regional distance percentiles for a
	// country
	Distances(ctx context.Context, country string) (DistanceRecord, error)

	// Divisions returns the administrative division counts for a country
	Divisions(ctx context.Context, country string) (AdministrativeDivisionRecord, error)

	// Facilities returns the healthcare facility counts for a country
	Facilities(ctx context.Context, country string) (HealthcareFacilityRecord, error)

	// Series returns a named economic series for a country
	Series(ctx context.Context, country, series string) (EconomicSeriesRecord, error)

	// Population returns the "Median" variant population for a
	// country/year
	Population(ctx context.Context, country string, year int) (PopulationRecord, error)

	// Countries lists the country codes costing data exists for, sorted
	Countries(ctx context.Context) ([]string, error)

	// Currencies lists the valid currency codes (countries with a PPP
	// conversion series, plus the USD alias), sorted
	Currencies(ctx context.Context) ([]string, error)

	// Close releases the underlying snapshot
	Close() error
}

// countryKey normalizes an ISO3 code for lookups
func countryKey(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// itemKey normalizes a supply item name for lookups
func itemKey(item string) string {
	return strings.TrimSpace(item)
}
