// Package refdata - In-memory store
// Used for tests and for serving a fully cached snapshot.
package refdata

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"programme-cost/internal/errors"
	"programme-cost/internal/logging"
)

type salaryKey struct {
	country string
	level   int
}

type seriesKey struct {
	country string
	series  string
}

type populationKey struct {
	country string
	year    int
}

// MemoryStore is an in-memory Store. Populate it with the Add methods
// before handing it to the engine; it is read-only afterwards. Duplicate
// keys are flagged as data-integrity warnings at load time and the first
// row wins.
type MemoryStore struct {
	salaries   map[salaryKey]SalaryRecord
	perDiems   map[string]PerDiemRecord
	vehicles   map[string]TransportRecord
	supplies   map[string]SupplyRecord
	distances  map[string]DistanceRecord
	divisions  map[string]AdministrativeDivisionRecord
	facilities map[string]HealthcareFacilityRecord
	series     map[seriesKey]EconomicSeriesRecord
	population map[populationKey]PopulationRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		salaries:   make(map[salaryKey]SalaryRecord),
		perDiems:   make(map[string]PerDiemRecord),
		vehicles:   make(map[string]TransportRecord),
		supplies:   make(map[string]SupplyRecord),
		distances:  make(map[string]DistanceRecord),
		divisions:  make(map[string]AdministrativeDivisionRecord),
		facilities: make(map[string]HealthcareFacilityRecord),
		series:     make(map[seriesKey]EconomicSeriesRecord),
		population: make(map[populationKey]PopulationRecord),
	}
}

func warnDuplicate(table string, key interface{}) {
	logging.Warn("duplicate reference row, keeping first",
		zap.String("table", table),
		zap.String("key", fmt.Sprintf("%v", key)))
}

// AddSalary loads one salary row
func (s *MemoryStore) AddSalary(rec SalaryRecord) {
	k := salaryKey{countryKey(rec.Country), rec.CadreLevel}
	if _, dup := s.salaries[k]; dup {
		warnDuplicate("salaries", k)
		return
	}
	s.salaries[k] = rec
}

// AddPerDiem loads one per-diem row
func (s *MemoryStore) AddPerDiem(rec PerDiemRecord) {
	k := countryKey(rec.Country)
	if _, dup := s.perDiems[k]; dup {
		warnDuplicate("per_diems", k)
		return
	}
	s.perDiems[k] = rec
}

// AddVehicle loads one transport catalog row
func (s *MemoryStore) AddVehicle(rec TransportRecord) {
	k := itemKey(rec.VehicleModel)
	if _, dup := s.vehicles[k]; dup {
		warnDuplicate("transport", k)
		return
	}
	s.vehicles[k] = rec
}

// AddSupply loads one supply catalog row
func (s *MemoryStore) AddSupply(rec SupplyRecord) {
	k := itemKey(rec.Item)
	if _, dup := s.supplies[k]; dup {
		warnDuplicate("supplies", k)
		return
	}
	s.supplies[k] = rec
}

// AddDistances loads one distance row
func (s *MemoryStore) AddDistances(rec DistanceRecord) {
	k := countryKey(rec.Country)
	if _, dup := s.distances[k]; dup {
		warnDuplicate("distances", k)
		return
	}
	s.distances[k] = rec
}

// AddDivisions loads one administrative division row
func (s *MemoryStore) AddDivisions(rec AdministrativeDivisionRecord) {
	k := countryKey(rec.Country)
	if _, dup := s.divisions[k]; dup {
		warnDuplicate("divisions", k)
		return
	}
	s.divisions[k] = rec
}

// AddFacilities loads one healthcare facility row
func (s *MemoryStore) AddFacilities(rec HealthcareFacilityRecord) {
	k := countryKey(rec.Country)
	if _, dup := s.facilities[k]; dup {
		warnDuplicate("facilities", k)
		return
	}
	s.facilities[k] = rec
}

// AddSeries loads one economic series
func (s *MemoryStore) AddSeries(rec EconomicSeriesRecord) {
	k := seriesKey{countryKey(rec.Country), rec.Series}
	if _, dup := s.series[k]; dup {
		warnDuplicate("economic_series", k)
		return
	}
	s.series[k] = rec
}

// AddPopulation loads one population row
func (s *MemoryStore) AddPopulation(rec PopulationRecord) {
	k := populationKey{countryKey(rec.Country), rec.Year}
	if _, dup := s.population[k]; dup {
		warnDuplicate("population", k)
		return
	}
	s.population[k] = rec
}

// Salary implements Store
func (s *MemoryStore) Salary(ctx context.Context, country string, cadreLevel int) (SalaryRecord, error) {
	k := salaryKey{countryKey(country), cadreLevel}
	rec, ok := s.salaries[k]
	if !ok {
		return SalaryRecord{}, errors.NotFound("salaries", fmt.Sprintf("%s/cadre-%d", k.country, cadreLevel))
	}
	return rec, nil
}

// PerDiem implements Store
func (s *MemoryStore) PerDiem(ctx context.Context, country string) (PerDiemRecord, error) {
	rec, ok := s.perDiems[countryKey(country)]
	if !ok {
		return PerDiemRecord{}, errors.NotFound("per_diems", countryKey(country))
	}
	return rec, nil
}

// Vehicle implements Store
func (s *MemoryStore) Vehicle(ctx context.Context, model string) (TransportRecord, error) {
	rec, ok := s.vehicles[itemKey(model)]
	if !ok {
		return TransportRecord{}, errors.NotFound("transport", itemKey(model))
	}
	return rec, nil
}

// Supply implements Store
func (s *MemoryStore) Supply(ctx context.Context, item string) (SupplyRecord, error) {
	rec, ok := s.supplies[itemKey(item)]
	if !ok {
		return SupplyRecord{}, errors.NotFound("supplies", itemKey(item))
	}
	return rec, nil
}

// Distances implements Store
func (s *MemoryStore) Distances(ctx context.Context, country string) (DistanceRecord, error) {
	rec, ok := s.distances[countryKey(country)]
	if !ok {
		return DistanceRecord{}, errors.NotFound("distances", countryKey(country))
	}
	return rec, nil
}

// Divisions implements Store
func (s *MemoryStore) Divisions(ctx context.Context, country string) (AdministrativeDivisionRecord, error) {
	rec, ok := s.divisions[countryKey(country)]
	if !ok {
		return AdministrativeDivisionRecord{}, errors.NotFound("divisions", countryKey(country))
	}
	return rec, nil
}

// Facilities implements Store
func (s *MemoryStore) Facilities(ctx context.Context, country string) (HealthcareFacilityRecord, error) {
	rec, ok := s.facilities[countryKey(country)]
	if !ok {
		return HealthcareFacilityRecord{}, errors.NotFound("facilities", countryKey(country))
	}
	return rec, nil
}

// Series implements Store
func (s *MemoryStore) Series(ctx context.Context, country, series string) (EconomicSeriesRecord, error) {
	rec, ok := s.series[seriesKey{countryKey(country), series}]
	if !ok {
		return EconomicSeriesRecord{}, errors.MissingSeries(countryKey(country), series)
	}
	return rec, nil
}

// Population implements Store
func (s *MemoryStore) Population(ctx context.Context, country string, year int) (PopulationRecord, error) {
	rec, ok := s.population[populationKey{countryKey(country), year}]
	if !ok {
		return PopulationRecord{}, errors.NotFound("population", fmt.Sprintf("%s/%d", countryKey(country), year))
	}
	return rec, nil
}

// Countries implements Store: the union of countries across the
// country-keyed cost tables.
func (s *MemoryStore) Countries(ctx context.Context) ([]string, error) {
	set := make(map[string]struct{})
	for k := range s.salaries {
		set[k.country] = struct{}{}
	}
	for k := range s.perDiems {
		set[k] = struct{}{}
	}
	for k := range s.distances {
		set[k] = struct{}{}
	}
	for k := range s.divisions {
		set[k] = struct{}{}
	}
	for k := range s.facilities {
		set[k] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Currencies implements Store: countries holding a PPP conversion
// series, plus the USD alias.
func (s *MemoryStore) Currencies(ctx context.Context) ([]string, error) {
	set := map[string]struct{}{"USD": {}}
	for k := range s.series {
		if k.series == SeriesPPPConversionFactor {
			set[k.country] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}
