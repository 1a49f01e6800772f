// Package refdata - SQLite-backed store
// The reference snapshot ships as a small SQLite file built by the CSV
// loader (db/ingestion). The store opens it read-only; repopulation is
// an external batch job that must not run while costing is in flight.
package refdata

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// Reference table names, shared with the CSV loader
const (
	TableSalaries       = "ref_salaries"
	TablePerDiems       = "ref_per_diems"
	TableTransport      = "ref_transport"
	TableSupplies       = "ref_supplies"
	TableDistances      = "ref_distances"
	TableDivisions      = "ref_divisions"
	TableFacilities     = "ref_facilities"
	TableEconomicSeries = "ref_economic_series"
	TablePopulation     = "ref_population"
)

// SQLiteStore is a Store over an on-disk SQLite reference snapshot
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens a reference snapshot read-only
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Internal("open reference database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Internal("open reference database", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already-open handle (used by the loader's
// verification pass)
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Salary implements Store
func (s *SQLiteStore) Salary(ctx context.Context, country string, cadreLevel int) (SalaryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, cadre_level, annual_salary, currency, year
		 FROM `+TableSalaries+` WHERE country = ? AND cadre_level = ?`,
		countryKey(country), cadreLevel)

	var rec SalaryRecord
	var salary float64
	var currency string
	err := row.Scan(&rec.Country, &rec.CadreLevel, &salary, &currency, &rec.Year)
	if err == sql.ErrNoRows {
		return SalaryRecord{}, errors.NotFound(TableSalaries, fmt.Sprintf("%s/cadre-%d", countryKey(country), cadreLevel))
	}
	if err != nil {
		return SalaryRecord{}, errors.Internal("salary lookup", err)
	}
	rec.AnnualSalary = decimal.NewFromFloat(salary)
	rec.Currency = types.Currency(currency)
	return rec, nil
}

// PerDiem implements Store
func (s *SQLiteStore) PerDiem(ctx context.Context, country string) (PerDiemRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, dsa_national, dsa_upper, dsa_lower, currency, year, local_proportion
		 FROM `+TablePerDiems+` WHERE country = ?`, countryKey(country))

	var rec PerDiemRecord
	var national, upper, lower, local float64
	var currency string
	err := row.Scan(&rec.Country, &national, &upper, &lower, &currency, &rec.Year, &local)
	if err == sql.ErrNoRows {
		return PerDiemRecord{}, errors.NotFound(TablePerDiems, countryKey(country))
	}
	if err != nil {
		return PerDiemRecord{}, errors.Internal("per-diem lookup", err)
	}
	rec.DSANational = decimal.NewFromFloat(national)
	rec.DSAUpper = decimal.NewFromFloat(upper)
	rec.DSALower = decimal.NewFromFloat(lower)
	rec.LocalProportion = decimal.NewFromFloat(local)
	rec.Currency = types.Currency(currency)
	return rec, nil
}

// Vehicle implements Store
func (s *SQLiteStore) Vehicle(ctx context.Context, model string) (TransportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT vehicle_model, operating_cost_per_km, consumption_litres_per_km, currency, year
		 FROM `+TableTransport+` WHERE TRIM(vehicle_model) = ?`, itemKey(model))

	var rec TransportRecord
	var opCost, consumption float64
	var currency string
	err := row.Scan(&rec.VehicleModel, &opCost, &consumption, &currency, &rec.Year)
	if err == sql.ErrNoRows {
		return TransportRecord{}, errors.NotFound(TableTransport, itemKey(model))
	}
	if err != nil {
		return TransportRecord{}, errors.Internal("vehicle lookup", err)
	}
	rec.OperatingCostPerKm = decimal.NewFromFloat(opCost)
	rec.ConsumptionLitresPerKm = decimal.NewFromFloat(consumption)
	rec.Currency = types.Currency(currency)
	return rec, nil
}

// Supply implements Store. Item names are matched with whitespace
// trimmed on both sides; the catalog carries incidental padding.
func (s *SQLiteStore) Supply(ctx context.Context, item string) (SupplyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT item, price, currency, year
		 FROM `+TableSupplies+` WHERE TRIM(item) = ?`, itemKey(item))

	var rec SupplyRecord
	var price float64
	var currency string
	err := row.Scan(&rec.Item, &price, &currency, &rec.Year)
	if err == sql.ErrNoRows {
		return SupplyRecord{}, errors.NotFound(TableSupplies, itemKey(item))
	}
	if err != nil {
		return SupplyRecord{}, errors.Internal("supply lookup", err)
	}
	rec.Price = decimal.NewFromFloat(price)
	rec.Currency = types.Currency(currency)
	return rec, nil
}

// Distances implements Store
func (s *SQLiteStore) Distances(ctx context.Context, country string) (DistanceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, ddist10, ddist20, ddist30, ddist40, ddist50,
		        ddist60, ddist70, ddist80, ddist90, ddist95, ddist100
		 FROM `+TableDistances+` WHERE country = ?`, countryKey(country))

	var rec DistanceRecord
	vals := make([]float64, 11)
	dest := make([]interface{}, 0, 12)
	dest = append(dest, &rec.Country)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	err := row.Scan(dest...)
	if err == sql.ErrNoRows {
		return DistanceRecord{}, errors.NotFound(TableDistances, countryKey(country))
	}
	if err != nil {
		return DistanceRecord{}, errors.Internal("distance lookup", err)
	}
	percentiles := []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100}
	rec.Percentiles = make(map[int]decimal.Decimal, len(percentiles))
	for i, p := range percentiles {
		rec.Percentiles[p] = decimal.NewFromFloat(vals[i])
	}
	return rec, nil
}

// Divisions implements Store
func (s *SQLiteStore) Divisions(ctx context.Context, country string) (AdministrativeDivisionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, provincial_divisions, district_divisions
		 FROM `+TableDivisions+` WHERE country = ?`, countryKey(country))

	var rec AdministrativeDivisionRecord
	err := row.Scan(&rec.Country, &rec.ProvincialDivisions, &rec.DistrictDivisions)
	if err == sql.ErrNoRows {
		return AdministrativeDivisionRecord{}, errors.NotFound(TableDivisions, countryKey(country))
	}
	if err != nil {
		return AdministrativeDivisionRecord{}, errors.Internal("division lookup", err)
	}
	return rec, nil
}

// Facilities implements Store
func (s *SQLiteStore) Facilities(ctx context.Context, country string) (HealthcareFacilityRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, regional_hospitals, provincial_hospitals, district_hospitals,
		        health_centres, health_posts
		 FROM `+TableFacilities+` WHERE country = ?`, countryKey(country))

	var rec HealthcareFacilityRecord
	err := row.Scan(&rec.Country, &rec.RegionalHospitals, &rec.ProvincialHospitals,
		&rec.DistrictHospitals, &rec.HealthCentres, &rec.HealthPosts)
	if err == sql.ErrNoRows {
		return HealthcareFacilityRecord{}, errors.NotFound(TableFacilities, countryKey(country))
	}
	if err != nil {
		return HealthcareFacilityRecord{}, errors.Internal("facility lookup", err)
	}
	return rec, nil
}

// Series implements Store
func (s *SQLiteStore) Series(ctx context.Context, country, series string) (EconomicSeriesRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, value FROM `+TableEconomicSeries+`
		 WHERE country = ? AND series = ?`, countryKey(country), series)
	if err != nil {
		return EconomicSeriesRecord{}, errors.Internal("series lookup", err)
	}
	defer rows.Close()

	rec := EconomicSeriesRecord{
		Country: countryKey(country),
		Series:  series,
		Values:  make(map[int]decimal.Decimal),
	}
	for rows.Next() {
		var year int
		var value float64
		if err := rows.Scan(&year, &value); err != nil {
			return EconomicSeriesRecord{}, errors.Internal("series lookup", err)
		}
		rec.Values[year] = decimal.NewFromFloat(value)
	}
	if err := rows.Err(); err != nil {
		return EconomicSeriesRecord{}, errors.Internal("series lookup", err)
	}
	if len(rec.Values) == 0 {
		return EconomicSeriesRecord{}, errors.MissingSeries(countryKey(country), series)
	}
	return rec, nil
}

// Population implements Store
func (s *SQLiteStore) Population(ctx context.Context, country string, year int) (PopulationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT country, year, variant, value_thousands
		 FROM `+TablePopulation+` WHERE country = ? AND year = ? AND variant = 'Median'`,
		countryKey(country), year)

	var rec PopulationRecord
	var value float64
	err := row.Scan(&rec.Country, &rec.Year, &rec.Variant, &value)
	if err == sql.ErrNoRows {
		return PopulationRecord{}, errors.NotFound(TablePopulation, fmt.Sprintf("%s/%d", countryKey(country), year))
	}
	if err != nil {
		return PopulationRecord{}, errors.Internal("population lookup", err)
	}
	rec.ValueThousands = decimal.NewFromFloat(value)
	return rec, nil
}

// Countries implements Store
func (s *SQLiteStore) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country FROM `+TableSalaries+`
		 UNION SELECT country FROM `+TablePerDiems+`
		 UNION SELECT country FROM `+TableDistances+`
		 UNION SELECT country FROM `+TableDivisions+`
		 UNION SELECT country FROM `+TableFacilities+`
		 ORDER BY 1`)
	if err != nil {
		return nil, errors.Internal("country listing", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// Currencies implements Store
func (s *SQLiteStore) Currencies(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT country FROM `+TableEconomicSeries+`
		 WHERE series = ? UNION SELECT 'USD' ORDER BY 1`,
		SeriesPPPConversionFactor)
	if err != nil {
		return nil, errors.Internal("currency listing", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// Close implements Store
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Internal("row scan", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("row scan", err)
	}
	return out, nil
}
