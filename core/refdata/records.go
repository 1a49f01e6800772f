// Package refdata - Reference table records
package refdata

import (
	"github.com/shopspring/decimal"

	"programme-cost/core/types"
)

// Economic series names
const (
	SeriesPPPConversionFactor = "PPP-conversion-factor"
	SeriesGDPDeflator         = "GDP-deflator"
	SeriesGDPPerCapitaPPP     = "GDP-per-capita-PPP"
)

// Healthcare facility tiers
const (
	FacilityRegional     = "regional"
	FacilityProvincial   = "provincial"
	FacilityDistrict     = "district"
	FacilityHealthCentre = "health_centre"
	FacilityHealthPost   = "health_post"
)

// TypicalDistancePercentile is the canonical percentile used as the
// typical inter-regional distance by logistics and transport modules.
const TypicalDistancePercentile = 95

// SalaryRecord is an annual salary for one cadre level in one country
type SalaryRecord struct {
	Country      string          `json:"country"`
	CadreLevel   int             `json:"cadre_level"`
	AnnualSalary decimal.Decimal `json:"annual_salary"`
	Currency     types.Currency  `json:"currency"`
	Year         int             `json:"year"`
}

// Money returns the salary as a tagged monetary amount
func (r SalaryRecord) Money() types.MoneyAt {
	return types.NewMoneyAt(r.AnnualSalary, r.Currency, r.Year)
}

// PerDiemRecord holds the tiered daily subsistence allowances for one
// country. LocalProportion scales national-staff rates down for local
// staff.
type PerDiemRecord struct {
	Country         string          `json:"country"`
	DSANational     decimal.Decimal `json:"dsa_national"`
	DSAUpper        decimal.Decimal `json:"dsa_upper"`
	DSALower        decimal.Decimal `json:"dsa_lower"`
	Currency        types.Currency  `json:"currency"`
	Year            int             `json:"year"`
	LocalProportion decimal.Decimal `json:"local_proportion"`
}

// Rate returns the DSA for an administrative level. The national tier
// uses the national rate, provincial the upper tier and district the
// lower tier.
func (r PerDiemRecord) Rate(division string, local bool) decimal.Decimal {
	var rate decimal.Decimal
	switch division {
	case types.DivisionProvincial:
		rate = r.DSAUpper
	case types.DivisionDistrict:
		rate = r.DSALower
	default:
		rate = r.DSANational
	}
	if local {
		rate = rate.Mul(r.LocalProportion)
	}
	return rate
}

// TransportRecord is one entry of the small fixed vehicle catalog
type TransportRecord struct {
	VehicleModel           string          `json:"vehicle_model"`
	OperatingCostPerKm     decimal.Decimal `json:"operating_cost_per_km"`
	ConsumptionLitresPerKm decimal.Decimal `json:"consumption_litres_per_km"`
	Currency               types.Currency  `json:"currency"`
	Year                   int             `json:"year"`
}

// SupplyRecord is one office-supply catalog entry. Item names in the
// source data carry incidental whitespace; stores match on the trimmed
// name.
type SupplyRecord struct {
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
	Currency types.Currency  `json:"currency"`
	Year     int             `json:"year"`
}

// Money returns the unit price as a tagged monetary amount
func (r SupplyRecord) Money() types.MoneyAt {
	return types.NewMoneyAt(r.Price, r.Currency, r.Year)
}

// DistanceRecord holds the inter-regional distance percentiles (10..100,
// in km) for one country
type DistanceRecord struct {
	Country     string                  `json:"country"`
	Percentiles map[int]decimal.Decimal `json:"percentiles"`
}

// TypicalDistance returns the 95th-percentile inter-regional distance
func (r DistanceRecord) TypicalDistance() (decimal.Decimal, bool) {
	d, ok := r.Percentiles[TypicalDistancePercentile]
	return d, ok
}

// AdministrativeDivisionRecord holds the division counts for one country
type AdministrativeDivisionRecord struct {
	Country             string `json:"country"`
	ProvincialDivisions int    `json:"provincial_divisions"`
	DistrictDivisions   int    `json:"district_divisions"`
}

// Count returns the number of divisions at an administrative level.
// The national level is always a single division.
func (r AdministrativeDivisionRecord) Count(division string) int {
	switch division {
	case types.DivisionProvincial:
		return r.ProvincialDivisions
	case types.DivisionDistrict:
		return r.DistrictDivisions
	default:
		return 1
	}
}

// HealthcareFacilityRecord holds the facility counts for one country
type HealthcareFacilityRecord struct {
	Country             string `json:"country"`
	RegionalHospitals   int    `json:"regional_hospitals"`
	ProvincialHospitals int    `json:"provincial_hospitals"`
	DistrictHospitals   int    `json:"district_hospitals"`
	HealthCentres       int    `json:"health_centres"`
	HealthPosts         int    `json:"health_posts"`
}

// CountFor returns the facility count for one tier
func (r HealthcareFacilityRecord) CountFor(tier string) (int, bool) {
	switch tier {
	case FacilityRegional:
		return r.RegionalHospitals, true
	case FacilityProvincial:
		return r.ProvincialHospitals, true
	case FacilityDistrict:
		return r.DistrictHospitals, true
	case FacilityHealthCentre:
		return r.HealthCentres, true
	case FacilityHealthPost:
		return r.HealthPosts, true
	}
	return 0, false
}

// Total returns the count across all tiers
func (r HealthcareFacilityRecord) Total() int {
	return r.RegionalHospitals + r.ProvincialHospitals + r.DistrictHospitals +
		r.HealthCentres + r.HealthPosts
}

// EconomicSeriesRecord holds one yearly economic series for one country
type EconomicSeriesRecord struct {
	Country string                  `json:"country"`
	Series  string                  `json:"series"`
	Values  map[int]decimal.Decimal `json:"values"`
}

// ValueAt resolves the series value for a year. Years outside the
// tabulated span clamp to the nearest boundary year; a hole strictly
// inside the span resolves to the nearest earlier tabulated year.
// Returns false only when the record holds no values at all.
func (r EconomicSeriesRecord) ValueAt(year int) (decimal.Decimal, bool) {
	if len(r.Values) == 0 {
		return decimal.Zero, false
	}
	min, max := r.span()
	if year < min {
		year = min
	} else if year > max {
		year = max
	}
	for y := year; y >= min; y-- {
		if v, ok := r.Values[y]; ok {
			return v, true
		}
	}
	// only holes below the requested year: walk up instead
	for y := year + 1; y <= max; y++ {
		if v, ok := r.Values[y]; ok {
			return v, true
		}
	}
	return decimal.Zero, false
}

func (r EconomicSeriesRecord) span() (min, max int) {
	first := true
	for y := range r.Values {
		if first {
			min, max = y, y
			first = false
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max
}

// PopulationRecord is one population figure (thousands) for a
// country/year under a projection variant
type PopulationRecord struct {
	Country        string          `json:"country"`
	Year           int             `json:"year"`
	Variant        string          `json:"variant"`
	ValueThousands decimal.Decimal `json:"value_thousands"`
}
