// Package types - Programme configuration
package types

import (
	"github.com/shopspring/decimal"

	"programme-cost/internal/errors"
)

// Administrative division levels used by travel and per-diem lookups
const (
	DivisionNational   = "national"
	DivisionProvincial = "provincial"
	DivisionDistrict   = "district"
)

// ProgrammeConfig describes one costing run. It is JSON-compatible for
// the API and carries HCL tags so programme files can be written in
// either format.
type ProgrammeConfig struct {
	// Country is the ISO3 code of the programme country
	Country string `json:"country" hcl:"country"`

	// StartYear is the first programme year (inclusive)
	StartYear int `json:"start_year" hcl:"start_year"`

	// EndYear is the last programme year (inclusive)
	EndYear int `json:"end_year" hcl:"end_year"`

	// DiscountRate is the annual discount rate. Values of 1 or more are
	// interpreted as a discount factor (1 + r), so 1 means no
	// discounting and 1.03 means 3%. Values below 1 are the rate itself.
	DiscountRate float64 `json:"discount_rate" hcl:"discount_rate,optional"`

	// DesiredCurrency is the output currency (ISO3 country code or "USD")
	DesiredCurrency string `json:"desired_currency" hcl:"desired_currency,optional"`

	// DesiredYear is the output price year
	DesiredYear int `json:"desired_year" hcl:"desired_year,optional"`

	// Components configures the cost modules; a module runs when its
	// sub-config is present
	Components *ComponentsConfig `json:"components" hcl:"components,block"`
}

// ComponentsConfig holds one optional configuration per cost module
type ComponentsConfig struct {
	Personnel *PersonnelConfig `json:"personnel,omitempty" hcl:"personnel,block"`
	Travel    *TravelConfig    `json:"travel,omitempty" hcl:"travel,block"`
	Transport *TransportConfig `json:"transport,omitempty" hcl:"transport,block"`
	Supplies  *SuppliesConfig  `json:"supplies,omitempty" hcl:"supplies,block"`
	Media     *MediaConfig     `json:"media,omitempty" hcl:"media,block"`
	Logistics *LogisticsConfig `json:"logistics,omitempty" hcl:"logistics,block"`
}

// PersonnelConfig configures the personnel module
type PersonnelConfig struct {
	// Cadres lists the staffed cadre levels
	Cadres []CadreConfig `json:"cadres" hcl:"cadre,block"`
}

// CadreConfig staffs one cadre level
type CadreConfig struct {
	// Level is the cadre skill tier (1=Services ... 5=Managers)
	Level int `json:"level" hcl:"level"`

	// Count is the headcount (full-time equivalents) at this level
	Count float64 `json:"count" hcl:"count"`

	// Label overrides the default component label
	Label string `json:"label,omitempty" hcl:"label,optional"`
}

// TravelConfig configures the travel/per-diem module
type TravelConfig struct {
	// Trips lists the recurring trips per programme year
	Trips []TripConfig `json:"trips" hcl:"trip,block"`
}

// TripConfig describes one recurring trip
type TripConfig struct {
	// Division is the administrative level travelled to
	// (national, provincial, district)
	Division string `json:"division" hcl:"division"`

	// Local marks the travellers as local staff, scaling the DSA rate
	// by the country's local proportion
	Local bool `json:"local,omitempty" hcl:"local,optional"`

	// Travellers is the number of people per trip
	Travellers int `json:"travellers" hcl:"travellers"`

	// Days is the number of per-diem days per trip
	Days int `json:"days" hcl:"days"`

	// Count is the number of trips per year
	Count int `json:"count" hcl:"count"`
}

// TransportConfig configures the transport module
type TransportConfig struct {
	// Vehicles lists vehicle usages per programme year
	Vehicles []VehicleUseConfig `json:"vehicles" hcl:"vehicle,block"`
}

// VehicleUseConfig describes annual usage of one vehicle model
type VehicleUseConfig struct {
	// Model is the catalog vehicle model
	Model string `json:"model" hcl:"model"`

	// AnnualKm is the distance driven per year. When zero, the distance
	// is derived from the country's typical inter-regional distance
	// times Trips.
	AnnualKm float64 `json:"annual_km,omitempty" hcl:"annual_km,optional"`

	// Trips is the number of inter-regional trips per year, used only
	// when AnnualKm is zero
	Trips int `json:"trips,omitempty" hcl:"trips,optional"`
}

// SuppliesConfig configures the office-supplies module
type SuppliesConfig struct {
	// Items lists catalog purchases per programme year
	Items []SupplyLineConfig `json:"items" hcl:"item,block"`
}

// SupplyLineConfig describes one catalog purchase
type SupplyLineConfig struct {
	// Name is the catalog item name (whitespace-insensitive match)
	Name string `json:"name" hcl:"name"`

	// Quantity is the number of units per year
	Quantity float64 `json:"quantity" hcl:"quantity"`
}

// MediaConfig configures facility-based media distribution
// (e.g. wall posters placed at health facilities)
type MediaConfig struct {
	// Item is the catalog item distributed to facilities
	Item string `json:"item" hcl:"item"`

	// UnitsPerFacility is the number of units placed per facility
	UnitsPerFacility float64 `json:"units_per_facility" hcl:"units_per_facility"`

	// Levels restricts placement to the named facility tiers
	// (regional, provincial, district, health_centre, health_post);
	// empty means all tiers
	Levels []string `json:"levels,omitempty" hcl:"levels,optional"`

	// IncludeDivisionOffices additionally places units at provincial
	// and district administration offices
	IncludeDivisionOffices bool `json:"include_division_offices,omitempty" hcl:"include_division_offices,optional"`
}

// LogisticsConfig configures distance-weighted logistics
type LogisticsConfig struct {
	// Vehicle is the catalog vehicle model used for distribution
	Vehicle string `json:"vehicle" hcl:"vehicle"`

	// RoundsPerYear is the number of distribution rounds per year;
	// each round visits every district division once over the typical
	// inter-regional distance, both ways
	RoundsPerYear int `json:"rounds_per_year" hcl:"rounds_per_year"`

	// ReferencePopulation, when positive, scales the travel effort by
	// actual population / reference population
	ReferencePopulation float64 `json:"reference_population,omitempty" hcl:"reference_population,optional"`
}

// Validate checks the structural invariants of the configuration.
// Reference-data availability is not checked here; missing rows surface
// as data gaps during the run.
func (c *ProgrammeConfig) Validate() error {
	if c.Country == "" {
		return errors.Config("country is required")
	}
	if len(c.Country) != 3 {
		return errors.Configf("country must be an ISO3 code, got %q", c.Country)
	}
	if c.StartYear > c.EndYear {
		return errors.Configf("start_year %d is after end_year %d", c.StartYear, c.EndYear)
	}
	if c.DiscountRate < 0 {
		return errors.Configf("discount_rate must not be negative, got %v", c.DiscountRate)
	}
	if c.DesiredCurrency == "" {
		return errors.Config("desired_currency is required")
	}
	if c.DesiredYear == 0 {
		return errors.Config("desired_year is required")
	}
	if c.Components == nil || !c.Components.any() {
		return errors.Config("at least one cost module must be configured")
	}

	if p := c.Components.Personnel; p != nil {
		for _, cadre := range p.Cadres {
			if cadre.Level < 1 || cadre.Level > 5 {
				return errors.Configf("cadre level must be 1-5, got %d", cadre.Level)
			}
			if cadre.Count < 0 {
				return errors.Configf("cadre %d count must not be negative", cadre.Level)
			}
		}
	}
	if t := c.Components.Travel; t != nil {
		for _, trip := range t.Trips {
			switch trip.Division {
			case DivisionNational, DivisionProvincial, DivisionDistrict:
			default:
				return errors.Configf("unknown division %q (want national, provincial or district)", trip.Division)
			}
			if trip.Travellers < 0 || trip.Days < 0 || trip.Count < 0 {
				return errors.Configf("trip counts for division %q must not be negative", trip.Division)
			}
		}
	}
	if t := c.Components.Transport; t != nil {
		for _, v := range t.Vehicles {
			if v.Model == "" {
				return errors.Config("vehicle model is required")
			}
			if v.AnnualKm < 0 {
				return errors.Configf("annual_km for %q must not be negative", v.Model)
			}
			if v.AnnualKm == 0 && v.Trips <= 0 {
				return errors.Configf("vehicle %q needs annual_km or a positive trip count", v.Model)
			}
		}
	}
	if s := c.Components.Supplies; s != nil {
		for _, item := range s.Items {
			if item.Name == "" {
				return errors.Config("supply item name is required")
			}
			if item.Quantity < 0 {
				return errors.Configf("quantity for %q must not be negative", item.Name)
			}
		}
	}
	if m := c.Components.Media; m != nil {
		if m.Item == "" {
			return errors.Config("media item is required")
		}
		if m.UnitsPerFacility <= 0 {
			return errors.Configf("units_per_facility for %q must be positive", m.Item)
		}
	}
	if l := c.Components.Logistics; l != nil {
		if l.Vehicle == "" {
			return errors.Config("logistics vehicle is required")
		}
		if l.RoundsPerYear <= 0 {
			return errors.Config("logistics rounds_per_year must be positive")
		}
		if l.ReferencePopulation < 0 {
			return errors.Config("reference_population must not be negative")
		}
	}
	return nil
}

// NormalizedDiscountRate resolves the dual factor/rate encoding of
// DiscountRate into a plain annual rate.
func (c *ProgrammeConfig) NormalizedDiscountRate() decimal.Decimal {
	r := decimal.NewFromFloat(c.DiscountRate)
	if r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return r.Sub(decimal.NewFromInt(1))
	}
	return r
}

// EnabledModules lists the configured module identifiers in canonical
// order.
func (c *ProgrammeConfig) EnabledModules() []string {
	if c.Components == nil {
		return nil
	}
	var ids []string
	if c.Components.Personnel != nil {
		ids = append(ids, "personnel")
	}
	if c.Components.Travel != nil {
		ids = append(ids, "travel")
	}
	if c.Components.Transport != nil {
		ids = append(ids, "transport")
	}
	if c.Components.Supplies != nil {
		ids = append(ids, "supplies")
	}
	if c.Components.Media != nil {
		ids = append(ids, "media")
	}
	if c.Components.Logistics != nil {
		ids = append(ids, "logistics")
	}
	return ids
}

func (c *ComponentsConfig) any() bool {
	return c.Personnel != nil || c.Travel != nil || c.Transport != nil ||
		c.Supplies != nil || c.Media != nil || c.Logistics != nil
}
