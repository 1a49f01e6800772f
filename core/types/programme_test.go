// Package types_test - Configuration validation tests
package types_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

func validConfig() *types.ProgrammeConfig {
	return &types.ProgrammeConfig{
		Country:         "UGA",
		StartYear:       2020,
		EndYear:         2022,
		DiscountRate:    1.03,
		DesiredCurrency: "USD",
		DesiredYear:     2018,
		Components: &types.ComponentsConfig{
			Personnel: &types.PersonnelConfig{Cadres: []types.CadreConfig{
				{Level: 1, Count: 2},
			}},
		},
	}
}

// TestValidate verifies structural rules are enforced
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ProgrammeConfig)
	}{
		{"missing country", func(c *types.ProgrammeConfig) { c.Country = "" }},
		{"non-ISO3 country", func(c *types.ProgrammeConfig) { c.Country = "Uganda" }},
		{"reversed year range", func(c *types.ProgrammeConfig) { c.StartYear, c.EndYear = 2022, 2020 }},
		{"negative discount", func(c *types.ProgrammeConfig) { c.DiscountRate = -0.05 }},
		{"missing currency", func(c *types.ProgrammeConfig) { c.DesiredCurrency = "" }},
		{"missing price year", func(c *types.ProgrammeConfig) { c.DesiredYear = 0 }},
		{"no modules", func(c *types.ProgrammeConfig) { c.Components = &types.ComponentsConfig{} }},
		{"cadre level out of range", func(c *types.ProgrammeConfig) {
			c.Components.Personnel.Cadres[0].Level = 6
		}},
		{"unknown division", func(c *types.ProgrammeConfig) {
			c.Components.Travel = &types.TravelConfig{Trips: []types.TripConfig{
				{Division: "region", Travellers: 1, Days: 1, Count: 1},
			}}
		}},
		{"vehicle without distance", func(c *types.ProgrammeConfig) {
			c.Components.Transport = &types.TransportConfig{Vehicles: []types.VehicleUseConfig{
				{Model: "Toyota Hilux"},
			}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("error type = %v, want CONFIG_ERROR", err)
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}

// TestNormalizedDiscountRate verifies the dual factor/rate encoding
func TestNormalizedDiscountRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "0"},       // factor 1: no discounting
		{1.03, "0.03"}, // factor form
		{0.03, "0.03"}, // rate form
		{0, "0"},
	}
	for _, tt := range tests {
		cfg := validConfig()
		cfg.DiscountRate = tt.in
		want, _ := decimal.NewFromString(tt.want)
		if got := cfg.NormalizedDiscountRate(); !got.Equal(want) {
			t.Errorf("NormalizedDiscountRate(%v) = %s, want %s", tt.in, got, want)
		}
	}
}

// TestCurrencyNormalize verifies USD aliases the United States code
func TestCurrencyNormalize(t *testing.T) {
	if got := types.Currency("usd").Normalize(); got != types.CurrencyUSA {
		t.Errorf("usd normalized to %q, want USA", got)
	}
	if got := types.Currency("uga").Normalize(); got != "UGA" {
		t.Errorf("uga normalized to %q, want UGA", got)
	}
}

// TestEnabledModules verifies the canonical listing
func TestEnabledModules(t *testing.T) {
	cfg := validConfig()
	cfg.Components.Supplies = &types.SuppliesConfig{}

	got := cfg.EnabledModules()
	want := []string{"personnel", "supplies"}
	if len(got) != len(want) {
		t.Fatalf("EnabledModules = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnabledModules[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
