// Package engine_test - Costing run invariant tests
package engine_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"programme-cost/core/engine"
	"programme-cost/core/refdata"
	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// fixtureStore prices everything directly in USD at 2018 prices so the
// fixtures exercise the run mechanics without conversion chains.
func fixtureStore() *refdata.MemoryStore {
	store := refdata.NewMemoryStore()
	store.AddSalary(refdata.SalaryRecord{
		Country: "UGA", CadreLevel: 1,
		AnnualSalary: decimal.NewFromInt(1000), Currency: "USD", Year: 2018,
	})
	store.AddSalary(refdata.SalaryRecord{
		Country: "UGA", CadreLevel: 2,
		AnnualSalary: decimal.NewFromInt(2000), Currency: "USD", Year: 2018,
	})
	store.AddPerDiem(refdata.PerDiemRecord{
		Country:     "UGA",
		DSANational: decimal.NewFromInt(50),
		DSAUpper:    decimal.NewFromInt(30),
		DSALower:    decimal.NewFromInt(20),
		Currency:    "USD", Year: 2018,
		LocalProportion: decimal.NewFromFloat(0.2),
	})
	return store
}

func fixtureProgramme() *types.ProgrammeConfig {
	return &types.ProgrammeConfig{
		Country:         "UGA",
		StartYear:       2020,
		EndYear:         2022,
		DiscountRate:    1,
		DesiredCurrency: "USD",
		DesiredYear:     2018,
		Components: &types.ComponentsConfig{
			Personnel: &types.PersonnelConfig{Cadres: []types.CadreConfig{
				{Level: 1, Count: 2},
			}},
			Travel: &types.TravelConfig{Trips: []types.TripConfig{
				{Division: "district", Travellers: 1, Days: 2, Count: 5},
			}},
		},
	}
}

// TestLedgerOrdering verifies year-major, component-minor output order
func TestLedgerOrdering(t *testing.T) {
	ledger, err := engine.New(fixtureStore()).Run(context.Background(), fixtureProgramme())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 3 years x 2 components
	if len(ledger) != 6 {
		t.Fatalf("ledger entries = %d, want 6", len(ledger))
	}
	for i := 1; i < len(ledger); i++ {
		prev, cur := ledger[i-1], ledger[i]
		if cur.Year < prev.Year {
			t.Fatalf("years out of order at %d: %d then %d", i, prev.Year, cur.Year)
		}
		if cur.Year == prev.Year && cur.Component < prev.Component {
			t.Fatalf("components out of order at %d: %q then %q", i, prev.Component, cur.Component)
		}
	}
	if ledger[0].Component != "personnel/cadre-1" || ledger[1].Component != "travel/district" {
		t.Errorf("2020 components = [%s %s]", ledger[0].Component, ledger[1].Component)
	}
}

// TestNoDiscountingAtFactorOne verifies a factor of 1 keeps values flat
func TestNoDiscountingAtFactorOne(t *testing.T) {
	ledger, err := engine.New(fixtureStore()).Run(context.Background(), fixtureProgramme())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, e := range ledger {
		if e.Component != "personnel/cadre-1" {
			continue
		}
		if !e.Cost.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("year %d personnel = %s, want undiscounted 2000", e.Year, e.Cost)
		}
	}
}

// TestDiscounting verifies present values decline across the year range
func TestDiscounting(t *testing.T) {
	cfg := fixtureProgramme()
	cfg.DiscountRate = 1.03

	ledger, err := engine.New(fixtureStore()).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var personnel []decimal.Decimal
	for _, e := range ledger {
		if e.Component == "personnel/cadre-1" {
			personnel = append(personnel, e.Cost)
		}
	}
	if len(personnel) != 3 {
		t.Fatalf("personnel years = %d, want 3", len(personnel))
	}
	// start year is undiscounted
	if !personnel[0].Equal(decimal.NewFromInt(2000)) {
		t.Errorf("start-year cost = %s, want 2000", personnel[0])
	}
	for i := 1; i < len(personnel); i++ {
		if !personnel[i].LessThan(personnel[i-1]) {
			t.Errorf("year %d cost %s not below year %d cost %s",
				2020+i, personnel[i], 2019+i, personnel[i-1])
		}
	}
	// 2000 / 1.03
	want := decimal.NewFromInt(2000).Div(decimal.NewFromFloat(1.03))
	if diff := personnel[1].Sub(want).Abs(); diff.GreaterThan(decimal.New(1, -9)) {
		t.Errorf("second-year cost = %s, want %s", personnel[1], want)
	}
}

// TestRateAndFactorFormsAgree verifies 1.03 and 0.03 cost identically
func TestRateAndFactorFormsAgree(t *testing.T) {
	ctx := context.Background()
	agg := engine.New(fixtureStore())

	asFactor := fixtureProgramme()
	asFactor.DiscountRate = 1.03
	factorLedger, err := agg.Run(ctx, asFactor)
	if err != nil {
		t.Fatalf("factor-form run failed: %v", err)
	}

	asRate := fixtureProgramme()
	asRate.DiscountRate = 0.03
	rateLedger, err := agg.Run(ctx, asRate)
	if err != nil {
		t.Fatalf("rate-form run failed: %v", err)
	}

	if len(factorLedger) != len(rateLedger) {
		t.Fatalf("ledger sizes differ: %d vs %d", len(factorLedger), len(rateLedger))
	}
	for i := range factorLedger {
		if !factorLedger[i].Cost.Equal(rateLedger[i].Cost) {
			t.Errorf("entry %d differs: %s vs %s", i, factorLedger[i].Cost, rateLedger[i].Cost)
		}
	}
}

// TestSameComponentSums verifies colliding labels merge into one entry
func TestSameComponentSums(t *testing.T) {
	cfg := fixtureProgramme()
	cfg.EndYear = 2020
	cfg.Components = &types.ComponentsConfig{
		Personnel: &types.PersonnelConfig{Cadres: []types.CadreConfig{
			{Level: 1, Count: 1, Label: "personnel/staff"},
			{Level: 2, Count: 1, Label: "personnel/staff"},
		}},
	}

	ledger, err := engine.New(fixtureStore()).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(ledger) != 1 {
		t.Fatalf("ledger entries = %d, want 1 merged entry", len(ledger))
	}
	if !ledger[0].Cost.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("merged cost = %s, want 3000", ledger[0].Cost)
	}
}

// TestMissingDataAbortsRun verifies no partial ledger is ever returned
func TestMissingDataAbortsRun(t *testing.T) {
	cfg := fixtureProgramme()
	cfg.Country = "KEN" // no reference rows

	ledger, err := engine.New(fixtureStore()).Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected the run to abort on missing reference data")
	}
	if !errors.IsType(err, errors.TypeDataGap) {
		t.Errorf("error type = %v, want DATA_GAP", err)
	}
	if ledger != nil {
		t.Errorf("aborted run returned a partial ledger of %d entries", len(ledger))
	}
}

// TestUnknownCurrencyRejected verifies the output currency is validated
func TestUnknownCurrencyRejected(t *testing.T) {
	cfg := fixtureProgramme()
	cfg.DesiredCurrency = "XXX"

	_, err := engine.New(fixtureStore()).Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected an error for an unconvertible currency")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("error type = %v, want CONFIG_ERROR", err)
	}
}

// TestInvalidConfigRejected verifies validation runs before any lookup
func TestInvalidConfigRejected(t *testing.T) {
	cfg := fixtureProgramme()
	cfg.StartYear = 2025 // after EndYear

	_, err := engine.New(fixtureStore()).Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("error type = %v, want CONFIG_ERROR", err)
	}
}

// TestCancelledContext verifies the run honors cancellation
func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.New(fixtureStore()).Run(ctx, fixtureProgramme())
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if !errors.IsType(err, errors.TypeInternal) {
		t.Errorf("error type = %v, want INTERNAL_ERROR", err)
	}
}
