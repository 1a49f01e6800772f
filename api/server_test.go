// Package api_test - HTTP surface tests
package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"programme-cost/api"
	"programme-cost/core/refdata"
	"programme-cost/internal/config"
)

func fixtureServer() *api.Server {
	store := refdata.NewMemoryStore()
	store.AddSalary(refdata.SalaryRecord{
		Country: "UGA", CadreLevel: 1,
		AnnualSalary: decimal.NewFromInt(1000), Currency: "USD", Year: 2018,
	})
	store.AddSeries(refdata.EconomicSeriesRecord{
		Country: "UGA",
		Series:  refdata.SeriesPPPConversionFactor,
		Values:  map[int]decimal.Decimal{2018: decimal.NewFromInt(1100)},
	})

	cfg := config.Default()
	cfg.Defaults.Country = "UGA"
	cfg.Defaults.StartYear = 2020
	cfg.Defaults.EndYear = 2020
	cfg.Defaults.DesiredCurrency = "USD"
	cfg.Defaults.DesiredYear = 2018

	return api.NewServer("test", store, cfg)
}

const costRequest = `{
  "country": "UGA",
  "start_year": 2020,
  "end_year": 2020,
  "discount_rate": 1,
  "desired_currency": "USD",
  "desired_year": 2018,
  "components": {
    "personnel": {"cadres": [{"level": 1, "count": 2}]}
  }
}`

// TestCostEndpoint verifies the core request round trip
func TestCostEndpoint(t *testing.T) {
	srv := fixtureServer()

	req := httptest.NewRequest(http.MethodPost, "/cost", strings.NewReader(costRequest))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "year,component,cost" {
		t.Errorf("header line = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("ledger rows = %d, want 1:\n%s", len(lines)-1, rec.Body.String())
	}
	if lines[1] != "2020,personnel/cadre-1,2000.00" {
		t.Errorf("ledger row = %q, want 2020,personnel/cadre-1,2000.00", lines[1])
	}
}

// TestCostDefaultsMerged verifies unset fields fall back to defaults
func TestCostDefaultsMerged(t *testing.T) {
	srv := fixtureServer()

	// country, years, currency all come from the defaults
	body := `{"components": {"personnel": {"cadres": [{"level": 1, "count": 1}]}}}`
	req := httptest.NewRequest(http.MethodPost, "/cost", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "2020,personnel/cadre-1,") {
		t.Errorf("unexpected ledger:\n%s", rec.Body.String())
	}
}

// TestCostBadRequest verifies configuration errors map to 400
func TestCostBadRequest(t *testing.T) {
	srv := fixtureServer()

	req := httptest.NewRequest(http.MethodPost, "/cost",
		strings.NewReader(`{"components": {"personel": {}}}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	var body api.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "CONFIG_ERROR" {
		t.Errorf("error code = %q, want CONFIG_ERROR", body.Error.Code)
	}
	if body.Error.RequestID == "" {
		t.Error("error body missing request id")
	}
}

// TestCostDataGap verifies missing reference data maps to 422
func TestCostDataGap(t *testing.T) {
	srv := fixtureServer()

	body := strings.Replace(costRequest, `"UGA"`, `"TCD"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/cost", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

// TestOptionsEndpoint verifies the selection-control payload
func TestOptionsEndpoint(t *testing.T) {
	srv := fixtureServer()

	req := httptest.NewRequest(http.MethodGet, "/options", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var opts api.OptionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("decode options: %v", err)
	}

	if len(opts.Countries) != 1 || opts.Countries[0] != "UGA" {
		t.Errorf("countries = %v, want [UGA]", opts.Countries)
	}
	hasUSD := false
	for _, c := range opts.Currencies {
		if c == "USD" {
			hasUSD = true
		}
	}
	if !hasUSD {
		t.Errorf("currencies = %v, want USD included", opts.Currencies)
	}
	if len(opts.Modules) != 6 {
		t.Errorf("modules = %v, want all six", opts.Modules)
	}
	if opts.Defaults.Country != "UGA" {
		t.Errorf("defaults country = %q, want UGA", opts.Defaults.Country)
	}
}

// TestHealthEndpoint verifies liveness
func TestHealthEndpoint(t *testing.T) {
	srv := fixtureServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("health body = %s", rec.Body.String())
	}
}
