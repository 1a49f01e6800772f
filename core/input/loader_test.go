// Package input_test - Programme definition loading tests
package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"programme-cost/core/input"
	"programme-cost/internal/errors"
)

const jsonProgramme = `{
  "country": "UGA",
  "start_year": 2020,
  "end_year": 2021,
  "discount_rate": 1.03,
  "desired_currency": "USD",
  "desired_year": 2018,
  "components": {
    "personnel": {
      "cadres": [{"level": 1, "count": 2}]
    },
    "travel": {
      "trips": [{"division": "district", "travellers": 2, "days": 3, "count": 4}]
    }
  }
}`

const hclProgramme = `
country          = "UGA"
start_year       = 2020
end_year         = 2021
discount_rate    = 1.03
desired_currency = "USD"
desired_year     = 2018

components {
  personnel {
    cadre {
      level = 1
      count = 2
    }
  }
  travel {
    trip {
      division   = "district"
      travellers = 2
      days       = 3
      count      = 4
    }
  }
}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestJSONAndHCLAgree verifies both formats decode identically
func TestJSONAndHCLAgree(t *testing.T) {
	fromJSON, err := input.LoadProgramme(writeTemp(t, "programme.json", jsonProgramme))
	if err != nil {
		t.Fatalf("load JSON: %v", err)
	}
	fromHCL, err := input.LoadProgramme(writeTemp(t, "programme.hcl", hclProgramme))
	if err != nil {
		t.Fatalf("load HCL: %v", err)
	}

	if fromJSON.Country != fromHCL.Country ||
		fromJSON.StartYear != fromHCL.StartYear ||
		fromJSON.EndYear != fromHCL.EndYear ||
		fromJSON.DiscountRate != fromHCL.DiscountRate ||
		fromJSON.DesiredCurrency != fromHCL.DesiredCurrency ||
		fromJSON.DesiredYear != fromHCL.DesiredYear {
		t.Errorf("header fields differ:\nJSON: %+v\nHCL:  %+v", fromJSON, fromHCL)
	}

	jp, hp := fromJSON.Components.Personnel, fromHCL.Components.Personnel
	if jp == nil || hp == nil || len(jp.Cadres) != 1 || len(hp.Cadres) != 1 ||
		jp.Cadres[0] != hp.Cadres[0] {
		t.Errorf("personnel sections differ:\nJSON: %+v\nHCL:  %+v", jp, hp)
	}
	jt, ht := fromJSON.Components.Travel, fromHCL.Components.Travel
	if jt == nil || ht == nil || len(jt.Trips) != 1 || len(ht.Trips) != 1 ||
		jt.Trips[0] != ht.Trips[0] {
		t.Errorf("travel sections differ:\nJSON: %+v\nHCL:  %+v", jt, ht)
	}

	if err := fromHCL.Validate(); err != nil {
		t.Errorf("loaded programme failed validation: %v", err)
	}
}

// TestUnknownFieldRejected verifies a mistyped section fails loudly
func TestUnknownFieldRejected(t *testing.T) {
	_, err := input.ParseJSON([]byte(`{
	  "country": "UGA",
	  "components": {"personel": {}}
	}`))
	if err == nil {
		t.Fatal("expected an error for an unknown component section")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("error type = %v, want CONFIG_ERROR", err)
	}
}

// TestUnsupportedExtension verifies the extension dispatch
func TestUnsupportedExtension(t *testing.T) {
	_, err := input.LoadProgramme(writeTemp(t, "programme.yaml", "country: UGA"))
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("error type = %v, want CONFIG_ERROR", err)
	}
}
