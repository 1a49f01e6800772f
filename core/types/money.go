// Package types - Shared value types for the costing engine
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code. Reference data keys currencies by
// the ISO3 code of the issuing country; "USD" is accepted as an alias for
// the United States code and denotes international-dollar terms.
type Currency string

const (
	// CurrencyUSD is the international-dollar alias
	CurrencyUSD Currency = "USD"

	// CurrencyUSA is the ISO3 code backing CurrencyUSD
	CurrencyUSA Currency = "USA"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Normalize maps the USD alias onto the United States ISO3 code and
// upper-cases the code for lookup purposes.
func (c Currency) Normalize() Currency {
	n := Currency(strings.ToUpper(strings.TrimSpace(string(c))))
	if n == CurrencyUSD {
		return CurrencyUSA
	}
	return n
}

// MoneyAt is a monetary amount tagged with its (currency, price year)
// provenance. Raw reference values travel through the pipeline as MoneyAt
// until the rebaser consumes them; bare amounts are never passed around.
type MoneyAt struct {
	// Amount is the monetary amount
	Amount decimal.Decimal `json:"amount"`

	// Currency is the currency the amount is expressed in
	Currency Currency `json:"currency"`

	// Year is the price year the amount is expressed at
	Year int `json:"year"`
}

// NewMoneyAt creates a tagged monetary amount
func NewMoneyAt(amount decimal.Decimal, currency Currency, year int) MoneyAt {
	return MoneyAt{Amount: amount, Currency: currency, Year: year}
}

// Mul scales the amount, keeping the provenance tag
func (m MoneyAt) Mul(factor decimal.Decimal) MoneyAt {
	return MoneyAt{Amount: m.Amount.Mul(factor), Currency: m.Currency, Year: m.Year}
}

// String returns a human-readable representation
func (m MoneyAt) String() string {
	return fmt.Sprintf("%s %s @%d", m.Amount.String(), m.Currency, m.Year)
}
