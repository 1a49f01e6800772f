// Package api - Wire types
package api

import (
	"programme-cost/internal/config"
)

// OptionsResponse feeds the presentation layer's selection controls:
// the valid country and currency codes derived from the reference
// snapshot, the available cost modules and the configuration defaults.
type OptionsResponse struct {
	// Countries lists the valid ISO3 country codes
	Countries []string `json:"countries"`

	// Currencies lists the valid currency codes
	Currencies []string `json:"currencies"`

	// Modules lists the available cost module identifiers
	Modules []string `json:"modules"`

	// Defaults are the programme defaults merged under every request
	Defaults config.DefaultsConfig `json:"defaults"`
}

// ErrorBody is the JSON error envelope
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error code and message
type ErrorDetail struct {
	// Code is the engine error type
	Code string `json:"code"`

	// Message is a human-readable description
	Message string `json:"message"`

	// RequestID identifies the failed request
	RequestID string `json:"request_id,omitempty"`
}
