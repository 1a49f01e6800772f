// Package errors provides the engine's error taxonomy.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeNotFound indicates a specific keyed reference row is absent
	TypeNotFound Type = "NOT_FOUND"

	// TypeMissingSeries indicates a country has no economic series at all,
	// as opposed to merely being out of the tabulated year range
	TypeMissingSeries Type = "MISSING_SERIES"

	// TypeDataGap indicates a cost module cannot produce a line item
	// because required reference data is absent for the configured country
	TypeDataGap Type = "DATA_GAP"

	// TypeConfig indicates an invalid programme configuration
	TypeConfig Type = "CONFIG_ERROR"

	// TypeIngest indicates a reference-data loading error
	TypeIngest Type = "INGEST_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType reports whether err, or any error it wraps, carries the given type.
// A DataGapError wrapping a NotFoundError therefore matches both.
func IsType(err error, t Type) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Type == t {
			return true
		}
		err = e.Cause
	}
	return false
}

// NotFound creates a not found error for a keyed reference row
func NotFound(table, key string) *Error {
	return Newf(TypeNotFound, "no %s row for key %q", table, key)
}

// MissingSeries creates a missing series error
func MissingSeries(country, series string) *Error {
	return Newf(TypeMissingSeries, "no %s series for country %s", series, country)
}

// DataGap wraps a lookup failure encountered by a cost module
func DataGap(module string, cause error) *Error {
	return Wrapf(TypeDataGap, cause, "module %s cannot be costed", module)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// Ingest creates a reference-data loading error
func Ingest(message string, cause error) *Error {
	return Wrap(TypeIngest, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
