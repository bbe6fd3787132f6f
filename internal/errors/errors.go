// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeConfiguration indicates a caller-fixable configuration error:
	// missing required field, quantity out of bounds, unknown sub-option value.
	TypeConfiguration Type = "CONFIGURATION_ERROR"

	// TypeProvider indicates an environmental carrier failure: network error,
	// timeout, missing credentials outside test mode.
	TypeProvider Type = "PROVIDER_ERROR"

	// TypeParsing indicates a catalog file parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeNotFound indicates a catalog entity not found error
	TypeNotFound Type = "NOT_FOUND"

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

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithField names the offending configuration field. Configuration errors
// must always reach the caller with the field identified.
func (e *Error) WithField(field string) *Error {
	return e.WithContext("field", field)
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

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Configuration creates a configuration error naming the offending field
func Configuration(field, message string) *Error {
	return New(TypeConfiguration, message).WithField(field)
}

// Configurationf creates a formatted configuration error
func Configurationf(field, format string, args ...interface{}) *Error {
	return Newf(TypeConfiguration, format, args...).WithField(field)
}

// Provider creates a provider error
func Provider(providerID, message string, cause error) *Error {
	return Wrap(TypeProvider, message, cause).WithContext("provider", providerID)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// NotFound creates a not found error
func NotFound(entityType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", entityType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
