// Package errors provides typed error handling for the sweep harness.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidParameters indicates rejected model or batch parameters
	TypeInvalidParameters Type = "INVALID_PARAMETERS"

	// TypeMalformedInput indicates an unparseable trip-record stream
	TypeMalformedInput Type = "MALFORMED_INPUT"

	// TypeMissingArtifact indicates expected simulator output is absent
	TypeMissingArtifact Type = "MISSING_ARTIFACT"

	// TypeSimulatorFailure indicates the external simulator process failed
	TypeSimulatorFailure Type = "SIMULATOR_FAILURE"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeParsing indicates a parsing error outside the trip stream
	TypeParsing Type = "PARSING_ERROR"

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

// IsType checks if an error (or any error it wraps) is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// InvalidParameters creates an invalid-parameters error
func InvalidParameters(message string) *Error {
	return New(TypeInvalidParameters, message)
}

// MalformedInput creates a malformed-input error
func MalformedInput(message string, cause error) *Error {
	return Wrap(TypeMalformedInput, message, cause)
}

// MissingArtifact creates a missing-artifact error
func MissingArtifact(path string) *Error {
	return Newf(TypeMissingArtifact, "expected simulator output not found: %s", path)
}

// SimulatorFailure creates a simulator-failure error
func SimulatorFailure(message string, cause error) *Error {
	return Wrap(TypeSimulatorFailure, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
