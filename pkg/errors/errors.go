// Package errors provides structured error types for archexport.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the export engine, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Structured detail payloads (e.g. the planned work for stub formats)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The export engine itself only produces four codes:
//   - INVALID_DATA: the diagram snapshot is malformed (caller error)
//   - UNSUPPORTED_FORMAT: the format tag is unknown (caller error)
//   - NOT_IMPLEMENTED: the format is reserved but has no generator yet
//   - EXPORT_FAILED: a generator failed; the original error is preserved
//
// Snapshot providers and configuration loading add NOT_FOUND and INVALID_CONFIG.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidData, "diagram id is required")
//	if errors.Is(err, errors.ErrCodeInvalidData) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExportFailed, origErr, "generate %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Export engine errors
	ErrCodeInvalidData       Code = "INVALID_DATA"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeNotImplemented    Code = "NOT_IMPLEMENTED"
	ErrCodeExportFailed      Code = "EXPORT_FAILED"

	// Collaborator errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code, optional details and optional cause.
type Error struct {
	Code    Code           // Machine-readable error code
	Message string         // Human-readable message
	Details map[string]any // Structured detail payload (optional)
	Cause   error          // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail sets a detail entry and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
// The cause message is also recorded under details["cause"].
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
	if cause != nil {
		e.WithDetail("cause", cause.Error())
	}
	return e
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
