// Package errors provides structured error types for pearls.
//
// Errors carry a machine-readable [Code] so the CLI can print a short
// message and the HTTP server can pick a status code:
//   - INVALID_*: parameter validation failures (HTTP 400)
//   - NOT_FOUND, FILE_NOT_FOUND: missing presets, configs or routes (HTTP 404)
//   - NETWORK_ERROR: cache backend unreachable
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColor, "cannot parse %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidColor) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidFill   Code = "INVALID_FILL"
	ErrCodeInvalidRNG    Code = "INVALID_RNG"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

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

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" for foreign errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message and cause without the code prefix. For
// other errors it returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch code := GetCode(err); {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case code == ErrCodeNotFound || code == ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	case code == ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
