// Package errors provides structured error types for chileviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The three codes every chart run can fail with are:
//   - FILE_NOT_FOUND: an input path (dataset, geometry, config) does not exist
//   - MISSING_KEY: a referenced region or attribute is absent from the loaded data
//   - INVALID_INPUT: a magnitude is negative, zero where a positive value is
//     required, or otherwise unusable
//
// All of them are fatal. Nothing in chileviz retries or recovers from them.
//
// # Usage
//
//	err := errors.InvalidInput("negative area for %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode %s", format)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidChart  Code = "INVALID_CHART"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeMissingKey   Code = "MISSING_KEY"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
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

// MissingFile reports that path could not be opened because it does not exist.
func MissingFile(path string, cause error) *Error {
	return Wrap(ErrCodeFileNotFound, cause, "input file not found: %s", path)
}

// MissingKey reports that a region or attribute named key is absent.
// what describes the kind of key, e.g. "region" or "area".
func MissingKey(what, key string) *Error {
	return New(ErrCodeMissingKey, "missing %s: %q", what, key)
}

// InvalidInput reports an unusable magnitude or argument.
func InvalidInput(format string, args ...any) *Error {
	return New(ErrCodeInvalidInput, format, args...)
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

// IsNotExist reports whether err means a file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
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
