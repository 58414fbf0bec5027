// Package errors provides structured error types for owl2json.
//
// Every fatal condition of a conversion run carries a machine-readable
// [Code], so that the CLI can decide how to report it and tests can assert
// on the category without matching message text.
//
// # Error Codes
//
//   - INVALID_*: bad flags, configuration values or identifiers
//   - ONTOLOGY_LOAD, INCONSISTENT, UNSUPPORTED: the ontology could not be used
//   - COUNTS_UNAVAILABLE: a count source failed to initialize
//   - FILE_*: local files that are missing or cannot be written
//
// Network failures are not a category of their own: they surface as the
// cause of ONTOLOGY_LOAD or COUNTS_UNAVAILABLE, depending on what was
// being fetched.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "max depth %d is below -1", depth)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // report usage
//	}
//
//	err := errors.Wrap(errors.ErrCodeCountsUnavailable, cause, "load counts from %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidIRI    Code = "INVALID_IRI"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Ontology errors
	ErrCodeOntologyLoad Code = "ONTOLOGY_LOAD"
	ErrCodeInconsistent Code = "INCONSISTENT"
	ErrCodeUnsupported  Code = "UNSUPPORTED"

	// Count source errors
	ErrCodeCountsUnavailable Code = "COUNTS_UNAVAILABLE"

	// File errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeFileWrite    Code = "FILE_WRITE"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
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
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err belongs to a category that aborts a run:
// ontology loading, inconsistency and count source initialization.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeOntologyLoad, ErrCodeInconsistent, ErrCodeUnsupported, ErrCodeCountsUnavailable:
		return true
	}
	return false
}

// As is the standard library's errors.As, so that packages importing this
// one need no second errors import.
func As(err error, target any) bool { return errors.As(err, target) }
