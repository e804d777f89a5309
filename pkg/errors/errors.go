// Package errors provides structured error types for the modelgraph engine.
//
// The engine distinguishes three kinds of failure:
//
//   - Tolerable document inconsistencies (dangling shape references, duplicate
//     shapes, unresolved edge endpoints). These never surface as errors; the
//     offending element is logged and omitted from the render graph.
//   - Programmer-invariant violations (a mutation referencing a shape index
//     that does not exist, an exhaustive switch reaching an unknown case).
//     These are reported with [ErrCodeCorruptDocument] or raised through
//     [Unreachable].
//   - User-gesture rejections (an invalid connection or containment). These
//     are plain false results, never errors.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - CORRUPT_DOCUMENT: Document and engine drifted out of sync
//   - INTERNAL_*, UNREACHABLE: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFlavor, "unknown flavor: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFlavor) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "failed to read %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFlavor   Code = "INVALID_FLAVOR"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Document/engine drift
	ErrCodeCorruptDocument Code = "CORRUPT_DOCUMENT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnreachable Code = "UNREACHABLE"
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
		return e.Message
	}
	return err.Error()
}

// Unreachable panics with an [ErrCodeUnreachable] error. It marks the default
// branch of a switch over a closed set of discriminants: reaching it means the
// engine and the document model have drifted apart.
func Unreachable(format string, args ...any) {
	panic(New(ErrCodeUnreachable, format, args...))
}
