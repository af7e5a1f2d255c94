// Package errors provides structured error types for inspectreport.
//
// Every failure surfaced to a caller carries a machine-readable [Code]. Two
// codes describe the outcome of a report generation attempt:
//   - ITEM_RENDER_DEGRADED: one item (usually a photo) could not be drawn and
//     was replaced by a placeholder. Informational; generation continued.
//   - REPORT_GENERATION_FAILED: the attempt as a whole failed and no document
//     was produced.
//
// The remaining codes classify input, configuration and storage problems so
// the CLI and HTTP API can map them to exit codes and status codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRecord, "section %q: unknown condition %q", id, c)
//	if errors.Is(err, errors.ErrCodeInvalidRecord) {
//	    // reject the input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeReportFailed, cause, "render %s", format)
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
	ErrCodeInvalidRecord Code = "INVALID_RECORD"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeReportNotFound Code = "REPORT_NOT_FOUND"

	// Report generation outcomes
	ErrCodeItemDegraded   Code = "ITEM_RENDER_DEGRADED"
	ErrCodeReportFailed   Code = "REPORT_GENERATION_FAILED"
	ErrCodeLayoutOverflow Code = "LAYOUT_OVERFLOW"

	// Storage errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so a REPORT_GENERATION_FAILED wrapping a LAYOUT_OVERFLOW matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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

// Fatal wraps cause as a REPORT_GENERATION_FAILED error unless it already is one.
func Fatal(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	if Is(cause, ErrCodeReportFailed) {
		return cause
	}
	return Wrap(ErrCodeReportFailed, cause, format, args...)
}
