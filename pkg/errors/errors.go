// Package errors provides custom error types for the fieldscope system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
//
// The taxonomy mirrors the pipeline's failure policy: per-field parse
// failures are absorbed as null values and never become errors; only
// whole-stage failures (a feed that could not be retrieved, a join that
// produced zero rows) surface to the caller.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fieldscope system
var (
	// ErrSourceUnavailable indicates that a feed could not be retrieved
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrEmptyResult indicates that correlation produced zero matching rows.
	// This is an explicit empty state distinct from a partial match.
	ErrEmptyResult = errors.New("empty result")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// SourceError represents a failure to retrieve or materialize a feed.
// It is fatal to that fetch and surfaced as a single failure outcome.
type SourceError struct {
	Source    string // feed identifier ("portal", "report")
	Operation string // "open", "download", "parse"
	Message   string
	Err       error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("source %s: %s failed: %s", e.Source, e.Operation, e.Message)
	}
	return fmt.Sprintf("source %s: %s failed: %v", e.Source, e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError
func NewSourceError(source, operation string, err error) *SourceError {
	return &SourceError{Source: source, Operation: operation, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// EmptyResultError marks a stage that completed but produced no rows.
// It carries enough context for user-visible reporting by the caller.
type EmptyResultError struct {
	Stage   string // "correlate", "bounds", "fetch"
	Message string
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s produced no rows: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("%s produced no rows", e.Stage)
}

// Is implements errors.Is support
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// NewEmptyResultError creates a new EmptyResultError
func NewEmptyResultError(stage, message string) *EmptyResultError {
	return &EmptyResultError{Stage: stage, Message: message}
}

// ParseError represents an error when parsing feed data formats.
// Note this covers whole-document parse failures only; individual field
// coercion failures degrade to null values instead.
type ParseError struct {
	Format  string // "csv", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// APIError represents an error from a feed HTTP endpoint
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Helper functions for error checking

// IsSourceUnavailable checks if an error indicates a feed retrieval failure
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsEmptyResult checks if an error marks the explicit empty state
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSource wraps an error as a SourceError
func WrapSource(source, operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(source, operation, err)
}
