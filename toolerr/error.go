// Package toolerr provides structured error types for finagent tools.
//
// This package defines standard error codes and a structured Error type
// that includes tool context, operation details, error codes, and cause chains.
// It integrates with Go's standard errors package for error wrapping and unwrapping.
package toolerr

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error codes used across tools for consistent error reporting.
const (
	// ErrCodeNotRegistered indicates the requested tool name is absent from the registry
	ErrCodeNotRegistered = "NOT_REGISTERED"

	// ErrCodeExecutionFailed indicates the tool failed while executing
	ErrCodeExecutionFailed = "EXECUTION_FAILED"

	// ErrCodeInvalidInput indicates invalid input parameters
	ErrCodeInvalidInput = "INVALID_INPUT"

	// ErrCodeParseError indicates failure to parse data
	ErrCodeParseError = "PARSE_ERROR"

	// ErrCodeDataNotFound indicates the requested data does not exist upstream
	ErrCodeDataNotFound = "DATA_NOT_FOUND"

	// ErrCodeTimeout indicates an operation timed out
	ErrCodeTimeout = "TIMEOUT"

	// ErrCodeNetworkError indicates a network-related error
	ErrCodeNetworkError = "NETWORK_ERROR"
)

// Error is a structured error type for tool operations.
// It provides context about which tool and operation failed,
// includes a standard error code, and can wrap underlying errors.
type Error struct {
	// Tool is the name of the tool that generated the error
	Tool string

	// Operation is the specific operation that failed
	Operation string

	// Code is a standard error code constant
	Code string

	// Message is a human-readable error message
	Message string

	// Details contains additional context as key-value pairs
	Details map[string]any

	// Cause is the underlying error that caused this error
	Cause error
}

// New creates a new structured tool error.
//
// Example:
//
//	err := toolerr.New("akshare_search", "lookup", toolerr.ErrCodeDataNotFound, "未找到A股代码")
func New(tool, operation, code, message string) *Error {
	return &Error{
		Tool:      tool,
		Operation: operation,
		Code:      code,
		Message:   message,
	}
}

// WithCause adds an underlying error to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails adds additional context to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Error implements the error interface.
// It formats the error as: "tool [operation/code]: message: cause"
//
// Examples:
//   - "akshare_search [lookup/DATA_NOT_FOUND]: 未找到A股代码"
//   - "generate_markdown_report [render/EXECUTION_FAILED]: write failed: permission denied"
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s [%s/%s]", e.Tool, e.Operation, e.Code))

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause error.
// This enables errors.Is() and errors.As() to work with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// Two Error values are considered equal if they have the same Tool, Operation, and Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Tool == t.Tool && e.Operation == t.Operation && e.Code == t.Code
}

// As implements error type assertion for errors.As().
func (e *Error) As(target any) bool {
	t, ok := target.(**Error)
	if !ok {
		return false
	}
	*t = e
	return true
}

// Sentinel errors for common scenarios

var (
	// ErrNotRegistered is returned when a tool name is absent from the registry
	ErrNotRegistered = errors.New("tool not registered")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataNotFound is returned when upstream data does not exist
	ErrDataNotFound = errors.New("data not found")
)
