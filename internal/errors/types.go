package errors

import (
	"fmt"
)

// Process exit codes returned by ExitCode
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 3
)

// ErrorType classifies a failure of a tracker operation
type ErrorType int

const (
	// ErrorTypeValidation is a rejected task name or category, or any other
	// field the core checks itself
	ErrorTypeValidation ErrorType = iota
	// ErrorTypeNotFound means no task matched a name or the end-last lookup
	ErrorTypeNotFound
	// ErrorTypeDatabase wraps a failure of the task store
	ErrorTypeDatabase
	// ErrorTypeInvalidInput is a malformed command line
	ErrorTypeInvalidInput
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// ExitStatus is the process exit code for a failure of this type
func (et ErrorType) ExitStatus() int {
	switch et {
	case ErrorTypeValidation, ErrorTypeInvalidInput:
		return ExitInvalidInput
	case ErrorTypeNotFound:
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// CausedByUser reports whether the failure came from what the user typed
// rather than from the store
func (et ErrorType) CausedByUser() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return true
	default:
		return false
	}
}

// AppError is the structured error returned by services and the store
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Details map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type and code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithDetail attaches a value describing the failure, such as the task name
// that was looked up
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Detail returns a value attached with WithDetail
func (e *AppError) Detail(key string) (any, bool) {
	value, ok := e.Details[key]
	return value, ok
}
