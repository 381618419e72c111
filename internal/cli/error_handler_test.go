package cli

import (
	"errors"
	"testing"

	apperrors "metronome/internal/errors"
	"metronome/internal/validation"

	"github.com/stretchr/testify/assert"
)

func fieldValidationError() *validation.ValidationError {
	ve := validation.NewValidationError()
	ve.AddRequiredError("task_name")
	return ve
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
		exitCode  int
	}{
		{
			name:      "Validation error",
			operation: "start task",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to start task: invalid input",
			exitCode:  apperrors.ExitInvalidInput,
		},
		{
			name:      "Validation error wrapping field errors",
			operation: "start task",
			err:       apperrors.NewValidationError("invalid task name", fieldValidationError()),
			expected:  "failed to start task: invalid task name: task name is required",
			exitCode:  apperrors.ExitInvalidInput,
		},
		{
			name:      "Bare field errors",
			operation: "export tasks",
			err:       fieldValidationError(),
			expected:  "failed to export tasks: task name is required",
			exitCode:  apperrors.ExitInvalidInput,
		},
		{
			name:      "Not found error",
			operation: "end task",
			err:       apperrors.NewNotFoundError("active task", "Review"),
			expected:  "failed to end task: active task not found: Review",
			exitCode:  apperrors.ExitNotFound,
		},
		{
			name:      "Database error",
			operation: "list tasks",
			err:       apperrors.NewDatabaseError("query tasks", errors.New("timeout")),
			expected:  "failed to list tasks: A database error occurred. Run with --verbose for details.",
			exitCode:  apperrors.ExitFailure,
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
			exitCode:  apperrors.ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.err)
			assert.Equal(t, tt.exitCode, eh.ExitCode(result))
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	eh := NewErrorHandler()
	assert.NoError(t, eh.Handle("anything", nil))
	assert.NoError(t, eh.HandleSimple(nil))
	assert.Equal(t, apperrors.ExitOK, eh.ExitCode(nil))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"App error", apperrors.NewInvalidInputError("format", "xml", "unsupported format"), "invalid input for format: unsupported format"},
		{"Not found", apperrors.WrapError(nil, apperrors.ErrorTypeNotFound, "no active tasks to end"), "no active tasks to end"},
		{"Regular error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_TypeChecks(t *testing.T) {
	eh := NewErrorHandler()

	validationErr := apperrors.NewValidationError("bad", nil)
	notFoundErr := apperrors.NewNotFoundError("task", "x")
	databaseErr := apperrors.NewDatabaseError("op", errors.New("boom"))

	assert.True(t, eh.IsValidationError(validationErr))
	assert.True(t, eh.IsValidationError(fieldValidationError()))
	assert.True(t, eh.IsValidationError(eh.Handle("op", validationErr)))
	assert.False(t, eh.IsValidationError(notFoundErr))

	assert.True(t, eh.IsNotFoundError(notFoundErr))
	assert.True(t, eh.IsNotFoundError(eh.Handle("op", notFoundErr)))
	assert.False(t, eh.IsNotFoundError(databaseErr))

	assert.True(t, eh.IsDatabaseError(databaseErr))
	assert.False(t, eh.IsDatabaseError(validationErr))
}

func TestErrorHandler_HandleSimpleKeepsCommandErrors(t *testing.T) {
	eh := NewErrorHandler()

	handled := eh.Handle("end task", apperrors.NewNotFoundError("task", "Ghost"))
	assert.Same(t, handled, eh.HandleSimple(handled))
	assert.EqualError(t, eh.HandleSimple(handled), "failed to end task: task not found: Ghost")
}
