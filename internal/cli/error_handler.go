package cli

import (
	stderrors "errors"
	"fmt"

	"metronome/internal/errors"
	"metronome/internal/logging"
	"metronome/internal/validation"
)

// CommandError is the error a command handler returns to the root command.
// Its message is meant for the user; the cause is kept so exit codes can
// still be derived from it
type CommandError struct {
	message string
	cause   error
}

func (e *CommandError) Error() string {
	return e.message
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("%s [%s]: %v\n", operation, errors.GetErrorCode(err), err)
	}
	return &CommandError{
		message: fmt.Sprintf("failed to %s: %s", operation, eh.userMessage(err)),
		cause:   err,
	}
}

// HandleSimple provides user-friendly error messages without operation context.
// Errors already produced by Handle are returned unchanged
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *CommandError
	if stderrors.As(err, &cmdErr) {
		return cmdErr
	}
	return &CommandError{message: eh.userMessage(err), cause: err}
}

// userMessage prefers the field messages of a validation error over the
// raw cause chain
func (eh *ErrorHandler) userMessage(err error) string {
	appErr, isAppErr := errors.AsAppError(err)

	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		if isAppErr {
			return fmt.Sprintf("%s: %s", appErr.Message, ve.GetUserFriendlyMessage())
		}
		return ve.GetUserFriendlyMessage()
	}

	if isAppErr {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// ExitCode returns the process exit status for err
func (eh *ErrorHandler) ExitCode(err error) int {
	if err != nil && !errors.IsAppError(err) && validation.IsValidationError(err) {
		return errors.ExitInvalidInput
	}
	return errors.ExitCode(err)
}
