package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Fields checked by the validators
const (
	FieldTaskName  = "task_name"
	FieldCategory  = "category"
	FieldStartTime = "start_time"
	FieldTaskID    = "task_id"
	FieldTotalTime = "total_time"
	FieldStatus    = "status"
	FieldScope     = "scope"
	FieldCutoff    = "cutoff"
	FieldFormat    = "format"
)

var fieldLabels = map[string]string{
	FieldTaskName:  "task name",
	FieldTaskID:    "task id",
	FieldTotalTime: "total time",
	FieldStartTime: "start time",
	FieldFormat:    "export format",
}

// label is how a field is named in messages shown to the user
func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidFormat    ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue     ValidationErrorType = "invalid_value"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// FieldError is one problem with one field. Message is complete and names
// the field, so it can be shown on its own
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every problem found in one input
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Error()
	}

	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(ve.Errors), strings.Join(parts, "; "))
}

// IsValidationError checks if err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Merge appends the field errors of other when it is a ValidationError
func (ve *ValidationError) Merge(other error) {
	var otherVE *ValidationError
	if errors.As(other, &otherVE) {
		ve.Errors = append(ve.Errors, otherVE.Errors...)
	}
}

// OrNil returns nil when no errors were collected
func (ve *ValidationError) OrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, label(field)+" is required", nil)
}

// AddInvalidFormatError records a value outside the accepted set, listed in
// accepted
func (ve *ValidationError) AddInvalidFormatError(field string, value any, accepted string) {
	message := fmt.Sprintf("%s must be one of: %s", label(field), accepted)
	ve.AddError(field, ErrorTypeInvalidFormat, message, value)
}

// AddInvalidLengthError records a length outside [min, max]; a bound of zero
// is open
func (ve *ValidationError) AddInvalidLengthError(field string, value any, min, max int) {
	name := label(field)
	var message string
	switch {
	case min > 0 && max > 0:
		message = fmt.Sprintf("%s must be between %d and %d characters long", name, min, max)
	case min > 0:
		message = fmt.Sprintf("%s must be at least %d characters long", name, min)
	case max > 0:
		message = fmt.Sprintf("%s must be at most %d characters long", name, max)
	default:
		message = name + " has an invalid length"
	}
	ve.AddError(field, ErrorTypeInvalidLength, message, value)
}

func (ve *ValidationError) AddInvalidValueError(field string, value any, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, label(field)+" "+reason, value)
}

func (ve *ValidationError) AddInvalidCharacterError(field string, value any) {
	ve.AddError(field, ErrorTypeInvalidCharacter, label(field)+" contains control characters", value)
}

// GetFieldErrors returns the errors recorded against field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var fieldErrors []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// GetUserFriendlyMessage joins the field messages without field keys
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "the input is not valid"
	case 1:
		return ve.Errors[0].Message
	}

	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Message
	}
	return strings.Join(messages, "; ")
}
