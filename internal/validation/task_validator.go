package validation

import (
	"fmt"

	"metronome/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidatorWithValidator creates a task validator sharing v's limits
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTaskName validates a task name for creation or lookup
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)
	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError(FieldTaskName)
		return validationError
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError(FieldTaskName, trimmedName,
			tv.validator.TaskNameMinLength(), tv.validator.TaskNameMaxLength())
	}

	if tv.validator.HasControlCharacters(trimmedName) {
		validationError.AddInvalidCharacterError(FieldTaskName, trimmedName)
	}

	return validationError.OrNil()
}

// ValidateCategory validates an explicitly supplied category.
// The empty string is accepted and means "use the default"
func (tv *TaskValidator) ValidateCategory(category string) error {
	if category == "" {
		return nil
	}

	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(category)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddInvalidValueError(FieldCategory, category, "must not be blank")
		return validationError
	}

	if !tv.validator.IsValidCategoryLength(trimmed) {
		validationError.AddInvalidLengthError(FieldCategory, trimmed, 1, tv.validator.CategoryMaxLength())
	}

	if tv.validator.HasControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError(FieldCategory, trimmed)
	}

	return validationError.OrNil()
}

// ValidateTaskForCreation validates the inputs of a start operation
func (tv *TaskValidator) ValidateTaskForCreation(name, category string) error {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTaskName(name))
	validationError.Merge(tv.ValidateCategory(category))
	return validationError.OrNil()
}

// ValidateTask checks that a stored task is consistent: name, category and
// start time are present, and end time, total time and status agree. Length
// limits are not applied since they may have changed after the task was stored
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(task.Name) {
		validationError.AddRequiredError(FieldTaskName)
	}
	if !tv.validator.IsNonEmptyString(task.Category) {
		validationError.AddRequiredError(FieldCategory)
	}
	if task.StartTime.IsZero() {
		validationError.AddRequiredError(FieldStartTime)
	}

	if task.ID != 0 && !tv.validator.IsValidTaskID(task.ID) {
		validationError.AddInvalidValueError(FieldTaskID, task.ID, "must be a positive integer")
	}

	hasEnd := task.EndTime != nil
	hasTotal := task.TotalSeconds != nil
	switch {
	case task.IsActive() && (hasEnd || hasTotal):
		validationError.AddInvalidValueError(FieldStatus, task.Status.String(), "must be Complete once an end time is set")
	case task.IsComplete() && !(hasEnd && hasTotal):
		validationError.AddInvalidValueError(FieldStatus, task.Status.String(), "must be Active until end and total time are set")
	case !task.IsActive() && !task.IsComplete():
		validationError.AddInvalidValueError(FieldStatus, int(task.Status), "must be Active or Complete")
	}

	if hasEnd && hasTotal {
		// an end before the start is recorded as zero elapsed time
		var expected int64
		if tv.validator.IsValidTimeRange(task.StartTime, task.EndTime) {
			expected = task.EndTime.Unix() - task.StartTime.Unix()
		}
		if *task.TotalSeconds != expected {
			validationError.AddInvalidValueError(FieldTotalTime, *task.TotalSeconds,
				fmt.Sprintf("must be %d seconds for the recorded start and end", expected))
		}
	}

	return validationError.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(FieldTaskID, id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}

// GetValidTaskForCreation validates the inputs of a start operation and
// returns them trimmed. An empty category becomes fallback
func (tv *TaskValidator) GetValidTaskForCreation(name, category, fallback string) (string, string, error) {
	if err := tv.ValidateTaskForCreation(name, category); err != nil {
		return "", "", err
	}
	resolved := fallback
	if category != "" {
		resolved = tv.validator.TrimAndValidateString(category)
	}
	return tv.validator.TrimAndValidateString(name), resolved, nil
}
