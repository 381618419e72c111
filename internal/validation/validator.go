package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"metronome/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator that uses the default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator that reads limits from cfg
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed length, counted in characters
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTaskNameLength checks if a task name length is within configured limits
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return v.IsValidStringLength(name, v.TaskNameMinLength(), v.TaskNameMaxLength())
}

// IsValidCategoryLength checks if a category length is within configured limits
func (v *Validator) IsValidCategoryLength(category string) bool {
	return v.IsValidStringLength(category, 1, v.CategoryMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other
// control characters. Any other printable text, including non-ASCII, is allowed
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsValidTimeRange checks that end does not precede start
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true
	}
	return !endTime.Before(startTime)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskNameMinLength returns configured minimum task name length or default
func (v *Validator) TaskNameMinLength() int {
	if v.config != nil && v.config.Validation.TaskNameMinLength > 0 {
		return v.config.Validation.TaskNameMinLength
	}
	return config.DefaultTaskNameMinLength
}

// TaskNameMaxLength returns configured maximum task name length or default
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return config.DefaultTaskNameMaxLength
}

// CategoryMaxLength returns configured maximum category length or default
func (v *Validator) CategoryMaxLength() int {
	if v.config != nil && v.config.Validation.CategoryMaxLength > 0 {
		return v.config.Validation.CategoryMaxLength
	}
	return config.DefaultCategoryMaxLength
}
