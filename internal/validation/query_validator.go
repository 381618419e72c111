package validation

import (
	"strings"

	"metronome/internal/domain"
)

// ExportFormats lists the formats accepted by ValidateExportFormat
var ExportFormats = []string{"csv", "json"}

// QueryValidator validates listing, totals and export requests
type QueryValidator struct {
	validator     *Validator
	taskValidator *TaskValidator
}

// NewQueryValidatorWithValidator creates a query validator sharing v's limits
func NewQueryValidatorWithValidator(v *Validator) *QueryValidator {
	return &QueryValidator{
		validator:     v,
		taskValidator: NewTaskValidatorWithValidator(v),
	}
}

// ValidateSearchOptions validates listing criteria
func (qv *QueryValidator) ValidateSearchOptions(opts domain.SearchOptions) error {
	validationError := NewValidationError()

	switch opts.Scope {
	case domain.ScopeAll, domain.ScopeActive, domain.ScopeComplete:
	default:
		validationError.AddInvalidValueError(FieldScope, int(opts.Scope), "must be all, active or complete")
	}

	if opts.Cutoff < 0 {
		validationError.AddInvalidValueError(FieldCutoff, opts.Cutoff, "must not be negative")
	}

	if opts.Category != nil {
		validationError.Merge(qv.ValidateCategoryFilter(*opts.Category))
	}

	if opts.Name != nil {
		validationError.Merge(qv.taskValidator.ValidateTaskName(*opts.Name))
	}

	return validationError.OrNil()
}

// ValidateCategoryFilter validates a category used to narrow a query.
// Unlike a start category it may not be empty
func (qv *QueryValidator) ValidateCategoryFilter(category string) error {
	if !qv.validator.IsNonEmptyString(category) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(FieldCategory, category, "must not be blank")
		return validationError
	}
	return qv.taskValidator.ValidateCategory(category)
}

// GetValidCategoryFilter returns the category filter trimmed the same way
// Start trims a category, so a padded filter matches the stored value
func (qv *QueryValidator) GetValidCategoryFilter(category string) (string, error) {
	if err := qv.ValidateCategoryFilter(category); err != nil {
		return "", err
	}
	return qv.validator.TrimAndValidateString(category), nil
}

// ValidateExportFormat validates an export format name
func (qv *QueryValidator) ValidateExportFormat(format string) error {
	normalized := strings.ToLower(qv.validator.TrimAndValidateString(format))
	for _, f := range ExportFormats {
		if normalized == f {
			return nil
		}
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError(FieldFormat, format, strings.Join(ExportFormats, ", "))
	return validationError
}
