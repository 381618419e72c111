package services

import (
	"context"

	"metronome/internal/domain"
	"metronome/internal/errors"
	"metronome/internal/logging"
	"metronome/internal/repository/sqlite"
	"metronome/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo           sqlite.Repository
	timeService    TimeService
	mapper         *domain.Mapper
	queryValidator *validation.QueryValidator
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, timeService TimeService, opts ...Option) ReportingService {
	o := newOptions(opts)
	return &reportingServiceImpl{
		repo:           repo,
		timeService:    timeService,
		mapper:         domain.NewMapper(),
		queryValidator: validation.NewQueryValidatorWithValidator(o.validator),
	}
}

// SumByCategory totals complete tasks started inside the selected window,
// largest total first. Active tasks never contribute
func (r *reportingServiceImpl) SumByCategory(ctx context.Context, selector string, category *string) (*TotalsResult, error) {
	if category != nil {
		trimmed, err := r.queryValidator.GetValidCategoryFilter(*category)
		if err != nil {
			return nil, errors.NewValidationError("invalid category", err)
		}
		category = &trimmed
	}

	resolution := r.timeService.ResolveFilter(selector)

	rows, err := r.repo.SumByCategory(ctx, resolution.Cutoff, category)
	if err != nil {
		return nil, err
	}

	logging.Debugf("aggregated %d categories\n", len(rows))
	return &TotalsResult{
		Totals:   r.mapper.CategoryTotal.FromDatabaseSlice(rows),
		Category: category,
		Filter:   resolution,
	}, nil
}
