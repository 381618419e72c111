package services

import (
	"context"

	"metronome/internal/domain"
	"metronome/internal/errors"
	"metronome/internal/repository/sqlite"
	"metronome/internal/validation"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	repo           sqlite.Repository
	timeService    TimeService
	mapper         *domain.Mapper
	queryValidator *validation.QueryValidator
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo sqlite.Repository, timeService TimeService, opts ...Option) SearchService {
	o := newOptions(opts)
	return &searchServiceImpl{
		repo:           repo,
		timeService:    timeService,
		mapper:         domain.NewMapper(),
		queryValidator: validation.NewQueryValidatorWithValidator(o.validator),
	}
}

// ListActive returns active tasks started inside the selected window
func (s *searchServiceImpl) ListActive(ctx context.Context, selector string) (*ListResult, error) {
	return s.Search(ctx, domain.ScopeActive, selector, nil)
}

// ListComplete returns complete tasks started inside the selected window
func (s *searchServiceImpl) ListComplete(ctx context.Context, selector string) (*ListResult, error) {
	return s.Search(ctx, domain.ScopeComplete, selector, nil)
}

// ListAll returns every task started inside the selected window
func (s *searchServiceImpl) ListAll(ctx context.Context, selector string) (*ListResult, error) {
	return s.Search(ctx, domain.ScopeAll, selector, nil)
}

// Search lists tasks in scope started after the selector's cutoff, optionally
// restricted to one category. Results are ordered by id
func (s *searchServiceImpl) Search(ctx context.Context, scope domain.ListScope, selector string, category *string) (*ListResult, error) {
	if category != nil {
		trimmed, err := s.queryValidator.GetValidCategoryFilter(*category)
		if err != nil {
			return nil, errors.NewValidationError("invalid category", err)
		}
		category = &trimmed
	}

	resolution := s.timeService.ResolveFilter(selector)

	opts := domain.SearchOptions{
		Scope:    scope,
		Cutoff:   resolution.Cutoff,
		Category: category,
	}
	if err := s.queryValidator.ValidateSearchOptions(opts); err != nil {
		return nil, errors.NewValidationError("invalid search options", err)
	}

	rows, err := s.repo.QueryTasks(ctx, s.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Tasks:  s.mapper.Task.FromDatabaseSlice(rows),
		Scope:  scope,
		Filter: resolution,
	}, nil
}
