package services

import (
	"context"
	"time"

	"metronome/internal/domain"
	"metronome/internal/repository/sqlite"
	"metronome/internal/validation"
)

// Clock returns the current instant
type Clock func() time.Time

// StartResult describes a newly started task
type StartResult struct {
	Task *domain.Task `json:"task"`
}

// EndResult describes a task that was just completed
type EndResult struct {
	Task     *domain.Task    `json:"task"`
	Duration domain.TaskTime `json:"duration"`
	// Clamped is set when the end time preceded the start time and the
	// recorded total was forced to zero
	Clamped bool `json:"clamped"`
}

// EndAllResult describes a bulk close of every active task
type EndAllResult struct {
	Count   int64     `json:"count"`
	EndTime time.Time `json:"end_time"`
}

// ListResult holds the tasks matched by a listing
type ListResult struct {
	Tasks  []*domain.Task          `json:"tasks"`
	Scope  domain.ListScope        `json:"-"`
	Filter domain.FilterResolution `json:"filter"`
}

// Count returns the number of matched tasks
func (r *ListResult) Count() int {
	return len(r.Tasks)
}

// TotalsResult holds per-category totals of complete tasks
type TotalsResult struct {
	Totals   []domain.CategoryTotal  `json:"totals"`
	Category *string                 `json:"category,omitempty"`
	Filter   domain.FilterResolution `json:"filter"`
}

// TimeService handles clock access, filter resolution and duration math
type TimeService interface {
	Now() time.Time
	ResolveFilter(selector string) domain.FilterResolution
	Elapsed(start, end time.Time) (domain.TaskTime, bool)
	CalculateRunningDuration(start time.Time) domain.TaskTime
}

// TaskService handles the task lifecycle: Active to Complete, exactly once
type TaskService interface {
	Start(ctx context.Context, name, category string) (*StartResult, error)
	End(ctx context.Context, name string) (*EndResult, error)
	EndLast(ctx context.Context) (*EndResult, error)
	EndAllActive(ctx context.Context) (*EndAllResult, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
}

// SearchService lists task records restricted by status and time window
type SearchService interface {
	ListActive(ctx context.Context, selector string) (*ListResult, error)
	ListComplete(ctx context.Context, selector string) (*ListResult, error)
	ListAll(ctx context.Context, selector string) (*ListResult, error)
	Search(ctx context.Context, scope domain.ListScope, selector string, category *string) (*ListResult, error)
}

// ReportingService aggregates complete task time
type ReportingService interface {
	SumByCategory(ctx context.Context, selector string, category *string) (*TotalsResult, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
}

// Option configures the services built by NewServiceContainer
type Option func(*options)

type options struct {
	clock           Clock
	defaultCategory string
	validator       *validation.Validator
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:           time.Now,
		defaultCategory: domain.DefaultCategory,
		validator:       validation.NewValidator(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDefaultCategory sets the category used when Start gets none
func WithDefaultCategory(category string) Option {
	return func(o *options) {
		if category != "" {
			o.defaultCategory = category
		}
	}
}

// WithValidator sets the validator whose limits the services enforce
func WithValidator(v *validation.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// NewServiceContainer wires every service over repo
func NewServiceContainer(repo sqlite.Repository, opts ...Option) *ServiceContainer {
	timeService := NewTimeService(opts...)
	searchService := NewSearchService(repo, timeService, opts...)
	return &ServiceContainer{
		TimeService:      timeService,
		TaskService:      NewTaskService(repo, timeService, opts...),
		SearchService:    searchService,
		ReportingService: NewReportingService(repo, timeService, opts...),
	}
}
