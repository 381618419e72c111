package api

import (
	"context"
	"time"

	"metronome/internal/domain"
	"metronome/internal/repository/sqlite"
	"metronome/internal/services"
)

// Result types returned to presentation layers
type (
	StartResult  = services.StartResult
	EndResult    = services.EndResult
	EndAllResult = services.EndAllResult
	ListResult   = services.ListResult
	TotalsResult = services.TotalsResult
)

// ListRequest selects the tasks returned by ListTasks
type ListRequest struct {
	Scope    domain.ListScope
	Filter   string
	Category *string
}

// BusinessAPI defines the business-logic-only interface for task time tracking
type BusinessAPI interface {
	// ========== Task Lifecycle ==========

	// StartTask records a new active task. An empty category uses the default
	StartTask(ctx context.Context, name, category string) (*StartResult, error)

	// EndTask completes the most recently started active task with this name
	EndTask(ctx context.Context, name string) (*EndResult, error)

	// EndLastTask completes the most recently started active task
	EndLastTask(ctx context.Context) (*EndResult, error)

	// EndAllActiveTasks completes every active task with one shared end time
	EndAllActiveTasks(ctx context.Context) (*EndAllResult, error)

	// ========== Query Operations ==========

	// GetTask returns a single task by ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	ListActive(ctx context.Context, filter string) (*ListResult, error)
	ListComplete(ctx context.Context, filter string) (*ListResult, error)
	ListAll(ctx context.Context, filter string) (*ListResult, error)

	// ListTasks combines a scope, a filter and an optional category
	ListTasks(ctx context.Context, req ListRequest) (*ListResult, error)

	// ========== Reporting ==========

	// SumByCategory totals complete tasks per category, largest first
	SumByCategory(ctx context.Context, filter string, category *string) (*TotalsResult, error)

	// ResolveFilter reports how a filter selector would be applied right now
	ResolveFilter(filter string) domain.FilterResolution

	// ========== Time ==========

	Now() time.Time

	// RunningTime returns how long an active task has been running
	RunningTime(task *domain.Task) domain.TaskTime
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
}

// NewBusinessAPI creates a new BusinessAPI instance over repo
func NewBusinessAPI(repo sqlite.Repository, opts ...services.Option) BusinessAPI {
	return &businessAPIImpl{services: services.NewServiceContainer(repo, opts...)}
}

// NewBusinessAPIWithServices creates a BusinessAPI over existing services
func NewBusinessAPIWithServices(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{services: container}
}

// ========== Task Lifecycle ==========

func (b *businessAPIImpl) StartTask(ctx context.Context, name, category string) (*StartResult, error) {
	return b.services.TaskService.Start(ctx, name, category)
}

func (b *businessAPIImpl) EndTask(ctx context.Context, name string) (*EndResult, error) {
	return b.services.TaskService.End(ctx, name)
}

func (b *businessAPIImpl) EndLastTask(ctx context.Context) (*EndResult, error) {
	return b.services.TaskService.EndLast(ctx)
}

func (b *businessAPIImpl) EndAllActiveTasks(ctx context.Context) (*EndAllResult, error) {
	return b.services.TaskService.EndAllActive(ctx)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.services.TaskService.GetTask(ctx, id)
}

func (b *businessAPIImpl) ListActive(ctx context.Context, filter string) (*ListResult, error) {
	return b.services.SearchService.ListActive(ctx, filter)
}

func (b *businessAPIImpl) ListComplete(ctx context.Context, filter string) (*ListResult, error) {
	return b.services.SearchService.ListComplete(ctx, filter)
}

func (b *businessAPIImpl) ListAll(ctx context.Context, filter string) (*ListResult, error) {
	return b.services.SearchService.ListAll(ctx, filter)
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, req ListRequest) (*ListResult, error) {
	return b.services.SearchService.Search(ctx, req.Scope, req.Filter, req.Category)
}

// ========== Reporting ==========

func (b *businessAPIImpl) SumByCategory(ctx context.Context, filter string, category *string) (*TotalsResult, error) {
	return b.services.ReportingService.SumByCategory(ctx, filter, category)
}

func (b *businessAPIImpl) ResolveFilter(filter string) domain.FilterResolution {
	return b.services.TimeService.ResolveFilter(filter)
}

// ========== Time ==========

func (b *businessAPIImpl) Now() time.Time {
	return b.services.TimeService.Now()
}

func (b *businessAPIImpl) RunningTime(task *domain.Task) domain.TaskTime {
	if duration, ok := task.Duration(); ok {
		return duration
	}
	return b.services.TimeService.CalculateRunningDuration(task.StartTime)
}
