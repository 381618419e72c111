package services

import (
	"context"

	"metronome/internal/domain"
	"metronome/internal/errors"
	"metronome/internal/logging"
	"metronome/internal/repository/sqlite"
	"metronome/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo            sqlite.Repository
	timeService     TimeService
	mapper          *domain.Mapper
	taskValidator   *validation.TaskValidator
	defaultCategory string
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, timeService TimeService, opts ...Option) TaskService {
	o := newOptions(opts)
	return &taskServiceImpl{
		repo:            repo,
		timeService:     timeService,
		mapper:          domain.NewMapper(),
		taskValidator:   validation.NewTaskValidatorWithValidator(o.validator),
		defaultCategory: o.defaultCategory,
	}
}

// validateAndTrimTaskName validates and trims a task name
func (t *taskServiceImpl) validateAndTrimTaskName(name string) (string, error) {
	trimmed, err := t.taskValidator.GetValidTaskName(name)
	if err != nil {
		return "", errors.NewValidationError("invalid task name", err)
	}
	return trimmed, nil
}

// Start records a new active task beginning now
func (t *taskServiceImpl) Start(ctx context.Context, name, category string) (*StartResult, error) {
	trimmedName, resolvedCategory, err := t.taskValidator.GetValidTaskForCreation(name, category, t.defaultCategory)
	if err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	task := domain.NewTask(trimmedName, resolvedCategory, t.timeService.Now())
	row := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &row); err != nil {
		return nil, err
	}
	task.ID = row.ID

	logging.Debugf("started task %d %q in %q\n", task.ID, task.Name, task.Category)
	return &StartResult{Task: &task}, nil
}

// End completes the most recently started active task with the given name
func (t *taskServiceImpl) End(ctx context.Context, name string) (*EndResult, error) {
	trimmedName, err := t.validateAndTrimTaskName(name)
	if err != nil {
		return nil, err
	}

	row, err := t.repo.FindActiveTaskByName(ctx, trimmedName)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, t.notFoundForName(ctx, trimmedName)
		}
		return nil, err
	}

	return t.complete(ctx, row)
}

// notFoundForName distinguishes a name that was never started from one whose
// tasks are all complete already
func (t *taskServiceImpl) notFoundForName(ctx context.Context, name string) error {
	rows, err := t.repo.QueryTasks(ctx, sqlite.QueryOptions{Name: &name})
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return errors.NewNotFoundError("active task", name).WithDetail("complete_count", len(rows))
	}
	return errors.NewNotFoundError("task", name)
}

// EndLast completes the active task with the latest start time
func (t *taskServiceImpl) EndLast(ctx context.Context) (*EndResult, error) {
	row, err := t.repo.FindMostRecentActive(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WrapError(nil, errors.ErrorTypeNotFound, "no active tasks to end")
		}
		return nil, err
	}

	logging.Debugf("most recent active task is %d %q\n", row.ID, row.Name)
	return t.complete(ctx, row)
}

func (t *taskServiceImpl) complete(ctx context.Context, row *sqlite.TaskRow) (*EndResult, error) {
	task := t.mapper.Task.FromDatabase(*row)
	completed, clamped := task.Complete(t.timeService.Now())
	if clamped {
		logging.Debugf("task %d ended before it started, recording zero time\n", task.ID)
	}
	if err := t.taskValidator.ValidateTask(completed); err != nil {
		return nil, errors.NewValidationError("inconsistent task record", err)
	}

	err := t.repo.CompleteTask(ctx, completed.ID,
		sqlite.FormatTimeForDB(*completed.EndTime), *completed.TotalSeconds)
	if err != nil {
		return nil, err
	}

	return &EndResult{
		Task:     &completed,
		Duration: domain.FromSeconds(*completed.TotalSeconds),
		Clamped:  clamped,
	}, nil
}

// EndAllActive completes every active task with one shared end time
func (t *taskServiceImpl) EndAllActive(ctx context.Context) (*EndAllResult, error) {
	endTime := t.timeService.Now()

	count, err := t.repo.CloseAllActive(ctx, sqlite.FormatTimeForDB(endTime))
	if err != nil {
		return nil, err
	}

	logging.Debugf("closed %d active tasks\n", count)
	return &EndAllResult{Count: count, EndTime: endTime}, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	row, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*row)
	return &task, nil
}
