package cli

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"metronome/internal/api"
	"metronome/internal/config"
	"metronome/internal/domain"
	"metronome/internal/errors"
)

const testTimeFormat = "2006-01-02 15:04:05"

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	tasks  []*domain.Task
	nextID int64
	now    time.Time

	// err, when set, is returned by every operation
	err error

	lastRequest  api.ListRequest
	lastCategory *string
	lastFilter   string
}

func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{nextID: 1, now: testNow}
}

// addTask seeds a task started offset before now. A positive duration
// completes it
func (m *mockBusinessAPI) addTask(name, category string, offset, duration time.Duration) *domain.Task {
	task := domain.NewTask(name, category, m.now.Add(-offset))
	task.ID = m.nextID
	m.nextID++
	if duration > 0 {
		task, _ = task.Complete(task.StartTime.Add(duration))
	}
	m.tasks = append(m.tasks, &task)
	return &task
}

func (m *mockBusinessAPI) StartTask(ctx context.Context, name, category string) (*api.StartResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("invalid task name", fmt.Errorf("task name is required"))
	}
	task := domain.NewTask(name, category, m.now)
	task.ID = m.nextID
	m.nextID++
	m.tasks = append(m.tasks, &task)
	return &api.StartResult{Task: &task}, nil
}

func (m *mockBusinessAPI) EndTask(ctx context.Context, name string) (*api.EndResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var found *domain.Task
	for _, task := range m.tasks {
		if task.Name == name && task.IsActive() {
			found = task
		}
	}
	if found == nil {
		return nil, errors.NewNotFoundError("task", name)
	}
	return m.complete(found), nil
}

func (m *mockBusinessAPI) EndLastTask(ctx context.Context) (*api.EndResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var found *domain.Task
	for _, task := range m.tasks {
		if task.IsActive() && (found == nil || !task.StartTime.Before(found.StartTime)) {
			found = task
		}
	}
	if found == nil {
		return nil, errors.WrapError(nil, errors.ErrorTypeNotFound, "no active tasks to end")
	}
	return m.complete(found), nil
}

func (m *mockBusinessAPI) complete(task *domain.Task) *api.EndResult {
	completed, clamped := task.Complete(m.now)
	*task = completed
	duration, _ := completed.Duration()
	return &api.EndResult{Task: task, Duration: duration, Clamped: clamped}
}

func (m *mockBusinessAPI) EndAllActiveTasks(ctx context.Context) (*api.EndAllResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var count int64
	for _, task := range m.tasks {
		if task.IsActive() {
			m.complete(task)
			count++
		}
	}
	return &api.EndAllResult{Count: count, EndTime: m.now}, nil
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, task := range m.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
}

func (m *mockBusinessAPI) ListActive(ctx context.Context, filter string) (*api.ListResult, error) {
	return m.ListTasks(ctx, api.ListRequest{Scope: domain.ScopeActive, Filter: filter})
}

func (m *mockBusinessAPI) ListComplete(ctx context.Context, filter string) (*api.ListResult, error) {
	return m.ListTasks(ctx, api.ListRequest{Scope: domain.ScopeComplete, Filter: filter})
}

func (m *mockBusinessAPI) ListAll(ctx context.Context, filter string) (*api.ListResult, error) {
	return m.ListTasks(ctx, api.ListRequest{Scope: domain.ScopeAll, Filter: filter})
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, req api.ListRequest) (*api.ListResult, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}

	resolution := m.ResolveFilter(req.Filter)
	status := req.Scope.Status()

	var tasks []*domain.Task
	for _, task := range m.tasks {
		if status != nil && task.Status != *status {
			continue
		}
		if req.Category != nil && task.Category != *req.Category {
			continue
		}
		if task.StartTime.Unix() <= resolution.Cutoff {
			continue
		}
		tasks = append(tasks, task)
	}
	return &api.ListResult{Tasks: tasks, Scope: req.Scope, Filter: resolution}, nil
}

func (m *mockBusinessAPI) SumByCategory(ctx context.Context, filter string, category *string) (*api.TotalsResult, error) {
	m.lastFilter = filter
	m.lastCategory = category
	if m.err != nil {
		return nil, m.err
	}

	resolution := m.ResolveFilter(filter)
	sums := make(map[string]int64)
	for _, task := range m.tasks {
		if !task.IsComplete() || task.StartTime.Unix() <= resolution.Cutoff {
			continue
		}
		if category != nil && task.Category != *category {
			continue
		}
		sums[task.Category] += *task.TotalSeconds
	}

	totals := make([]domain.CategoryTotal, 0, len(sums))
	for name, seconds := range sums {
		totals = append(totals, domain.CategoryTotal{Category: name, Total: domain.FromSeconds(seconds)})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Raw != totals[j].Total.Raw {
			return totals[i].Total.Raw > totals[j].Total.Raw
		}
		return totals[i].Category < totals[j].Category
	})
	return &api.TotalsResult{Totals: totals, Category: category, Filter: resolution}, nil
}

func (m *mockBusinessAPI) ResolveFilter(filter string) domain.FilterResolution {
	return domain.ResolveFilter(filter, m.now)
}

func (m *mockBusinessAPI) Now() time.Time {
	return m.now
}

func (m *mockBusinessAPI) RunningTime(task *domain.Task) domain.TaskTime {
	if duration, ok := task.Duration(); ok {
		return duration
	}
	return domain.FromSeconds(m.now.Unix() - task.StartTime.Unix())
}

// testApp bundles an App over the mock with its captured output
type testApp struct {
	*App
	mock   *mockBusinessAPI
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Time.DisplayFormat = testTimeFormat
	cfg.Display.TableStyle = "ascii"
	return cfg
}

func setupTestAppWithMockBusinessAPI(t *testing.T) *testApp {
	t.Helper()
	mock := newMockBusinessAPI()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewAppWithConfig(mock, newTestConfig()).WithOutput(out, errOut)
	return &testApp{App: app, mock: mock, out: out, errOut: errOut}
}

func strPtr(s string) *string {
	return &s
}
