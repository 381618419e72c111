package domain

import (
	"metronome/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database row
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.TaskRow {
	row := sqlite.TaskRow{
		ID:        domainTask.ID,
		Name:      domainTask.Name,
		StartTime: sqlite.FormatTimeForDB(domainTask.StartTime),
		Category:  domainTask.Category,
		Status:    domainTask.Status.String(),
	}
	if domainTask.EndTime != nil {
		end := sqlite.FormatTimeForDB(*domainTask.EndTime)
		row.EndTime = &end
	}
	if domainTask.TotalSeconds != nil {
		total := *domainTask.TotalSeconds
		row.TotalTime = &total
	}
	return row
}

// FromDatabase converts a database row to a domain Task. Rows whose status
// column is unreadable are derived from the presence of an end time
func (m *TaskMapper) FromDatabase(row sqlite.TaskRow) Task {
	status, err := ParseStatus(row.Status)
	if err != nil {
		status = StatusActive
		if row.EndTime != nil {
			status = StatusComplete
		}
	}

	task := Task{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		StartTime: sqlite.ParseTimeFromDB(row.StartTime),
		Status:    status,
	}
	if row.EndTime != nil {
		end := sqlite.ParseTimeFromDB(*row.EndTime)
		task.EndTime = &end
	}
	if row.TotalTime != nil {
		total := *row.TotalTime
		task.TotalSeconds = &total
	}
	return task
}

// ToDatabaseSlice converts a slice of domain Tasks to database rows
func (m *TaskMapper) ToDatabaseSlice(domainTasks []Task) []sqlite.TaskRow {
	rows := make([]sqlite.TaskRow, len(domainTasks))
	for i, task := range domainTasks {
		rows[i] = m.ToDatabase(task)
	}
	return rows
}

// FromDatabaseSlice converts database rows to domain Tasks
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.TaskRow) []*Task {
	tasks := make([]*Task, len(rows))
	for i, row := range rows {
		task := m.FromDatabase(*row)
		tasks[i] = &task
	}
	return tasks
}

// CategoryTotalMapper converts aggregation rows
type CategoryTotalMapper struct{}

// NewCategoryTotalMapper creates a new CategoryTotalMapper instance
func NewCategoryTotalMapper() *CategoryTotalMapper {
	return &CategoryTotalMapper{}
}

// FromDatabase converts a database aggregation row to a domain CategoryTotal
func (m *CategoryTotalMapper) FromDatabase(row sqlite.CategoryTotal) CategoryTotal {
	return CategoryTotal{
		Category: row.Category,
		Total:    FromSeconds(row.TotalSeconds),
	}
}

// FromDatabaseSlice converts database aggregation rows
func (m *CategoryTotalMapper) FromDatabaseSlice(rows []*sqlite.CategoryTotal) []CategoryTotal {
	totals := make([]CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = m.FromDatabase(*row)
	}
	return totals
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to repository QueryOptions
func (m *SearchOptionsMapper) ToDatabase(opts SearchOptions) sqlite.QueryOptions {
	dbOpts := sqlite.QueryOptions{
		Cutoff:   opts.Cutoff,
		Category: opts.Category,
		Name:     opts.Name,
	}
	if status := opts.Scope.Status(); status != nil {
		s := status.String()
		dbOpts.Status = &s
	}
	return dbOpts
}

// Mapper provides a unified interface for all mapping operations
type Mapper struct {
	Task          *TaskMapper
	CategoryTotal *CategoryTotalMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		CategoryTotal: NewCategoryTotalMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
