package sqlite

// Status values as stored in the tasks.status column
const (
	StatusActive   = "Active"
	StatusComplete = "Complete"
)

// TaskRow represents one row of the tasks table. EndTime and TotalTime are
// nil while the task is active; times are Unix seconds
type TaskRow struct {
	ID        int64
	Name      string
	StartTime int64
	EndTime   *int64
	TotalTime *int64
	Category  string
	Status    string
}

// CategoryTotal is one row of a per-category aggregation
type CategoryTotal struct {
	Category     string
	TotalSeconds int64
}
