package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is used when a task is started without a category
const DefaultCategory = "Misc"

// Status is the lifecycle state of a task record
type Status int

const (
	StatusActive Status = iota
	StatusComplete
)

// String returns the stored spelling of the status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// ParseStatus parses a stored status value, ignoring case
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "complete", "completed":
		return StatusComplete, nil
	default:
		return 0, fmt.Errorf("unknown task status %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task is one start/end cycle of a named piece of work.
// EndTime and TotalSeconds are both nil exactly while the task is active
type Task struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	TotalSeconds *int64     `json:"total_time"`
	Status       Status     `json:"status"`
}

// NewTask creates an active task. An empty category falls back to DefaultCategory
func NewTask(name, category string, startTime time.Time) Task {
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		Name:      name,
		Category:  category,
		StartTime: startTime.Truncate(time.Second),
		Status:    StatusActive,
	}
}

// IsActive reports whether the task has not been ended yet
func (t Task) IsActive() bool {
	return t.Status == StatusActive
}

// IsComplete reports whether the task has been ended
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Complete returns a copy of the task ended at endTime. Elapsed time is
// measured in whole seconds; if endTime precedes StartTime the total is
// clamped to zero and clamped is true
func (t Task) Complete(endTime time.Time) (completed Task, clamped bool) {
	end := endTime.Truncate(time.Second)
	total := end.Unix() - t.StartTime.Unix()
	if total < 0 {
		total = 0
		clamped = true
	}
	t.EndTime = &end
	t.TotalSeconds = &total
	t.Status = StatusComplete
	return t, clamped
}

// Duration returns the recorded total time, or false while the task is active
func (t Task) Duration() (TaskTime, bool) {
	if t.TotalSeconds == nil {
		return TaskTime{}, false
	}
	return FromSeconds(*t.TotalSeconds), true
}

// String returns the task name for display purposes
func (t Task) String() string {
	return t.Name
}

// CategoryTotal is the summed complete time for one category
type CategoryTotal struct {
	Category string   `json:"category"`
	Total    TaskTime `json:"total"`
}
