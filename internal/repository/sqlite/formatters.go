package sqlite

import (
	"time"
)

// FormatTimeForDB converts a time.Time to the Unix seconds stored in the database
func FormatTimeForDB(t time.Time) int64 {
	return t.Unix()
}

// FormatInt64PtrForDB returns the value behind p, or nil so the column is stored as NULL
func FormatInt64PtrForDB(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// ParseTimeFromDB converts stored Unix seconds back to a local time.Time
func ParseTimeFromDB(sec int64) time.Time {
	return time.Unix(sec, 0)
}
