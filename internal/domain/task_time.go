package domain

import (
	"fmt"
	"time"
)

// TaskTime breaks a number of seconds into hours, minutes and seconds
type TaskTime struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
	Raw     int64 `json:"raw"`
}

// FromSeconds splits totalSeconds using truncating integer division.
// Lifecycle operations never produce negative totals; a negative input yields
// non-positive components
func FromSeconds(totalSeconds int64) TaskTime {
	remainder := totalSeconds % 3600
	return TaskTime{
		Hours:   totalSeconds / 3600,
		Minutes: remainder / 60,
		Seconds: remainder % 60,
		Raw:     totalSeconds,
	}
}

// FromDuration converts a time.Duration, dropping fractional seconds
func FromDuration(d time.Duration) TaskTime {
	return FromSeconds(int64(d / time.Second))
}

// String formats as "<h>h <m>m <s>s"
func (t TaskTime) String() string {
	return fmt.Sprintf("%dh %dm %ds", t.Hours, t.Minutes, t.Seconds)
}

// Duration converts back to a time.Duration
func (t TaskTime) Duration() time.Duration {
	return time.Duration(t.Raw) * time.Second
}
