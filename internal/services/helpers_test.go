package services

import (
	"context"
	"testing"
	"time"

	"metronome/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// fixedClock is a manually advanced clock
type fixedClock struct {
	now time.Time
}

func newFixedClock(unix int64) *fixedClock {
	return &fixedClock{now: time.Unix(unix, 0)}
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupServices(t *testing.T, clock *fixedClock) (*ServiceContainer, sqlite.Repository) {
	t.Helper()
	repo := setupRepo(t)
	return NewServiceContainer(repo, WithClock(clock.Now)), repo
}

// seedTask inserts a row directly so tests control start times
func seedTask(t *testing.T, repo sqlite.Repository, name, category string, start int64) *sqlite.TaskRow {
	t.Helper()
	row := &sqlite.TaskRow{Name: name, Category: category, StartTime: start, Status: sqlite.StatusActive}
	require.NoError(t, repo.CreateTask(context.Background(), row))
	return row
}

func seedCompleteTask(t *testing.T, repo sqlite.Repository, name, category string, start, total int64) *sqlite.TaskRow {
	t.Helper()
	row := seedTask(t, repo, name, category, start)
	require.NoError(t, repo.CompleteTask(context.Background(), row.ID, start+total, total))
	return row
}
