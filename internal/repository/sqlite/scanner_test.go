package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *sql.NullInt64:
			*v = ts.data[i].(sql.NullInt64)
		case *string:
			*v = ts.data[i].(string)
		}
	}

	return nil
}

// TestRows implements the Rows interface over a list of scanners
type TestRows struct {
	scanners []*TestScanner
	index    int
	err      error
}

func (tr *TestRows) Next() bool {
	if tr.index >= len(tr.scanners) {
		return false
	}
	tr.index++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.scanners[tr.index-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *TaskRow
		expectError bool
	}{
		{
			name: "complete task",
			scanner: &TestScanner{
				data: []interface{}{
					int64(1), "write docs", int64(1000),
					sql.NullInt64{Int64: 1300, Valid: true},
					sql.NullInt64{Int64: 300, Valid: true},
					"Work", StatusComplete,
				},
			},
			expected: &TaskRow{
				ID: 1, Name: "write docs", StartTime: 1000,
				EndTime: int64Ptr(1300), TotalTime: int64Ptr(300),
				Category: "Work", Status: StatusComplete,
			},
		},
		{
			name: "active task has nil end and total",
			scanner: &TestScanner{
				data: []interface{}{
					int64(2), "review", int64(2000),
					sql.NullInt64{}, sql.NullInt64{},
					"Misc", StatusActive,
				},
			},
			expected: &TaskRow{
				ID: 2, Name: "review", StartTime: 2000,
				Category: "Misc", Status: StatusActive,
			},
		},
		{
			name:        "scan error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTasks(t *testing.T) {
	rows := &TestRows{
		scanners: []*TestScanner{
			{data: []interface{}{int64(1), "a", int64(10), sql.NullInt64{}, sql.NullInt64{}, "Misc", StatusActive}},
			{data: []interface{}{int64(2), "b", int64(20), sql.NullInt64{Int64: 30, Valid: true}, sql.NullInt64{Int64: 10, Valid: true}, "Misc", StatusComplete}},
		},
	}

	tasks, err := ScanTasks(rows)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Name)
	assert.Nil(t, tasks[0].EndTime)
	assert.Equal(t, int64(10), *tasks[1].TotalTime)
}

func TestScanTasks_Errors(t *testing.T) {
	t.Run("row scan error", func(t *testing.T) {
		rows := &TestRows{scanners: []*TestScanner{{err: errors.New("bad row")}}}
		_, err := ScanTasks(rows)
		assert.EqualError(t, err, "bad row")
	})

	t.Run("iteration error", func(t *testing.T) {
		rows := &TestRows{err: errors.New("cursor failed")}
		_, err := ScanTasks(rows)
		assert.EqualError(t, err, "cursor failed")
	})

	t.Run("empty result", func(t *testing.T) {
		tasks, err := ScanTasks(&TestRows{})
		assert.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestScanCategoryTotals(t *testing.T) {
	rows := &TestRows{
		scanners: []*TestScanner{
			{data: []interface{}{"A", sql.NullInt64{Int64: 2100, Valid: true}}},
			{data: []interface{}{"B", sql.NullInt64{}}},
		},
	}

	totals, err := ScanCategoryTotals(rows)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, &CategoryTotal{Category: "A", TotalSeconds: 2100}, totals[0])
	assert.Equal(t, &CategoryTotal{Category: "B", TotalSeconds: 0}, totals[1])
}
