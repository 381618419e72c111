package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task row selected with taskColumns
func ScanTask(scanner Scanner) (*TaskRow, error) {
	task := &TaskRow{}
	var endTime, totalTime sql.NullInt64

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&task.StartTime,
		&endTime,
		&totalTime,
		&task.Category,
		&task.Status,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		task.EndTime = &endTime.Int64
	}
	if totalTime.Valid {
		task.TotalTime = &totalTime.Int64
	}

	return task, nil
}

// ScanTasks scans multiple task rows
func ScanTasks(rows Rows) ([]*TaskRow, error) {
	var tasks []*TaskRow
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanCategoryTotal scans a (category, sum) aggregation row
func ScanCategoryTotal(scanner Scanner) (*CategoryTotal, error) {
	total := &CategoryTotal{}
	var sum sql.NullInt64
	if err := scanner.Scan(&total.Category, &sum); err != nil {
		return nil, err
	}
	total.TotalSeconds = sum.Int64
	return total, nil
}

// ScanCategoryTotals scans multiple aggregation rows
func ScanCategoryTotals(rows Rows) ([]*CategoryTotal, error) {
	var totals []*CategoryTotal
	for rows.Next() {
		total, err := ScanCategoryTotal(rows)
		if err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}
