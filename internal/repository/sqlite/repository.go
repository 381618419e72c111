package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"metronome/internal/errors"
	"metronome/internal/logging"
	"metronome/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const taskColumns = `id, name, start_time, end_time, total_time, category, status`

// QueryOptions restricts QueryTasks. A nil pointer means no restriction on that field.
// Only rows with start_time strictly greater than Cutoff are returned
type QueryOptions struct {
	Status   *string
	Cutoff   int64
	Category *string
	Name     *string
}

// Repository is the task store contract the services depend on
type Repository interface {
	// Schema
	CreateSchemaIfAbsent(ctx context.Context) error

	// Create operations
	CreateTask(ctx context.Context, task *TaskRow) error

	// Read operations
	GetTask(ctx context.Context, id int64) (*TaskRow, error)
	FindActiveTaskByName(ctx context.Context, name string) (*TaskRow, error)
	FindMostRecentActive(ctx context.Context) (*TaskRow, error)
	QueryTasks(ctx context.Context, opts QueryOptions) ([]*TaskRow, error)
	SumByCategory(ctx context.Context, cutoff int64, category *string) ([]*CategoryTotal, error)

	// Update operations
	CompleteTask(ctx context.Context, id int64, endTime int64, totalTime int64) error
	CloseAllActive(ctx context.Context, endTime int64) (int64, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and brings its schema up to date
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps ":memory:" databases shared between statements
	// and serialises writers the way SQLite expects
	db.SetMaxOpenConns(1)

	repo := &SQLiteRepository{db: db}
	if err := repo.CreateSchemaIfAbsent(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	logging.Debugf("opened task store at %s\n", dbPath)
	return repo, nil
}

// CreateSchemaIfAbsent runs any pending migrations. Calling it again is a no-op
func (r *SQLiteRepository) CreateSchemaIfAbsent(ctx context.Context) error {
	if err := migrations.RunMigrationsContext(ctx, r.db); err != nil {
		return errors.NewDatabaseError("run migrations", err)
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a new task row and sets its ID
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *TaskRow) error {
	query := `
	INSERT INTO tasks (name, start_time, end_time, total_time, category, status)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Name,
		task.StartTime,
		FormatInt64PtrForDB(task.EndTime),
		FormatInt64PtrForDB(task.TotalTime),
		task.Category,
		task.Status,
	)
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*TaskRow, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// FindActiveTaskByName returns the most recently started active task with the
// given name. Ties on start_time go to the highest id
func (r *SQLiteRepository) FindActiveTaskByName(ctx context.Context, name string) (*TaskRow, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE name = ? AND status = ?
	ORDER BY start_time DESC, id DESC
	LIMIT 1`

	return QuerySingle(ctx, r.db, query, ScanTask, "active task", name, name, StatusActive)
}

// FindMostRecentActive returns the active task with the greatest start_time
func (r *SQLiteRepository) FindMostRecentActive(ctx context.Context) (*TaskRow, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE status = ?
	ORDER BY start_time DESC, id DESC
	LIMIT 1`

	return QuerySingle(ctx, r.db, query, ScanTask, "active task", "most recent", StatusActive)
}

// QueryTasks returns the tasks matching opts ordered by id
func (r *SQLiteRepository) QueryTasks(ctx context.Context, opts QueryOptions) ([]*TaskRow, error) {
	conditions := []string{"start_time > ?"}
	args := []interface{}{opts.Cutoff}

	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *opts.Category)
	}
	if opts.Name != nil {
		conditions = append(conditions, "name = ?")
		args = append(args, *opts.Name)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// SumByCategory totals total_time of complete tasks started after cutoff,
// grouped by category, largest first. Ties are ordered by category name
func (r *SQLiteRepository) SumByCategory(ctx context.Context, cutoff int64, category *string) ([]*CategoryTotal, error) {
	conditions := []string{"status = ?", "start_time > ?"}
	args := []interface{}{StatusComplete, cutoff}

	if category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *category)
	}

	query := `
	SELECT category, SUM(total_time)
	FROM tasks
	WHERE ` + strings.Join(conditions, " AND ") + `
	GROUP BY category
	ORDER BY SUM(total_time) DESC, category ASC`

	return QueryMultiple(ctx, r.db, query, ScanCategoryTotals, "category totals", args...)
}

// CompleteTask marks an active task complete. Tasks that are already complete
// are left untouched and reported as not found
func (r *SQLiteRepository) CompleteTask(ctx context.Context, id int64, endTime int64, totalTime int64) error {
	query := `
	UPDATE tasks
	SET end_time = ?, total_time = ?, status = ?
	WHERE id = ? AND status = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "active task", fmt.Sprintf("%d", id),
		endTime, totalTime, StatusComplete, id, StatusActive)
}

// CloseAllActive stamps every active task with endTime and then completes it,
// both inside one transaction, and returns how many tasks were active.
// Negative elapsed times are stored as zero
func (r *SQLiteRepository) CloseAllActive(ctx context.Context, endTime int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	closed, err := ExecuteCountingRows(ctx, tx, "close active tasks",
		`UPDATE tasks SET end_time = ? WHERE status = ?`, endTime, StatusActive)
	if err != nil {
		return 0, err
	}

	finalized, err := ExecuteCountingRows(ctx, tx, "finalize active tasks",
		`UPDATE tasks SET total_time = MAX(end_time - start_time, 0), status = ? WHERE status = ?`,
		StatusComplete, StatusActive)
	if err != nil {
		return 0, err
	}

	if finalized != closed {
		return 0, errors.NewDatabaseError("finalize active tasks",
			fmt.Errorf("closed %d tasks but finalized %d", closed, finalized))
	}

	if err := tx.Commit(); err != nil {
		return 0, HandleDatabaseError("commit transaction", err)
	}

	return closed, nil
}
