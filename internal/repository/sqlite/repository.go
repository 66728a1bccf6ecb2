package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"task-logger/internal/errors"
	"task-logger/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// InMemoryPath opens a private in-memory database
const InMemoryPath = ":memory:"

// SearchOptions contains all possible search parameters.
// From/To select entries whose [start_date, end_date] overlaps the range.
type SearchOptions struct {
	User   *string
	Team   *string
	Status *string
	Client *string
	From   *string
	To     *string
}

// Repository defines the interface for database operations
type Repository interface {
	// Create operations
	CreateTaskLog(ctx context.Context, entry *TaskLog) error

	// Read operations
	GetTaskLog(ctx context.Context, id int64) (*TaskLog, error)
	ListTaskLogs(ctx context.Context) ([]*TaskLog, error)
	SearchTaskLogs(ctx context.Context, opts SearchOptions) ([]*TaskLog, error)
	SummarizeTaskLogs(ctx context.Context) ([]*TaskLogSummary, error)

	// Update operations
	UpdateTaskLog(ctx context.Context, entry *TaskLog) (int64, error)

	// Delete operations
	DeleteTaskLog(ctx context.Context, id int64) (int64, error)

	// Registered users
	RegisterUsers(ctx context.Context, names []string) error
	ListUsers(ctx context.Context) ([]string, error)

	// Utility
	Ping(ctx context.Context) error
	Close() error
}

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithClock replaces the clock used for created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		r.now = now
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository instance and brings its schema up to date
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", buildDSN(dbPath))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == InMemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	repo := &SQLiteRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(repo)
	}
	return repo, nil
}

// buildDSN enables foreign keys and a busy timeout on every pooled connection
func buildDSN(dbPath string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath == InMemoryPath {
		return "file::memory:?" + pragmas
	}
	return "file:" + dbPath + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database is reachable
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// timestamp returns the current time exactly as it will read back from the database
func (r *SQLiteRepository) timestamp() (time.Time, error) {
	now, err := NormalizeTime(r.now())
	if err != nil {
		return time.Time{}, errors.NewDatabaseError("format timestamp", err)
	}
	return now, nil
}

// CreateTaskLog inserts a new task log and fills in its id and timestamps
func (r *SQLiteRepository) CreateTaskLog(ctx context.Context, entry *TaskLog) error {
	now, err := r.timestamp()
	if err != nil {
		return err
	}

	query := `
	INSERT INTO task_logs (task, client, team, user, hours, minutes, start_date, end_date, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ts := FormatTimeForDB(now)
	id, err := ExecuteWithLastInsertID(ctx, r.db, "insert task log", query,
		entry.Task, entry.Client, entry.Team, entry.User, entry.Hours, entry.Minutes,
		entry.StartDate, entry.EndDate, entry.Status, ts, ts)
	if err != nil {
		return err
	}

	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

// GetTaskLog retrieves a task log by ID
func (r *SQLiteRepository) GetTaskLog(ctx context.Context, id int64) (*TaskLog, error) {
	query := `SELECT ` + taskLogColumns + ` FROM task_logs WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTaskLog, "task log", strconv.FormatInt(id, 10), id)
}

// ListTaskLogs retrieves all task logs, most recently created first
func (r *SQLiteRepository) ListTaskLogs(ctx context.Context) ([]*TaskLog, error) {
	query := `SELECT ` + taskLogColumns + ` FROM task_logs ORDER BY created_at DESC, id DESC`
	return QueryMultiple(ctx, r.db, query, ScanTaskLogs, "task logs")
}

// UpdateTaskLog replaces all nine fields of an existing task log.
// It returns the number of rows changed; 0 means the id does not exist.
func (r *SQLiteRepository) UpdateTaskLog(ctx context.Context, entry *TaskLog) (int64, error) {
	now, err := r.timestamp()
	if err != nil {
		return 0, err
	}

	// MAX keeps updated_at monotonic even if the wall clock steps backwards.
	query := `
	UPDATE task_logs
	SET task = ?, client = ?, team = ?, user = ?, hours = ?, minutes = ?,
	    start_date = ?, end_date = ?, status = ?, updated_at = MAX(?, updated_at)
	WHERE id = ?`

	return ExecuteWithChanges(ctx, r.db, "update task log", query,
		entry.Task, entry.Client, entry.Team, entry.User, entry.Hours, entry.Minutes,
		entry.StartDate, entry.EndDate, entry.Status, FormatTimeForDB(now), entry.ID)
}

// DeleteTaskLog permanently removes a task log.
// It returns the number of rows changed; 0 means the id does not exist.
func (r *SQLiteRepository) DeleteTaskLog(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM task_logs WHERE id = ?`
	return ExecuteWithChanges(ctx, r.db, "delete task log", query, id)
}

// SummarizeTaskLogs counts task logs and sums their minutes per team and status.
// SUM() raises an error on integer overflow, so the totals are folded in Go.
func (r *SQLiteRepository) SummarizeTaskLogs(ctx context.Context) ([]*TaskLogSummary, error) {
	query := `
	SELECT team, status, hours * 60 + minutes
	FROM task_logs
	ORDER BY team ASC, status ASC`

	return QueryMultiple(ctx, r.db, query, ScanSummaries, "task log summary")
}

// SearchTaskLogs searches for task logs based on the provided options
func (r *SQLiteRepository) SearchTaskLogs(ctx context.Context, opts SearchOptions) ([]*TaskLog, error) {
	var conditions []string
	var args []interface{}

	if opts.User != nil {
		conditions = append(conditions, "user = ?")
		args = append(args, *opts.User)
	}
	if opts.Team != nil {
		conditions = append(conditions, "team = ?")
		args = append(args, *opts.Team)
	}
	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Client != nil && *opts.Client != "" {
		// instr avoids treating % and _ in the filter as LIKE wildcards
		conditions = append(conditions, "instr(lower(client), lower(?)) > 0")
		args = append(args, *opts.Client)
	}
	if opts.From != nil {
		conditions = append(conditions, "end_date >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		conditions = append(conditions, "start_date <= ?")
		args = append(args, *opts.To)
	}

	query := `SELECT ` + taskLogColumns + ` FROM task_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	return QueryMultiple(ctx, r.db, query, ScanTaskLogs, "task logs", args...)
}

// RegisterUsers adds names to the closed set of users task logs may reference.
// Names already registered are left untouched.
func (r *SQLiteRepository) RegisterUsers(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin register users", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO registered_users (name) VALUES (?)`)
	if err != nil {
		return HandleDatabaseError("prepare register users", err)
	}
	defer stmt.Close()

	for _, name := range names {
		if _, err := stmt.ExecContext(ctx, name); err != nil {
			return HandleDatabaseError("register user", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit register users", err)
	}
	return nil
}

// ListUsers returns the registered user names in alphabetical order
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM registered_users ORDER BY name ASC`
	names, err := QueryMultiple(ctx, r.db, query, ScanUserNames, "registered users")
	if err != nil {
		return nil, err
	}

	users := make([]string, len(names))
	for i, name := range names {
		users[i] = *name
	}
	return users, nil
}
