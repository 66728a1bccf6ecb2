package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"task-logger/internal/errors"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintFields maps fragments of SQLite constraint messages to the field they guard.
// Named CHECK constraints are declared in migrations/000001_create_task_logs.up.sql.
var constraintFields = []struct {
	fragment string
	field    string
}{
	{"chk_task", "task"},
	{"chk_client", "client"},
	{"chk_team", "team"},
	{"chk_hours", "hours"},
	{"chk_minutes", "minutes"},
	{"chk_start_date", "start_date"},
	{"chk_end_date", "end_date"},
	{"chk_status", "status"},
	{"chk_timestamps", "updated_at"},
	{"FOREIGN KEY", "user"},
	{"created_at is immutable", "created_at"},
	{"id is immutable", "id"},
	{"NOT NULL", "required"},
}

// IsConstraintViolation reports whether err is a SQLite constraint failure
func IsConstraintViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// constraintField names the field a constraint failure refers to, or "" if unknown
func constraintField(err error) string {
	msg := err.Error()
	for _, cf := range constraintFields {
		if strings.Contains(msg, cf.fragment) {
			return cf.field
		}
	}
	return ""
}

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	if IsConstraintViolation(err) {
		field := constraintField(err)
		appErr := errors.NewConstraintError("storage constraint violated", err)
		if field != "" {
			appErr.Message = field + " violates a storage constraint"
			appErr.WithContext("field", field)
		}
		return appErr.WithContext("operation", operation)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithChanges executes a query and returns the number of rows it changed.
// Zero changes is not an error; callers decide what it means.
func ExecuteWithChanges(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return rows, nil
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
