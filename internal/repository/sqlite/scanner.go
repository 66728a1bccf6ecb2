package sqlite

import (
	"fmt"
	"math"
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

// taskLogColumns is the column list every task log query selects, in scan order
const taskLogColumns = `id, task, client, team, user, hours, minutes, start_date, end_date, status, created_at, updated_at`

// ScanTaskLog scans a single task log from a database row
func ScanTaskLog(scanner Scanner) (*TaskLog, error) {
	entry := &TaskLog{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&entry.ID,
		&entry.Task,
		&entry.Client,
		&entry.Team,
		&entry.User,
		&entry.Hours,
		&entry.Minutes,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of task log %d: %w", entry.ID, err)
	}
	if entry.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at of task log %d: %w", entry.ID, err)
	}

	return entry, nil
}

// ScanTaskLogs scans multiple task logs from database rows.
// An empty result is an empty slice, never nil.
func ScanTaskLogs(rows Rows) ([]*TaskLog, error) {
	entries := make([]*TaskLog, 0)
	for rows.Next() {
		entry, err := ScanTaskLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanSummaries folds per-entry rows, ordered by team and status, into one
// aggregate per pair. Minute totals saturate at math.MaxInt64.
func ScanSummaries(rows Rows) ([]*TaskLogSummary, error) {
	summaries := make([]*TaskLogSummary, 0)
	var current *TaskLogSummary
	for rows.Next() {
		var team, status string
		var minutes int64
		if err := rows.Scan(&team, &status, &minutes); err != nil {
			return nil, err
		}
		if current == nil || current.Team != team || current.Status != status {
			current = &TaskLogSummary{Team: team, Status: status}
			summaries = append(summaries, current)
		}
		current.TotalTasks++
		current.TotalMinutes = addMinutes(current.TotalMinutes, minutes)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func addMinutes(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// ScanUserName scans a registered user name
func ScanUserName(scanner Scanner) (*string, error) {
	var name string
	if err := scanner.Scan(&name); err != nil {
		return nil, err
	}
	return &name, nil
}

// ScanUserNames scans every registered user name
func ScanUserNames(rows Rows) ([]*string, error) {
	names := make([]*string, 0)
	for rows.Next() {
		name, err := ScanUserName(rows)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
