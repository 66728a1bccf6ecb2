package services

import (
	"context"
	"io"
	"time"

	"task-logger/internal/domain"
)

// TaskLogService handles the task log lifecycle
type TaskLogService interface {
	// Read operations
	ListTaskLogs(ctx context.Context) ([]domain.TaskLog, error)
	SearchTaskLogs(ctx context.Context, opts domain.SearchOptions) ([]domain.TaskLog, error)
	GetTaskLog(ctx context.Context, id int64) (*domain.TaskLog, error)

	// Write operations. Update and delete report how many entries changed (0 or 1).
	CreateTaskLog(ctx context.Context, in domain.TaskLogInput) (*domain.TaskLog, error)
	UpdateTaskLog(ctx context.Context, id int64, in domain.TaskLogInput) (int64, error)
	DeleteTaskLog(ctx context.Context, id int64) (int64, error)

	// Registered users accepted in the user field
	ListUsers(ctx context.Context) ([]string, error)
}

// ReportingService handles aggregation over all task logs
type ReportingService interface {
	Summarize(ctx context.Context) ([]*domain.GroupSummary, error)
	Totals(ctx context.Context) (domain.Totals, error)

	// Invalidate discards cached summaries after a write
	Invalidate(ctx context.Context)
}

// ExportService renders task logs in tabular form
type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportFilename(now time.Time) string
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskLogService   TaskLogService
	ReportingService ReportingService
	ExportService    ExportService
}
