package api

import (
	"context"
	"io"

	"task-logger/internal/domain"
	"task-logger/internal/services"
)

// API is the function contract the HTTP and CLI collaborators call into.
type API interface {
	// Task log operations
	ListTaskLogs(ctx context.Context) ([]domain.TaskLog, error)
	SearchTaskLogs(ctx context.Context, opts domain.SearchOptions) ([]domain.TaskLog, error)
	GetTaskLog(ctx context.Context, id int64) (*domain.TaskLog, error)
	CreateTaskLog(ctx context.Context, in domain.TaskLogInput) (*domain.TaskLog, error)
	UpdateTaskLog(ctx context.Context, id int64, in domain.TaskLogInput) (int64, error)
	DeleteTaskLog(ctx context.Context, id int64) (int64, error)

	// Aggregation and export
	Summarize(ctx context.Context) ([]*domain.GroupSummary, error)
	ExportCSV(ctx context.Context, w io.Writer) error

	// Registered users
	ListUsers(ctx context.Context) ([]string, error)
}

type apiImpl struct {
	taskLogs  services.TaskLogService
	reporting services.ReportingService
	export    services.ExportService
}

// New creates a new API instance over the given services.
func New(container *services.ServiceContainer) API {
	return newAPI(container)
}

func newAPI(container *services.ServiceContainer) *apiImpl {
	return &apiImpl{
		taskLogs:  container.TaskLogService,
		reporting: container.ReportingService,
		export:    container.ExportService,
	}
}

func (a *apiImpl) ListTaskLogs(ctx context.Context) ([]domain.TaskLog, error) {
	return a.taskLogs.ListTaskLogs(ctx)
}

// SearchTaskLogs falls back to a plain list when no filter is set
func (a *apiImpl) SearchTaskLogs(ctx context.Context, opts domain.SearchOptions) ([]domain.TaskLog, error) {
	if opts.IsEmpty() {
		return a.taskLogs.ListTaskLogs(ctx)
	}
	return a.taskLogs.SearchTaskLogs(ctx, opts)
}

func (a *apiImpl) GetTaskLog(ctx context.Context, id int64) (*domain.TaskLog, error) {
	return a.taskLogs.GetTaskLog(ctx, id)
}

func (a *apiImpl) CreateTaskLog(ctx context.Context, in domain.TaskLogInput) (*domain.TaskLog, error) {
	return a.taskLogs.CreateTaskLog(ctx, in)
}

func (a *apiImpl) UpdateTaskLog(ctx context.Context, id int64, in domain.TaskLogInput) (int64, error) {
	return a.taskLogs.UpdateTaskLog(ctx, id, in)
}

func (a *apiImpl) DeleteTaskLog(ctx context.Context, id int64) (int64, error) {
	return a.taskLogs.DeleteTaskLog(ctx, id)
}

func (a *apiImpl) Summarize(ctx context.Context) ([]*domain.GroupSummary, error) {
	return a.reporting.Summarize(ctx)
}

func (a *apiImpl) ExportCSV(ctx context.Context, w io.Writer) error {
	return a.export.ExportCSV(ctx, w)
}

func (a *apiImpl) ListUsers(ctx context.Context) ([]string, error) {
	return a.taskLogs.ListUsers(ctx)
}
