package services

import (
	"context"

	"task-logger/internal/domain"
	"task-logger/internal/logging"
	"task-logger/internal/repository/sqlite"
	"task-logger/internal/validation"
)

// taskLogServiceImpl implements the TaskLogService interface
type taskLogServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.TaskLogValidator
	reporting ReportingService
	mapper    *domain.Mapper
}

// NewTaskLogService creates a new TaskLogService instance.
// Successful writes invalidate the reporting service's cached summaries.
func NewTaskLogService(repo sqlite.Repository, validator *validation.TaskLogValidator, reporting ReportingService) TaskLogService {
	return &taskLogServiceImpl{
		repo:      repo,
		validator: validator,
		reporting: reporting,
		mapper:    domain.NewMapper(),
	}
}

// ListTaskLogs returns every task log, most recently created first
func (s *taskLogServiceImpl) ListTaskLogs(ctx context.Context) ([]domain.TaskLog, error) {
	dbLogs, err := s.repo.ListTaskLogs(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.TaskLog.FromDatabaseSlice(dbLogs), nil
}

// SearchTaskLogs returns the task logs matching every filter set in opts
func (s *taskLogServiceImpl) SearchTaskLogs(ctx context.Context, opts domain.SearchOptions) ([]domain.TaskLog, error) {
	if err := s.validator.ValidateSearchOptions(opts); err != nil {
		return nil, err
	}

	dbLogs, err := s.repo.SearchTaskLogs(ctx, s.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}
	return s.mapper.TaskLog.FromDatabaseSlice(dbLogs), nil
}

// GetTaskLog retrieves a task log by its ID
func (s *taskLogServiceImpl) GetTaskLog(ctx context.Context, id int64) (*domain.TaskLog, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	dbLog, err := s.repo.GetTaskLog(ctx, id)
	if err != nil {
		return nil, err
	}

	log := s.mapper.TaskLog.FromDatabase(*dbLog)
	return &log, nil
}

// CreateTaskLog validates the input and stores it as a new task log
func (s *taskLogServiceImpl) CreateTaskLog(ctx context.Context, in domain.TaskLogInput) (*domain.TaskLog, error) {
	fields, err := s.validator.ValidateInput(in)
	if err != nil {
		logRejected("create", err)
		return nil, err
	}

	dbLog := s.mapper.TaskLog.ToDatabase(domain.NewTaskLog(fields))
	if err := s.repo.CreateTaskLog(ctx, &dbLog); err != nil {
		return nil, err
	}
	logging.Debugf("created task log %d", dbLog.ID)

	s.reporting.Invalidate(ctx)

	log := s.mapper.TaskLog.FromDatabase(dbLog)
	return &log, nil
}

// UpdateTaskLog replaces all nine fields of an existing task log.
// A missing id is reported as zero changes.
func (s *taskLogServiceImpl) UpdateTaskLog(ctx context.Context, id int64, in domain.TaskLogInput) (int64, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return 0, err
	}
	fields, err := s.validator.ValidateInput(in)
	if err != nil {
		logRejected("update", err)
		return 0, err
	}

	log := domain.NewTaskLog(fields)
	log.ID = id
	dbLog := s.mapper.TaskLog.ToDatabase(log)

	changes, err := s.repo.UpdateTaskLog(ctx, &dbLog)
	if err != nil {
		return 0, err
	}
	logging.Debugf("updated task log %d: %d change(s)", id, changes)

	if changes > 0 {
		s.reporting.Invalidate(ctx)
	}
	return changes, nil
}

// DeleteTaskLog permanently removes a task log
func (s *taskLogServiceImpl) DeleteTaskLog(ctx context.Context, id int64) (int64, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return 0, err
	}

	changes, err := s.repo.DeleteTaskLog(ctx, id)
	if err != nil {
		return 0, err
	}
	logging.Debugf("deleted task log %d: %d change(s)", id, changes)

	if changes > 0 {
		s.reporting.Invalidate(ctx)
	}
	return changes, nil
}

// ListUsers returns the registered user names in sorted order
func (s *taskLogServiceImpl) ListUsers(ctx context.Context) ([]string, error) {
	return s.repo.ListUsers(ctx)
}

func logRejected(operation string, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		logging.Debugf("rejected %s: fields=%v", operation, ve.Fields())
	}
}
