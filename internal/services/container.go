package services

import (
	"task-logger/internal/cache"
	"task-logger/internal/config"
	"task-logger/internal/repository/sqlite"
	"task-logger/internal/validation"
)

// NewServiceContainer wires every service around one repository and one cache
func NewServiceContainer(repo sqlite.Repository, c cache.Cache, cfg *config.Config) *ServiceContainer {
	reporting := NewReportingService(repo, c, cfg.Cache.TTL)
	taskLogs := NewTaskLogService(repo, validation.NewTaskLogValidatorWithConfig(cfg), reporting)

	return &ServiceContainer{
		TaskLogService:   taskLogs,
		ReportingService: reporting,
		ExportService:    NewExportService(taskLogs),
	}
}
