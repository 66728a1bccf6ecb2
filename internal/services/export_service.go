package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportColumns is the fixed CSV header
var ExportColumns = []string{
	"id", "task", "client", "team", "user", "hours", "minutes",
	"start_date", "end_date", "status", "created_at", "updated_at",
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	taskLogs TaskLogService
}

// NewExportService creates a new ExportService reading through the task log service
func NewExportService(taskLogs TaskLogService) ExportService {
	return &exportServiceImpl{taskLogs: taskLogs}
}

// ExportCSV writes every task log in list order, preceded by a header row
func (e *exportServiceImpl) ExportCSV(ctx context.Context, w io.Writer) error {
	logs, err := e.taskLogs.ListTaskLogs(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportColumns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, log := range logs {
		record := []string{
			strconv.FormatInt(log.ID, 10),
			log.Task,
			log.Client,
			string(log.Team),
			log.User,
			strconv.Itoa(log.Hours),
			strconv.Itoa(log.Minutes),
			log.StartDate,
			log.EndDate,
			string(log.Status),
			log.CreatedAt.UTC().Format(time.RFC3339),
			log.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", log.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ExportFilename names an export file after the day it was taken
func (e *exportServiceImpl) ExportFilename(now time.Time) string {
	return "task-logs-" + now.Format("2006-01-02") + ".csv"
}
