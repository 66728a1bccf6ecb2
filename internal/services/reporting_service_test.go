package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"task-logger/internal/cache"
	"task-logger/internal/domain"
	"task-logger/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportingService_Summarize(t *testing.T) {
	services, _ := setupServices(t, cache.NewNoopCache())
	ctx := context.Background()

	groups, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	inputs := []domain.TaskLogInput{
		inputWith(func(f *domain.TaskLogFields) { f.Status = domain.StatusCompleted; f.Hours = 1; f.Minutes = 30 }),
		inputWith(func(f *domain.TaskLogFields) { f.Status = domain.StatusCompleted; f.Hours = 0; f.Minutes = 45 }),
		inputWith(func(f *domain.TaskLogFields) { f.Team = domain.TeamImp; f.Status = domain.StatusYetToStart; f.Hours = 2; f.Minutes = 0 }),
	}
	for _, in := range inputs {
		_, err := services.TaskLogService.CreateTaskLog(ctx, in)
		require.NoError(t, err)
	}

	groups, err = services.ReportingService.Summarize(ctx)
	require.NoError(t, err)

	expected := []*domain.GroupSummary{
		{Team: domain.TeamBuild, Status: domain.StatusCompleted, TotalTasks: 2, TotalMinutes: 135},
		{Team: domain.TeamImp, Status: domain.StatusYetToStart, TotalTasks: 1, TotalMinutes: 120},
	}
	assert.Equal(t, expected, groups)

	totals, err := services.ReportingService.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Totals{TotalTasks: 3, TotalMinutes: 255}, totals)
}

func TestReportingService_CachesUntilWrite(t *testing.T) {
	c := newCountingCache()
	t.Cleanup(func() { c.Close() })
	services, _ := setupServices(t, c)
	ctx := context.Background()

	created, err := services.TaskLogService.CreateTaskLog(ctx, validInput())
	require.NoError(t, err)

	first, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, c.hitCount())

	second, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hitCount())
	assert.Equal(t, first, second)

	// Every kind of write makes the next summarize recompute
	_, err = services.TaskLogService.UpdateTaskLog(ctx, created.ID, inputWith(func(f *domain.TaskLogFields) { f.Hours = 3 }))
	require.NoError(t, err)

	afterUpdate, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hitCount())
	require.Len(t, afterUpdate, 1)
	assert.Equal(t, int64(210), afterUpdate[0].TotalMinutes)

	_, err = services.TaskLogService.DeleteTaskLog(ctx, created.ID)
	require.NoError(t, err)

	afterDelete, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Empty(t, afterDelete)
}

func TestReportingService_NoOpWriteKeepsCache(t *testing.T) {
	c := newCountingCache()
	t.Cleanup(func() { c.Close() })
	services, _ := setupServices(t, c)
	ctx := context.Background()

	_, err := services.TaskLogService.CreateTaskLog(ctx, validInput())
	require.NoError(t, err)
	_, err = services.ReportingService.Summarize(ctx)
	require.NoError(t, err)

	changes, err := services.TaskLogService.DeleteTaskLog(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changes)

	_, err = services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hitCount())
}

func TestReportingService_FallsBackWhenCacheFails(t *testing.T) {
	c := newCountingCache()
	t.Cleanup(func() { c.Close() })
	services, _ := setupServices(t, c)
	ctx := context.Background()

	c.fail()

	_, err := services.TaskLogService.CreateTaskLog(ctx, validInput())
	require.NoError(t, err, "a failing cache must not fail writes")

	groups, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(1), groups[0].TotalTasks)
}

func TestReportingService_MissedInvalidationBypassesCache(t *testing.T) {
	c := newCountingCache()
	t.Cleanup(func() { c.Close() })
	services, _ := setupServices(t, c)
	ctx := context.Background()

	_, err := services.TaskLogService.CreateTaskLog(ctx, validInput())
	require.NoError(t, err)
	cached, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, int64(1), cached[0].TotalTasks)

	// The write lands while the cache cannot record it
	c.fail()
	_, err = services.TaskLogService.CreateTaskLog(ctx, validInput())
	require.NoError(t, err)
	c.restore()

	groups, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(2), groups[0].TotalTasks)
	assert.Equal(t, 0, c.hitCount())

	// Once the generation has moved on, caching resumes
	again, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, groups, again)
	assert.Equal(t, 1, c.hitCount())
}

func TestReportingService_LargestHours(t *testing.T) {
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	services, _ := setupServices(t, c)
	ctx := context.Background()

	created, err := services.TaskLogService.CreateTaskLog(ctx, inputWith(func(f *domain.TaskLogFields) {
		f.Hours, f.Minutes = domain.MaxHours, 59
	}))
	require.NoError(t, err)

	got, err := services.TaskLogService.GetTaskLog(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxHours, got.Hours)

	_, err = services.TaskLogService.CreateTaskLog(ctx, inputWith(func(f *domain.TaskLogFields) {
		f.Hours = domain.MaxHours + 1
	}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConstraint))

	groups, err := services.ReportingService.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(domain.MaxHours)*60+59, groups[0].TotalMinutes)

	_, err = services.TaskLogService.CreateTaskLog(ctx, inputWith(func(f *domain.TaskLogFields) {
		f.Hours = domain.MaxHours
	}))
	require.NoError(t, err)

	totals, err := services.ReportingService.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Totals{TotalTasks: 2, TotalMinutes: math.MaxInt64}, totals)

	var buf bytes.Buffer
	require.NoError(t, services.ExportService.ExportCSV(ctx, &buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, strconv.Itoa(domain.MaxHours), records[2][5])
	assert.Equal(t, "59", records[2][6])
}
