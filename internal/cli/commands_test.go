package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-logger/internal/domain"
	"task-logger/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()

	t.Run("handles empty store", func(t *testing.T) {
		out.Reset()
		err := NewListCommand(app).Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "No task logs found\n", out.String())
	})

	seedTaskLogs(t, app)

	t.Run("lists newest first", func(t *testing.T) {
		out.Reset()
		err := NewListCommand(app).Execute(ctx, nil)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.Contains(t, lines[1], "Rollout")
		assert.Contains(t, lines[1], "2h 0m")
		assert.Contains(t, lines[2], "Fix bug")
		assert.Contains(t, lines[2], "1h 30m")
	})

	t.Run("applies filters", func(t *testing.T) {
		out.Reset()
		team := "Build"
		cmd := NewListCommand(app)
		cmd.Options.Team = &team

		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Contains(t, out.String(), "Fix bug")
		assert.NotContains(t, out.String(), "Rollout")
	})

	t.Run("rejects malformed filter", func(t *testing.T) {
		from := "01/05/2024"
		cmd := NewListCommand(app)
		cmd.Options.From = &from

		err := cmd.Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list task logs")
	})
}

func TestGetCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	seedTaskLogs(t, app)
	ctx := context.Background()

	t.Run("prints every field", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewGetCommand(app).Execute(ctx, []string{"1"}))

		text := out.String()
		assert.Contains(t, text, "Fix bug")
		assert.Contains(t, text, "Acme")
		assert.Contains(t, text, "Venkatakamesh")
		assert.Contains(t, text, "1h 30m")
		assert.Contains(t, text, "2024-05-01")
		assert.Contains(t, text, "completed")
	})

	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{name: "non numeric id", args: []string{"abc"}, exitCode: ExitBadRequest},
		{name: "zero id", args: []string{"0"}, exitCode: ExitBadRequest},
		{name: "missing argument", args: nil, exitCode: ExitBadRequest},
		{name: "unknown id", args: []string{"99"}, exitCode: ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGetCommand(app).Execute(ctx, tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, NewErrorHandler().ExitCode(err))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, s := range []string{"", "-1", "1.5", "9999999999999999999999"} {
		_, err := parseID(s)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), s)
	}
}

func TestStatsCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()

	require.NoError(t, NewStatsCommand(app).Execute(ctx, nil))
	assert.Equal(t, "No task logs found\n", out.String())

	seedTaskLogs(t, app)
	_, err := app.businessAPI.CreateTaskLog(ctx, taskInput("Review", "Build", "Alice", 0, 45, domain.StatusCompleted))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, NewStatsCommand(app).Execute(ctx, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Build", "completed", "2", "135", "2h", "15m"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Imp", "inprogress", "1", "120", "2h", "0m"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"TOTAL", "3", "255", "4h", "15m"}, strings.Fields(lines[3]))
}

func TestUsersCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)

	require.NoError(t, NewUsersCommand(app).Execute(context.Background(), nil))

	text := out.String()
	assert.Contains(t, text, "  Alice\n")
	assert.Contains(t, text, "  Venkatakamesh\n")
	assert.Contains(t, text, "  Build\n")
	assert.Contains(t, text, "  Imp\n")
	assert.Contains(t, text, "  yet to start\n")
	assert.Less(t, strings.Index(text, "Alice"), strings.Index(text, "Venkatakamesh"))
}

func TestExportCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	seedTaskLogs(t, app)
	ctx := context.Background()

	t.Run("writes to standard output", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewExportCommand(app).Execute(ctx, nil))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "id,task,client"))
		assert.True(t, strings.HasPrefix(lines[1], "2,Rollout,Acme,Imp,Alice,2,0,"))
	})

	t.Run("writes to a named file", func(t *testing.T) {
		out.Reset()
		path := filepath.Join(t.TempDir(), "logs.csv")
		cmd := NewExportCommand(app)
		cmd.Output = path

		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Contains(t, out.String(), "Exported task logs to "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 3, strings.Count(string(data), "\n"))
	})

	t.Run("writes to a dated file", func(t *testing.T) {
		origWd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(origWd) })
		origNow := timeNow
		timeNow = func() time.Time { return time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC) }
		t.Cleanup(func() { timeNow = origNow })

		cmd := NewExportCommand(app)
		cmd.Dated = true
		require.NoError(t, cmd.Execute(ctx, nil))

		_, err = os.Stat("task-logs-2024-05-03.csv")
		assert.NoError(t, err)
	})

	t.Run("fails on unwritable path", func(t *testing.T) {
		cmd := NewExportCommand(app)
		cmd.Output = filepath.Join(t.TempDir(), "missing", "logs.csv")

		err := cmd.Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create")
	})
}
