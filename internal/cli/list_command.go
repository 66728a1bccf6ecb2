package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"task-logger/internal/api"
	"task-logger/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	api    api.API
	out    io.Writer
	errors *ErrorHandler

	// Filters set from command line flags; nil means unfiltered
	Options domain.SearchOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{api: app.businessAPI, out: app.out, errors: NewErrorHandler()}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	logs, err := c.api.SearchTaskLogs(ctx, c.Options)
	if err != nil {
		return c.errors.Handle("list task logs", err)
	}
	return c.printTaskLogs(logs)
}

// printTaskLogs prints one aligned row per entry, newest first as returned by the store
func (c *ListCommand) printTaskLogs(logs []domain.TaskLog) error {
	if len(logs) == 0 {
		fmt.Fprintln(c.out, "No task logs found")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tCLIENT\tTEAM\tUSER\tTIME\tSTART\tEND\tSTATUS")
	for _, l := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.Task, l.Client, l.Team, l.User,
			formatDuration(l.TotalMinutes()), l.StartDate, l.EndDate, l.Status)
	}
	return w.Flush()
}

// formatDuration renders minutes as "1h 30m"
func formatDuration(minutes int64) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
