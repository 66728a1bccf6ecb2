package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"task-logger/internal/api"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	businessAPI api.BusinessAPI
	out         io.Writer
	errors      *ErrorHandler
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{businessAPI: app.businessAPI, out: app.out, errors: NewErrorHandler()}
}

// Execute prints one row per (team, status) group followed by the totals
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats, err := c.businessAPI.GetStatistics(ctx)
	if err != nil {
		return c.errors.Handle("summarize task logs", err)
	}

	if len(stats.Groups) == 0 {
		fmt.Fprintln(c.out, "No task logs found")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tSTATUS\tTASKS\tMINUTES\tTIME")
	for _, g := range stats.Groups {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			g.Team, g.Status, g.TotalTasks, g.TotalMinutes, formatDuration(g.TotalMinutes))
	}
	fmt.Fprintf(w, "TOTAL\t\t%d\t%d\t%s\n",
		stats.Totals.TotalTasks, stats.Totals.TotalMinutes, formatDuration(stats.Totals.TotalMinutes))
	return w.Flush()
}
