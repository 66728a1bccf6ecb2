package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"task-logger/internal/api"
	"task-logger/internal/domain"
	"task-logger/internal/errors"
)

// GetCommand handles the get command
type GetCommand struct {
	api    api.API
	out    io.Writer
	errors *ErrorHandler
}

// NewGetCommand creates a new get command handler
func NewGetCommand(app *App) *GetCommand {
	return &GetCommand{api: app.businessAPI, out: app.out, errors: NewErrorHandler()}
}

// Execute prints the entry whose id is the single argument
func (c *GetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: tasklogger get <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	log, err := c.api.GetTaskLog(ctx, id)
	if err != nil {
		return c.errors.Handle("get task log", err)
	}
	return c.printTaskLog(log)
}

func (c *GetCommand) printTaskLog(l *domain.TaskLog) error {
	w := tabwriter.NewWriter(c.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", l.ID)
	fmt.Fprintf(w, "Task:\t%s\n", l.Task)
	fmt.Fprintf(w, "Client:\t%s\n", l.Client)
	fmt.Fprintf(w, "Team:\t%s\n", l.Team)
	fmt.Fprintf(w, "User:\t%s\n", l.User)
	fmt.Fprintf(w, "Time:\t%s\n", formatDuration(l.TotalMinutes()))
	fmt.Fprintf(w, "Start date:\t%s\n", l.StartDate)
	fmt.Fprintf(w, "End date:\t%s\n", l.EndDate)
	fmt.Fprintf(w, "Status:\t%s\n", l.Status)
	fmt.Fprintf(w, "Created:\t%s\n", l.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:\t%s\n", l.UpdatedAt.Format(time.RFC3339))
	return w.Flush()
}

// parseID accepts only positive decimal ids
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", s, "must be a positive integer")
	}
	return id, nil
}
