package cli

import (
	"context"
	"fmt"
	"io"

	"task-logger/internal/api"
)

// UsersCommand handles the users command
type UsersCommand struct {
	businessAPI api.BusinessAPI
	out         io.Writer
	errors      *ErrorHandler
}

// NewUsersCommand creates a new users command handler
func NewUsersCommand(app *App) *UsersCommand {
	return &UsersCommand{businessAPI: app.businessAPI, out: app.out, errors: NewErrorHandler()}
}

// Execute prints the registered users and the accepted team and status values
func (c *UsersCommand) Execute(ctx context.Context, args []string) error {
	ref, err := c.businessAPI.GetReferenceData(ctx)
	if err != nil {
		return c.errors.Handle("list users", err)
	}

	fmt.Fprintln(c.out, "Users:")
	for _, u := range ref.Users {
		fmt.Fprintf(c.out, "  %s\n", u)
	}
	fmt.Fprintln(c.out, "Teams:")
	for _, t := range ref.Teams {
		fmt.Fprintf(c.out, "  %s\n", t)
	}
	fmt.Fprintln(c.out, "Statuses:")
	for _, s := range ref.Statuses {
		fmt.Fprintf(c.out, "  %s\n", s)
	}
	return nil
}
