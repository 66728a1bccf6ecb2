package cli

import (
	"context"

	"task-logger/internal/server"
)

// ServeCommand runs the HTTP server until the context is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute blocks serving requests; cancellation triggers a graceful shutdown
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	srv := server.New(c.app.config, c.app.businessAPI, c.app.checks)
	return srv.Run(ctx)
}
