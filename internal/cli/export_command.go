package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"task-logger/internal/api"
	"task-logger/internal/logging"
)

// ExportCommand handles the export command
type ExportCommand struct {
	businessAPI api.BusinessAPI
	out         io.Writer
	errors      *ErrorHandler

	// Output names the file to write; empty means standard output
	Output string
	// Dated writes to task-logs-YYYY-MM-DD.csv in the working directory
	Dated bool
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{businessAPI: app.businessAPI, out: app.out, errors: NewErrorHandler()}
}

// Execute writes every task log as CSV
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	path := c.Output
	if path == "" && c.Dated {
		path = c.businessAPI.ExportFilename(timeNow())
	}

	if path == "" {
		return c.errors.Handle("export task logs", c.businessAPI.ExportCSV(ctx, c.out))
	}
	return c.exportToFile(ctx, path)
}

func (c *ExportCommand) exportToFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := c.businessAPI.ExportCSV(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return c.errors.Handle("export task logs", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debugf("exported task logs to %s", path)
	fmt.Fprintf(c.out, "Exported task logs to %s\n", path)
	return nil
}
