package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"task-logger/internal/config"
	"task-logger/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	config  *config.Config
	app     *App
}

// NewRootCommand creates the root cobra command with global flags.
// The factory runs once flags are parsed, so --db-dir and friends reach the store.
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "tasklogger",
		Short: "Record and report time spent on client tasks",
		Long: `Task Logger keeps a log of work done for clients: who did which task, for
which team, over which dates, how long it took and where it stands.

FEATURES:
  • Serve a JSON API and the web client over HTTP
  • List and filter task logs by user, team, status, client and date range
  • Summarize logged time per team and status
  • Export every task log to CSV
  • Fully configurable via a YAML file, environment variables and command-line flags

EXAMPLES:
  tasklogger serve                              # Start the HTTP server on :3000
  tasklogger list --team Build --status completed
  tasklogger list --from 2024-01-01 --to 2024-01-31
  tasklogger get 42                             # Show a single task log
  tasklogger stats                              # Time per team and status
  tasklogger export --dated                     # Write task-logs-YYYY-MM-DD.csv
  tasklogger users                              # Registered users, teams and statuses

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  TL_CONFIG                                     YAML config file
  TL_DB_DIR                                     Database directory (default: ./data)
  TL_DB_FILENAME                                Database filename (default: tasklogger.db)
  TL_HOST, TL_PORT                              Listen address (default: :3000)
  TL_STATIC_DIR                                 Web client directory (default: public)
  TL_CACHE_BACKEND                              memory, redis or none (default: memory)
  TL_REDIS_ADDR                                 Redis address for the redis cache
  TL_USERS                                      Comma separated registered users
  TL_APP_TIMEOUT                                Per-command timeout (default: 60s)
  TL_APP_VERBOSE                                Enable verbose output (default: false)

GETTING HELP:
  tasklogger [command] --help                   # Get help for any specific command
  tasklogger completion bash                    # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases whatever the chosen command opened
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// setup loads the configuration and builds the App for the command about to run
func (r *RootCommand) setup(cmd *cobra.Command) error {
	// help and completion never touch the store
	if cmd.Parent() != r.cmd || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	cfg, err := config.NewLoader().LoadWithOverrides(r.getConfigFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	app, err := r.factory(cfg)
	if err != nil {
		return err
	}
	app.out = cmd.OutOrStdout()
	r.app = app
	return nil
}

func (r *RootCommand) close() {
	if r.app == nil {
		return
	}
	if err := r.app.Close(); err != nil {
		logging.Warnf("failed to close resources: %v", err)
	}
	r.app = nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides TL_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TL_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TL_DB_WRITE_TIMEOUT)")

	// Server configuration
	flags.String("host", "", "Listen host (overrides TL_HOST)")
	flags.Int("port", 0, "Listen port (overrides TL_PORT)")
	flags.String("static-dir", "", "Web client directory (overrides TL_STATIC_DIR)")

	// Cache configuration
	flags.String("cache", "", "Summary cache backend: memory, redis or none (overrides TL_CACHE_BACKEND)")

	// Application configuration
	flags.String("env", "", "Environment: development, testing or production (overrides TL_ENV)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Serve the JSON API under /api, the health and metrics endpoints and the
static web client. SIGINT or SIGTERM triggers a graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !r.config.IsDevelopment() {
				gin.SetMode(gin.ReleaseMode)
			}

			return NewServeCommand(r.app).Execute(ctx, args)
		},
	}

	// List command
	var filters struct {
		user, team, status, client, from, to string
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List task logs",
		Long: `List task logs, newest first, with optional filtering.

Date filters select entries whose start/end range overlaps [from, to].

Examples:
  tasklogger list                               # List all entries
  tasklogger list --user Alice                  # Entries logged by Alice
  tasklogger list --team Imp --status inprogress
  tasklogger list --from 2024-03-01             # Entries ending on or after 1 March`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			listHandler := NewListCommand(r.app)
			listHandler.Options.User = optional(filters.user)
			listHandler.Options.Team = optional(filters.team)
			listHandler.Options.Status = optional(filters.status)
			listHandler.Options.Client = optional(filters.client)
			listHandler.Options.From = optional(filters.from)
			listHandler.Options.To = optional(filters.to)
			return listHandler.Execute(ctx, args)
		},
	}
	listCmd.Flags().StringVar(&filters.user, "user", "", "Only entries logged by this user")
	listCmd.Flags().StringVar(&filters.team, "team", "", "Only entries for this team (Build or Imp)")
	listCmd.Flags().StringVar(&filters.status, "status", "", "Only entries with this status")
	listCmd.Flags().StringVar(&filters.client, "client", "", "Only entries for this client")
	listCmd.Flags().StringVar(&filters.from, "from", "", "Only entries ending on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&filters.to, "to", "", "Only entries starting on or before this date (YYYY-MM-DD)")

	// Get command
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single task log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewGetCommand(r.app).Execute(ctx, args)
		},
	}

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize logged time per team and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewStatsCommand(r.app).Execute(ctx, args)
		},
	}

	// Export command
	var exportOpts struct {
		output string
		dated  bool
	}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all task logs as CSV",
		Long: `Export every task log as CSV, newest first.

Examples:
  tasklogger export > logs.csv                  # Write to standard output
  tasklogger export -o logs.csv                 # Write to a named file
  tasklogger export --dated                     # Write to task-logs-YYYY-MM-DD.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			exportHandler := NewExportCommand(r.app)
			exportHandler.Output = exportOpts.output
			exportHandler.Dated = exportOpts.dated
			return exportHandler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().StringVarP(&exportOpts.output, "output", "o", "", "File to write instead of standard output")
	exportCmd.Flags().BoolVar(&exportOpts.dated, "dated", false, "Write to a file named after today's date")
	exportCmd.MarkFlagsMutuallyExclusive("output", "dated")

	// Users command
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users, teams and statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewUsersCommand(r.app).Execute(ctx, args)
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		serveCmd,
		listCmd,
		getCmd,
		statsCmd,
		exportCmd,
		usersCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags collects the global flags the user actually set
func (r *RootCommand) getConfigFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.ConfigFile = stringFlag("config")

	// Database configuration
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")

	// Server configuration
	overrides.Host = stringFlag("host")
	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		overrides.Port = &port
	}
	overrides.StaticDir = stringFlag("static-dir")

	// Cache configuration
	overrides.CacheBackend = stringFlag("cache")

	// Application configuration
	overrides.Environment = stringFlag("env")
	overrides.Timeout = durationFlag("app-timeout")
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}

// optional turns an unset string flag into a nil filter
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
