package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"metronome/internal/api"
	"metronome/internal/config"
	"metronome/internal/domain"
	"metronome/internal/errors"
	"metronome/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// storeAnnotation marks commands that need the task store opened
const storeAnnotation = "metronome/store"

// BackendFactory opens the task store described by cfg. It returns the
// business API over the store and a function that releases it
type BackendFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory BackendFactory
	app     *App
	release func() error
	out     io.Writer
	errOut  io.Writer
}

// NewRootCommand creates the root cobra command with global flags.
// Configuration is loaded and the store opened only once a subcommand that
// needs them runs
func NewRootCommand(loader *config.Loader, factory BackendFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "metronome",
		Short: "Track the time you spend on tasks",
		Long: `Metronome records named, categorised tasks with a start and an end time
and reports the time spent on them.

EXAMPLES:
  metronome start write report -c work     # Start a task in the "work" category
  metronome end write report               # End the latest active "write report"
  metronome end --last                     # End the most recently started task
  metronome end --all                      # End every active task
  metronome list -a                        # List active tasks
  metronome list -c -f week                # List tasks completed in the last week
  metronome total -f month                 # Time per category over the last 30 days
  metronome export --format json > out.json

FILTERS:
  ` + strings.Join(domain.FilterAliases(), ", ") + `

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file: ~/.metronome/config.yaml, or the path in METRONOME_CONFIG

  METRONOME_DB_DIR                         Database directory (default: ~/.metronome)
  METRONOME_DB_FILENAME                    Database filename (default: tasks.db)
  METRONOME_TIME_DISPLAY_FORMAT            Go time layout used for display
  METRONOME_DEFAULT_CATEGORY               Category of tasks started without one (default: Misc)
  METRONOME_DISPLAY_TABLE_STYLE            ` + strings.Join(config.TableStyles, ", ") + `
  METRONOME_DISPLAY_RELATIVE               Show start times as "3 hours ago"
  METRONOME_APP_TIMEOUT                    Per-command timeout, 0 for none (default: 0)
  METRONOME_APP_VERBOSE                    Enable debug output on stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, err.Error())
	})

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetOutput redirects the output of every command
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// SetArgs sets the arguments parsed by Execute instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases the task store on every path
func (r *RootCommand) Execute() (err error) {
	defer func() {
		if r.release == nil {
			return
		}
		if closeErr := r.release(); closeErr != nil && err == nil {
			err = NewErrorHandler().Handle("close task store", closeErr)
		}
		r.release = nil
	}()
	return r.cmd.ExecuteContext(context.Background())
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides METRONOME_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides METRONOME_DB_FILENAME)")
	flags.String("time-format", "", "Time display layout (overrides METRONOME_TIME_DISPLAY_FORMAT)")
	flags.String("default-category", "", "Category for tasks started without one (overrides METRONOME_DEFAULT_CATEGORY)")
	flags.String("table-style", "", "Table border style (overrides METRONOME_DISPLAY_TABLE_STYLE)")
	flags.Bool("verbose", false, "Enable debug output (overrides METRONOME_APP_VERBOSE)")
}

// setup loads configuration with flag overrides and opens the task store
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if _, ok := cmd.Annotations[storeAnnotation]; !ok {
		return nil
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd.Flags()))
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "invalid configuration: "+err.Error())
	}
	logging.SetVerbose(cfg.Application.Verbose)
	logging.Debugf("using task store %s\n", cfg.GetDatabasePath())

	businessAPI, release, err := r.factory(cfg)
	if err != nil {
		return NewErrorHandler().Handle("open task store", err)
	}
	r.release = release
	r.app = NewAppWithConfig(businessAPI, cfg).WithOutput(r.out, r.errOut)
	return nil
}

// overridesFromFlags collects the persistent flags that were set explicitly
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{
		DBDir:           stringFlag(flags, "db-dir"),
		DBFilename:      stringFlag(flags, "db-filename"),
		TimeFormat:      stringFlag(flags, "time-format"),
		DefaultCategory: stringFlag(flags, "default-category"),
		TableStyle:      stringFlag(flags, "table-style"),
	}
	if flags.Changed("verbose") {
		if verbose, err := flags.GetBool("verbose"); err == nil {
			overrides.Verbose = &verbose
		}
	}
	return overrides
}

// stringFlag returns the flag's value when it was set, otherwise nil
func stringFlag(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

// noArgs rejects positional arguments with an invalid input error
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("arguments", strings.Join(args, " "),
			"unexpected arguments for "+cmd.CommandPath())
	}
	return nil
}

// commandContext bounds a command by the configured timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := r.app.config.Application.Timeout; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	needsStore := map[string]string{storeAnnotation: "true"}

	// Start command
	var startOpts StartOptions
	startCmd := &cobra.Command{
		Use:         "start <task name>",
		Short:       "Start a new task",
		Long:        "Start tracking time for a new task. Several tasks may be active at once, even with the same name.",
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewStartCommand(r.app).Execute(ctx, args, startOpts)
		},
	}
	startCmd.Flags().StringVarP(&startOpts.Category, "category", "c", "", "Category of the new task (default: the configured default category)")

	// End command
	var endOpts EndOptions
	endCmd := &cobra.Command{
		Use:   "end [<task name> | --last | --all]",
		Short: "End an active task",
		Long: `End an active task by name. When several active tasks share the name the
most recently started one is ended.`,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewEndCommand(r.app).Execute(ctx, args, endOpts)
		},
	}
	endCmd.Flags().BoolVarP(&endOpts.Last, "last", "l", false, "End the most recently started active task")
	endCmd.Flags().BoolVar(&endOpts.All, "all", false, "End every active task")

	// List command
	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:         "list",
		Short:       "List tasks",
		Long:        "List tasks, optionally restricted by status, start time window and category.",
		Args:        noArgs,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			listOpts.Category = stringFlag(cmd.Flags(), "category")
			return NewListCommand(r.app).Execute(ctx, listOpts)
		},
	}
	listCmd.Flags().BoolVarP(&listOpts.Active, "active", "a", false, "List active tasks only")
	listCmd.Flags().BoolVarP(&listOpts.Complete, "complete", "c", false, "List complete tasks only")
	listCmd.Flags().BoolVar(&listOpts.All, "all", false, "List all tasks (default)")
	listCmd.Flags().StringVarP(&listOpts.Filter, "filter", "f", "", "Only tasks started within this window")
	listCmd.Flags().String("category", "", "Only tasks in this category")

	// Total command
	var totalOpts TotalOptions
	totalCmd := &cobra.Command{
		Use:         "total",
		Short:       "Sum the time spent per category",
		Long:        "Sum the recorded time of complete tasks per category, largest first.",
		Args:        noArgs,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			totalOpts.Category = stringFlag(cmd.Flags(), "category")
			return NewTotalCommand(r.app).Execute(ctx, totalOpts)
		},
	}
	totalCmd.Flags().StringVarP(&totalOpts.Filter, "filter", "f", "", "Only tasks started within this window")
	totalCmd.Flags().StringP("category", "c", "", "Only this category")

	// Current command
	currentCmd := &cobra.Command{
		Use:         "current",
		Short:       "Show active tasks and how long they have been running",
		Args:        noArgs,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewCurrentCommand(r.app).Execute(ctx)
		},
	}

	// Export command
	var exportOpts ExportOptions
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV or JSON",
		Long: `Write task records to stdout.

Examples:
  metronome export > tasks.csv
  metronome export --format json -f quarter --complete`,
		Args:        noArgs,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewExportCommand(r.app).Execute(ctx, exportOpts)
		},
	}
	exportCmd.Flags().StringVar(&exportOpts.Format, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOpts.Filter, "filter", "f", "", "Only tasks started within this window")
	exportCmd.Flags().BoolVarP(&exportOpts.Active, "active", "a", false, "Export active tasks only")
	exportCmd.Flags().BoolVarP(&exportOpts.Complete, "complete", "c", false, "Export complete tasks only")

	r.cmd.AddCommand(
		startCmd,
		endCmd,
		listCmd,
		totalCmd,
		currentCmd,
		exportCmd,
	)
}
