package cli

import (
	"context"
	"fmt"
	"strings"

	"metronome/internal/api"
	"metronome/internal/errors"
)

// EndOptions holds the flags of the end command. At most one may be set,
// and neither may be combined with a task name
type EndOptions struct {
	Last bool
	All  bool
}

// EndCommand handles the end command
type EndCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEndCommand creates a new end command handler
func NewEndCommand(app *App) *EndCommand {
	return &EndCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the end command
func (c *EndCommand) Execute(ctx context.Context, args []string, opts EndOptions) error {
	switch {
	case opts.Last && opts.All:
		return errors.NewInvalidInputError("flags", "--last --all", "--last and --all cannot be combined")
	case (opts.Last || opts.All) && len(args) > 0:
		return errors.NewInvalidInputError("task", strings.Join(args, " "), "a task name cannot be combined with --last or --all")
	case opts.All:
		return c.endAll(ctx)
	case opts.Last:
		result, err := c.app.businessAPI.EndLastTask(ctx)
		if err != nil {
			return c.errorHandler.Handle("end last task", err)
		}
		c.printEnded(result)
		return nil
	case len(args) == 0:
		return errors.NewInvalidInputError("task", "", "usage: metronome end <task name> | --last | --all")
	}

	result, err := c.app.businessAPI.EndTask(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("end task", err)
	}
	c.printEnded(result)
	return nil
}

func (c *EndCommand) endAll(ctx context.Context) error {
	result, err := c.app.businessAPI.EndAllActiveTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("end active tasks", err)
	}
	fmt.Fprintf(c.app.out, "Ended %d active tasks at %s.\n", result.Count, c.app.formatTime(result.EndTime))
	return nil
}

func (c *EndCommand) printEnded(result *api.EndResult) {
	if result.Clamped {
		fmt.Fprintf(c.app.errOut, "warning: %q ended before it started, no time was recorded\n", result.Task.Name)
	}
	fmt.Fprintf(c.app.out, "Task %q ended after %s\n", result.Task.Name, result.Duration)
}
