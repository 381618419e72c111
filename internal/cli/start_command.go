package cli

import (
	"context"
	"fmt"
	"strings"

	"metronome/internal/errors"
)

// StartOptions holds the flags of the start command
type StartOptions struct {
	Category string
}

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command. All arguments form the task name
func (c *StartCommand) Execute(ctx context.Context, args []string, opts StartOptions) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("task", "", "usage: metronome start <task name> [--category <name>]")
	}
	name := strings.Join(args, " ")

	result, err := c.app.businessAPI.StartTask(ctx, name, opts.Category)
	if err != nil {
		return c.errorHandler.Handle("start task", err)
	}

	fmt.Fprintf(c.app.out, "Task %q started at %s!\n", result.Task.Name, c.app.formatTime(result.Task.StartTime))
	return nil
}
