package cli

import (
	"context"
	"fmt"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints every active task with how long it has been running
func (c *CurrentCommand) Execute(ctx context.Context) error {
	result, err := c.app.businessAPI.ListActive(ctx, "")
	if err != nil {
		return c.errorHandler.Handle("show active tasks", err)
	}

	if result.Count() == 0 {
		fmt.Fprintln(c.app.out, "No active tasks")
		return nil
	}

	for _, task := range result.Tasks {
		fmt.Fprintf(c.app.out, "%s [%s] running for %s (started %s)\n",
			task.Name,
			task.Category,
			c.app.businessAPI.RunningTime(task),
			c.app.relativeTime(task.StartTime),
		)
	}
	return nil
}
