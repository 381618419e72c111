package cli

import (
	"context"
)

// TotalOptions holds the flags of the total command
type TotalOptions struct {
	Filter   string
	Category *string
}

// TotalCommand handles the total command
type TotalCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTotalCommand creates a new total command handler
func NewTotalCommand(app *App) *TotalCommand {
	return &TotalCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute sums the time of complete tasks per category
func (c *TotalCommand) Execute(ctx context.Context, opts TotalOptions) error {
	result, err := c.app.businessAPI.SumByCategory(ctx, opts.Filter, opts.Category)
	if err != nil {
		return c.errorHandler.Handle("total tasks", err)
	}

	c.app.printNotice(result.Filter)
	c.app.writeTotalsTable(c.app.out, result.Totals)
	return nil
}
