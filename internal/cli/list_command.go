package cli

import (
	"context"

	"metronome/internal/api"
	"metronome/internal/domain"
	"metronome/internal/errors"
)

// ListOptions holds the flags of the list command. Category is nil when
// the listing is not restricted to one category
type ListOptions struct {
	Active   bool
	Complete bool
	All      bool
	Filter   string
	Category *string
}

// scope resolves the status flags. With none set every task is listed
func (o ListOptions) scope() (domain.ListScope, error) {
	set := 0
	for _, flag := range []bool{o.Active, o.Complete, o.All} {
		if flag {
			set++
		}
	}

	switch {
	case set > 1:
		return domain.ScopeAll, errors.NewInvalidInputError("flags", "--active --complete --all", "only one of --active, --complete and --all may be given")
	case o.Active:
		return domain.ScopeActive, nil
	case o.Complete:
		return domain.ScopeComplete, nil
	default:
		return domain.ScopeAll, nil
	}
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	scope, err := opts.scope()
	if err != nil {
		return err
	}

	result, err := c.app.businessAPI.ListTasks(ctx, api.ListRequest{
		Scope:    scope,
		Filter:   opts.Filter,
		Category: opts.Category,
	})
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	c.app.printNotice(result.Filter)
	c.app.writeTaskTable(c.app.out, result.Tasks)
	return nil
}
