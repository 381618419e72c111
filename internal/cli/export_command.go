package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"metronome/internal/api"
	"metronome/internal/domain"
	"metronome/internal/errors"
)

var csvHeader = []string{"id", "name", "category", "start_time", "end_time", "total_time", "status"}

// ExportOptions holds the flags of the export command
type ExportOptions struct {
	Format   string
	Filter   string
	Active   bool
	Complete bool
}

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute writes the selected tasks to the output stream as CSV or JSON
func (c *ExportCommand) Execute(ctx context.Context, opts ExportOptions) error {
	if err := c.app.queryValidator.ValidateExportFormat(opts.Format); err != nil {
		return c.errorHandler.Handle("export tasks", errors.NewValidationError("invalid export format", err))
	}

	scope, err := ListOptions{Active: opts.Active, Complete: opts.Complete}.scope()
	if err != nil {
		return err
	}

	result, err := c.app.businessAPI.ListTasks(ctx, api.ListRequest{Scope: scope, Filter: opts.Filter})
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	c.app.printNotice(result.Filter)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		err = c.writeJSON(result.Tasks)
	default:
		err = c.writeCSV(result.Tasks)
	}
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	return nil
}

func (c *ExportCommand) writeCSV(tasks []*domain.Task) error {
	writer := csv.NewWriter(c.app.out)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		var endTime, totalTime string
		if task.EndTime != nil {
			endTime = task.EndTime.Format(time.RFC3339)
		}
		if task.TotalSeconds != nil {
			totalTime = strconv.FormatInt(*task.TotalSeconds, 10)
		}

		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.Name,
			task.Category,
			task.StartTime.Format(time.RFC3339),
			endTime,
			totalTime,
			task.Status.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *ExportCommand) writeJSON(tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	encoder := json.NewEncoder(c.app.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tasks)
}
