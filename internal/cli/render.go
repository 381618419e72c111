package cli

import (
	"fmt"
	"io"
	"strconv"

	"metronome/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

const nullCell = "NULL"

var (
	taskHeaders  = []string{"ID", "TASK", "START TIME", "END TIME", "TOTAL TIME", "CATEGORY"}
	totalHeaders = []string{"CATEGORY", "TOTAL TIME"}

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// tableBorder maps a configured table style to a lipgloss border.
// Unknown names fall back to the rounded border
func tableBorder(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "markdown":
		return lipgloss.MarkdownBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func renderTable(style string, headers []string, rows [][]string) string {
	t := table.New().
		Border(tableBorder(style)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// taskRows builds one table row per task. Absent end and total times are
// shown as NULL
func (a *App) taskRows(tasks []*domain.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		endCell, totalCell := nullCell, nullCell
		if task.EndTime != nil {
			endCell = a.formatTime(*task.EndTime)
		}
		if total, ok := task.Duration(); ok {
			totalCell = total.String()
		}
		rows = append(rows, []string{
			strconv.FormatInt(task.ID, 10),
			task.Name,
			a.formatStartTime(task.StartTime),
			endCell,
			totalCell,
			task.Category,
		})
	}
	return rows
}

// writeTaskTable prints tasks followed by a count line
func (a *App) writeTaskTable(w io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}
	fmt.Fprintln(w, renderTable(a.config.Display.TableStyle, taskHeaders, a.taskRows(tasks)))
	fmt.Fprintf(w, "%s task(s)\n", humanize.Comma(int64(len(tasks))))
}

// writeTotalsTable prints one row per category
func (a *App) writeTotalsTable(w io.Writer, totals []domain.CategoryTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, "No completed tasks found")
		return
	}
	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, []string{total.Category, total.Total.String()})
	}
	fmt.Fprintln(w, renderTable(a.config.Display.TableStyle, totalHeaders, rows))
}
