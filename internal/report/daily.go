package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"timetracker/internal/core/ledger"
	"timetracker/internal/core/model"
)

const separatorWidth = 50

// Daily is one day of activities in display order together with its totals.
type Daily struct {
	Date   string
	Rows   []ledger.Row
	Totals ledger.Totals
}

// NewDaily collects the report data for date from book.
func NewDaily(book *ledger.Ledger, date string) Daily {
	return Daily{
		Date:   date,
		Rows:   book.Display(date, model.AllCategory),
		Totals: book.RecomputeTotals(date),
	}
}

// ActivityLine renders a record as "HH:MM-HH:MM [category] name", or with the
// time last when the activity column comes first.
func ActivityLine(record model.ActivityRecord, settings model.DisplaySettings) string {
	timeText := record.Start.String() + "-" + record.End.String()
	activityText := settings.BracketStyle.Wrap(record.Category) + " " + record.Name
	if settings.TimeFirst() {
		return timeText + " " + activityText
	}
	return activityText + " " + timeText
}

// Text renders the export file for the day.
func (daily Daily) Text(settings model.DisplaySettings) (string, error) {
	if len(daily.Rows) == 0 {
		return "", model.ErrNothingToExport
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Daily Activities for %s\n\n", daily.Date)
	for _, row := range daily.Rows {
		builder.WriteString(ActivityLine(row.Record, settings))
		builder.WriteByte('\n')
		if row.Record.Notes != "" {
			fmt.Fprintf(&builder, "  Notes: %s\n", row.Record.Notes)
		}
	}
	builder.WriteString("\n" + strings.Repeat("=", separatorWidth) + "\n\n")
	builder.WriteString("Summary\n\n")
	for _, line := range daily.SummaryLines() {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	return builder.String(), nil
}

// SummaryLines returns the total line followed by one line per category
// with time on that day, sorted by name.
func (daily Daily) SummaryLines() []string {
	lines := []string{TotalLine(model.AllCategory, daily.Totals.Of(model.AllCategory))}
	for _, category := range daily.Categories() {
		if total := daily.Totals.Of(category); total > 0 {
			lines = append(lines, TotalLine(category, total))
		}
	}
	return lines
}

// Categories returns the distinct categories logged on the day, sorted.
func (daily Daily) Categories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, row := range daily.Rows {
		if _, ok := seen[row.Record.Category]; ok {
			continue
		}
		seen[row.Record.Category] = struct{}{}
		categories = append(categories, row.Record.Category)
	}
	sort.Strings(categories)
	return categories
}

// CopyAll renders rows one activity per line.
func CopyAll(rows []ledger.Row, settings model.DisplaySettings) (string, error) {
	if len(rows) == 0 {
		return "", model.ErrNothingToCopy
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, ActivityLine(row.Record, settings))
	}
	return strings.Join(lines, "\n"), nil
}

// TotalLine renders "Total Time: X.XXh" for All and "<category> Time: X.XXh"
// otherwise.
func TotalLine(category string, total time.Duration) string {
	label := category
	if category == model.AllCategory || category == "" {
		label = "Total"
	}
	return fmt.Sprintf("%s Time: %.2fh", label, total.Hours())
}

// FileName is the suggested export file name for date.
func FileName(date, extension string) string {
	return date + "_report." + strings.TrimPrefix(extension, ".")
}
