package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"timetracker/internal/storage"
)

// Period types accepted by PeriodOf.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Period is a half-open date range [Start, End).
type Period struct {
	Type  string    `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodOf returns the day, week (starting Monday) or month containing now.
func PeriodOf(periodType string, now time.Time) (Period, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time
	switch periodType {
	case PeriodDay, "today":
		periodType = PeriodDay
		start = today
		end = start.AddDate(0, 0, 1)
	case PeriodWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = today.AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	default:
		return Period{}, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return Period{Type: periodType, Start: start, End: end}, nil
}

// CategorySummary is one category's share of a period.
type CategorySummary struct {
	Category      string  `json:"category"`
	TotalSeconds  float64 `json:"total_seconds"`
	TotalHours    float64 `json:"total_hours"`
	ActivityCount int     `json:"activity_count"`
	Percentage    float64 `json:"percentage,omitempty"`
}

// Summary aggregates archived activities over a period.
type Summary struct {
	Period       Period            `json:"period"`
	Categories   []CategorySummary `json:"categories"`
	TotalSeconds float64           `json:"total_seconds"`
	TotalHours   float64           `json:"total_hours"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// NewSummary derives hours and percentages from the archive totals.
func NewSummary(period Period, totals []storage.CategoryTotal, generatedAt time.Time) Summary {
	summary := Summary{
		Period:      period,
		Categories:  make([]CategorySummary, 0, len(totals)),
		GeneratedAt: generatedAt,
	}
	for _, total := range totals {
		summary.TotalSeconds += total.TotalSeconds
	}
	summary.TotalHours = summary.TotalSeconds / 3600

	for _, total := range totals {
		entry := CategorySummary{
			Category:      total.Category,
			TotalSeconds:  total.TotalSeconds,
			TotalHours:    total.TotalSeconds / 3600,
			ActivityCount: total.ActivityCount,
		}
		if summary.TotalSeconds > 0 {
			entry.Percentage = total.TotalSeconds / summary.TotalSeconds * 100
		}
		summary.Categories = append(summary.Categories, entry)
	}
	return summary
}

// Text formats the summary as a table.
func (summary Summary) Text() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Time Summary - %s\n", summary.Period.Type)
	fmt.Fprintf(&builder, "Period: %s to %s\n",
		summary.Period.Start.Format("2006-01-02"),
		summary.Period.End.AddDate(0, 0, -1).Format("2006-01-02"))
	fmt.Fprintf(&builder, "Total Time: %.2fh\n\n", summary.TotalHours)

	if len(summary.Categories) == 0 {
		builder.WriteString("No activity recorded for this period.\n")
		return builder.String()
	}

	fmt.Fprintf(&builder, "%-30s %10s %10s %10s\n", "Category", "Hours", "Entries", "Percent")
	builder.WriteString(strings.Repeat("-", 63) + "\n")
	for _, category := range summary.Categories {
		fmt.Fprintf(&builder, "%-30s %10.2f %10d %9.1f%%\n",
			truncate(category.Category, 30),
			category.TotalHours,
			category.ActivityCount,
			category.Percentage)
	}
	return builder.String()
}

// JSON formats the summary as indented JSON.
func (summary Summary) JSON() (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func truncate(value string, maxLen int) string {
	runes := []rune(value)
	if len(runes) <= maxLen {
		return value
	}
	return string(runes[:maxLen-3]) + "..."
}
