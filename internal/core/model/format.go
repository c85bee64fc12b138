package model

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d as e.g. "1h5min3s", omitting zero units.
// Non-positive durations render as "0s".
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total <= 0 {
		return "0s"
	}
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var builder strings.Builder
	if hours > 0 {
		fmt.Fprintf(&builder, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&builder, "%dmin", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(&builder, "%ds", seconds)
	}
	return builder.String()
}

// FormatClock renders d as "HH:MM:SS", clamping negatives to zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// FormatHours renders d in hours with two decimals, e.g. "1.50h".
func FormatHours(d time.Duration) string {
	return fmt.Sprintf("%.2fh", d.Hours())
}
