package model

import "strings"

// Theme names persisted in the data file.
const (
	ThemeDark  = "darkly"
	ThemeLight = "litera"
)

// DefaultWindowGeometry is the initial "WxH" window size.
const DefaultWindowGeometry = "600x700"

// BracketStyle selects how category names are wrapped in activity lines.
type BracketStyle string

const (
	BracketFullWidth BracketStyle = "full_width"
	BracketSquare    BracketStyle = "square"
)

// Wrap surrounds category with the style's brackets.
func (style BracketStyle) Wrap(category string) string {
	if style == BracketSquare {
		return "[" + category + "]"
	}
	return "【" + category + "】"
}

// Toggle returns the other style.
func (style BracketStyle) Toggle() BracketStyle {
	if style == BracketSquare {
		return BracketFullWidth
	}
	return BracketSquare
}

// Activity list columns.
const (
	ColumnTime     = "time"
	ColumnActivity = "activity"
	ColumnDuration = "duration"
	ColumnCopy     = "copy"
)

// DefaultColumns is the time-first column order.
func DefaultColumns() []string {
	return []string{ColumnTime, ColumnActivity, ColumnDuration, ColumnCopy}
}

// ActivityFirstColumns is the activity-first column order.
func ActivityFirstColumns() []string {
	return []string{ColumnActivity, ColumnTime, ColumnDuration, ColumnCopy}
}

// ValidColumns reports whether every entry is a known column.
func ValidColumns(columns []string) bool {
	if len(columns) == 0 {
		return false
	}
	for _, column := range columns {
		switch column {
		case ColumnTime, ColumnActivity, ColumnDuration, ColumnCopy:
		default:
			return false
		}
	}
	return true
}

// DisplaySettings is the "settings" object of the data file.
type DisplaySettings struct {
	Theme          string       `json:"theme"`
	WindowGeometry string       `json:"window_geometry"`
	DisplayColumns []string     `json:"display_columns"`
	BracketStyle   BracketStyle `json:"bracket_style"`
}

// DefaultDisplaySettings returns the settings used for a fresh data file.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		Theme:          ThemeDark,
		WindowGeometry: DefaultWindowGeometry,
		DisplayColumns: DefaultColumns(),
		BracketStyle:   BracketFullWidth,
	}
}

// Normalize replaces missing or unknown values with defaults.
func (settings DisplaySettings) Normalize() DisplaySettings {
	defaults := DefaultDisplaySettings()
	if settings.Theme != ThemeDark && settings.Theme != ThemeLight {
		settings.Theme = defaults.Theme
	}
	if strings.TrimSpace(settings.WindowGeometry) == "" {
		settings.WindowGeometry = defaults.WindowGeometry
	}
	if !ValidColumns(settings.DisplayColumns) {
		settings.DisplayColumns = defaults.DisplayColumns
	}
	if settings.BracketStyle != BracketSquare && settings.BracketStyle != BracketFullWidth {
		settings.BracketStyle = defaults.BracketStyle
	}
	return settings
}

// TimeFirst reports whether the time column precedes the activity column.
// Layouts missing either column default to time first.
func (settings DisplaySettings) TimeFirst() bool {
	timeIndex, activityIndex := -1, -1
	for index, column := range settings.DisplayColumns {
		switch column {
		case ColumnTime:
			timeIndex = index
		case ColumnActivity:
			activityIndex = index
		}
	}
	if timeIndex < 0 || activityIndex < 0 {
		return true
	}
	return timeIndex < activityIndex
}
