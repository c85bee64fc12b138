package app

import (
	"fmt"
	"strings"

	"timetracker/internal/core/model"
)

// Display returns the display settings.
func (c *Controller) Display() model.DisplaySettings { return c.display }

// SetBracketStyle chooses how categories are wrapped in activity lines.
func (c *Controller) SetBracketStyle(style model.BracketStyle) error {
	if style != model.BracketFullWidth && style != model.BracketSquare {
		return fmt.Errorf("unknown bracket style %q", style)
	}
	c.display.BracketStyle = style
	return c.saveAndNotify()
}

// ToggleBracketStyle switches between full-width and square brackets.
func (c *Controller) ToggleBracketStyle() error {
	return c.SetBracketStyle(c.display.BracketStyle.Toggle())
}

// SetDisplayColumns sets the activity list column order.
func (c *Controller) SetDisplayColumns(columns []string) error {
	if !model.ValidColumns(columns) {
		return fmt.Errorf("invalid display columns %v", columns)
	}
	c.display.DisplayColumns = append([]string(nil), columns...)
	return c.saveAndNotify()
}

// SetTimeFirst orders the list with the time column before the activity.
func (c *Controller) SetTimeFirst(timeFirst bool) error {
	if timeFirst {
		return c.SetDisplayColumns(model.DefaultColumns())
	}
	return c.SetDisplayColumns(model.ActivityFirstColumns())
}

// SetTheme selects the dark or the light theme.
func (c *Controller) SetTheme(theme string) error {
	if theme != model.ThemeDark && theme != model.ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	c.display.Theme = theme
	return c.saveAndNotify()
}

// SetWindowGeometry records the window size as "WxH". It is persisted with
// the next save.
func (c *Controller) SetWindowGeometry(geometry string) {
	if geometry = strings.TrimSpace(geometry); geometry != "" {
		c.display.WindowGeometry = geometry
	}
}
