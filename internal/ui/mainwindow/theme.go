package mainwindow

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"timetracker/internal/core/model"
)

// variantTheme pins the default theme to one variant regardless of the
// system preference.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(name string) fyne.Theme {
	variant := theme.VariantDark
	if name == model.ThemeLight {
		variant = theme.VariantLight
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: variant}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}
