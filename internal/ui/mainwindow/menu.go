package mainwindow

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"timetracker/internal/core/model"
)

func (w *Window) buildMenu() *fyne.MainMenu {
	preferences := fyne.NewMenuItem("Preferences...", func() {
		if w.callbacks.OnPreferences != nil {
			w.callbacks.OnPreferences()
		}
	})
	exit := fyne.NewMenuItem("Exit", w.Quit)
	exit.IsQuit = true

	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Backup Data...", w.backup),
		fyne.NewMenuItem("Restore Data...", w.restore),
		fyne.NewMenuItemSeparator(),
		preferences,
		fyne.NewMenuItemSeparator(),
		exit,
	)

	w.themeDark = fyne.NewMenuItem("Dark Theme", func() { w.run(w.controller.SetTheme(model.ThemeDark)) })
	w.themeLight = fyne.NewMenuItem("Light Theme", func() { w.run(w.controller.SetTheme(model.ThemeLight)) })
	w.timeFirst = fyne.NewMenuItem("Time First", func() { w.run(w.controller.SetTimeFirst(true)) })
	w.activityFirst = fyne.NewMenuItem("Activity First", func() { w.run(w.controller.SetTimeFirst(false)) })

	view := fyne.NewMenu("View",
		w.themeDark,
		w.themeLight,
		fyne.NewMenuItemSeparator(),
		w.timeFirst,
		w.activityFirst,
	)

	w.mainMenu = fyne.NewMainMenu(file, view)
	return w.mainMenu
}

func (w *Window) syncMenu(display model.DisplaySettings) {
	if w.mainMenu == nil {
		return
	}
	w.themeDark.Checked = display.Theme == model.ThemeDark
	w.themeLight.Checked = display.Theme == model.ThemeLight
	w.timeFirst.Checked = display.TimeFirst()
	w.activityFirst.Checked = !display.TimeFirst()
	w.mainMenu.Refresh()
}

func (w *Window) addShortcuts() {
	canvas := w.window.Canvas()
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		w.ToggleTimer()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		canvas.Focus(w.categoryEntry)
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyM, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		w.showActivityDialog(nil)
	})
}
