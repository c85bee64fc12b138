package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"timetracker/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	workMinutes  *widget.Entry
	breakMinutes *widget.Entry
	pomodoro     *widget.Check
	startAtLogin *widget.Check
	confirmQuit  *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Time Tracker Preferences")

	workMinutes := widget.NewEntry()
	breakMinutes := widget.NewEntry()
	pomodoro := widget.NewCheck("Start in Pomodoro mode", nil)
	startAtLogin := widget.NewCheck("Start at login", nil)
	confirmQuit := widget.NewCheck("Ask before quitting while a timer runs", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work length"), workMinutes,
			widget.NewLabel(fmt.Sprintf("min (%d-%d)", model.MinWorkMinutes, model.MaxWorkMinutes))),
		container.NewHBox(widget.NewLabel("Break length"), breakMinutes,
			widget.NewLabel(fmt.Sprintf("min (%d-%d)", model.MinBreakMinutes, model.MaxBreakMinutes))),
		pomodoro,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		startAtLogin,
		confirmQuit,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		workMinutes:  workMinutes,
		breakMinutes: breakMinutes,
		pomodoro:     pomodoro,
		startAtLogin: startAtLogin,
		confirmQuit:  confirmQuit,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Normalize()
	prefs.settings = settings
	prefs.workMinutes.SetText(strconv.Itoa(settings.WorkMinutes))
	prefs.breakMinutes.SetText(strconv.Itoa(settings.BreakMinutes))
	prefs.pomodoro.SetChecked(settings.PomodoroOnLaunch)
	prefs.startAtLogin.SetChecked(settings.StartAtLogin)
	prefs.confirmQuit.SetChecked(settings.ConfirmQuit)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMinutes.Text); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.breakMinutes.Text); ok {
		settings.BreakMinutes = minutes
	}
	settings.PomodoroOnLaunch = prefs.pomodoro.Checked
	settings.StartAtLogin = prefs.startAtLogin.Checked
	settings.ConfirmQuit = prefs.confirmQuit.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
