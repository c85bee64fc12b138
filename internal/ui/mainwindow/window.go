// Package mainwindow builds the tracker window on top of app.Controller.
// Every widget callback runs on the Fyne event goroutine, which is also the
// goroutine that owns the controller.
package mainwindow

import (
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"timetracker/internal/app"
	"timetracker/internal/core/ledger"
	"timetracker/internal/core/model"
	"timetracker/internal/core/timekeeper"
)

// Callbacks connects the window to the rest of the application.
type Callbacks struct {
	OnPreferences func()
	OnDurations   func(model.PomodoroConfig)
	OnTimer       func(status string, running bool)
	OnQuit        func()
}

// Options configures the window.
type Options struct {
	Title       string
	ConfirmQuit bool
	Logger      zerolog.Logger
}

// Window is the main tracker window.
type Window struct {
	app        fyne.App
	window     fyne.Window
	controller *app.Controller
	callbacks  Callbacks
	options    Options
	log        zerolog.Logger

	dateEntry      *widget.Entry
	categorySelect *widget.Select
	nameEntry      *widget.Entry
	clockLabel     *widget.Label
	timerButton    *widget.Button
	pomodoroCheck  *widget.Check
	statusLabel    *widget.Label
	workEntry      *widget.Entry
	breakEntry     *widget.Entry
	categoryEntry  *widget.Entry
	bracketButton  *widget.Button
	categoryBox    *fyne.Container
	listHeader     *widget.Label
	activityList   *widget.List
	totalButton    *widget.Button

	themeDark     *fyne.MenuItem
	themeLight    *fyne.MenuItem
	timeFirst     *fyne.MenuItem
	activityFirst *fyne.MenuItem
	mainMenu      *fyne.MainMenu

	rows     []ledger.Row
	theme    string
	syncing  bool
	ticking  bool
	quitting bool
}

// New builds the window and subscribes it to controller changes.
func New(fyneApp fyne.App, controller *app.Controller, options Options, callbacks Callbacks) *Window {
	if options.Title == "" {
		options.Title = "Time Tracker"
	}
	w := &Window{
		app:        fyneApp,
		window:     fyneApp.NewWindow(options.Title),
		controller: controller,
		callbacks:  callbacks,
		options:    options,
		log:        options.Logger.With().Str("component", "mainwindow").Logger(),
	}

	content := container.NewBorder(
		container.NewVBox(w.buildDateBar(), w.buildTimerPanel(), w.buildPomodoroPanel(), w.buildCategoryPanel()),
		nil, nil, nil,
		w.buildActivityPanel(),
	)
	w.window.SetContent(content)
	w.window.SetMainMenu(w.buildMenu())
	w.addShortcuts()

	size, ok := parseGeometry(controller.Display().WindowGeometry)
	if !ok {
		size, _ = parseGeometry(model.DefaultWindowGeometry)
	}
	w.window.Resize(size)
	w.window.SetCloseIntercept(w.Quit)

	controller.OnChange(w.onChange)
	controller.OnError(w.showError)
	w.refresh()
	return w
}

// Show displays the window and brings it to the front.
func (w *Window) Show() {
	w.window.Show()
	w.window.RequestFocus()
}

// Window returns the underlying Fyne window, used as dialog parent.
func (w *Window) Window() fyne.Window { return w.window }

// SetConfirmQuit changes whether quitting with a running timer asks first.
func (w *Window) SetConfirmQuit(confirm bool) { w.options.ConfirmQuit = confirm }

// Tick advances the timer. Plain clock updates only repaint the timer
// widgets; phase changes refresh the whole window.
func (w *Window) Tick(now time.Time) {
	w.ticking = true
	event := w.controller.Tick(now)
	w.ticking = false
	if event.Transitioned() || event.Completed != nil {
		w.refresh()
		return
	}
	w.refreshTimer()
}

// ShowError presents err, as information when it is not a failure.
func (w *Window) ShowError(err error) { w.showError(err) }

// Quit stops a running timer, after confirmation when configured, saves
// and hands over to OnQuit.
func (w *Window) Quit() {
	if w.quitting {
		return
	}
	w.controller.SetWindowGeometry(formatGeometry(w.window.Canvas().Size()))

	err := w.controller.Close(!w.options.ConfirmQuit)
	if errors.Is(err, model.ErrConfirmationRequired) {
		dialog.ShowConfirm("Timer Running", "A timer is running. Are you sure you want to quit?", func(confirmed bool) {
			if !confirmed {
				return
			}
			w.finishQuit(w.controller.Close(true))
		}, w.window)
		return
	}
	w.finishQuit(err)
}

func (w *Window) finishQuit(err error) {
	if err != nil {
		w.log.Error().Err(err).Msg("final save failed")
	}
	w.quitting = true
	if w.callbacks.OnQuit != nil {
		w.callbacks.OnQuit()
		return
	}
	w.app.Quit()
}

func (w *Window) onChange() {
	if w.ticking {
		return
	}
	w.refresh()
}

func (w *Window) refresh() {
	w.syncing = true
	defer func() { w.syncing = false }()

	w.dateEntry.SetText(w.controller.DateKey())

	categories := w.controller.Categories()
	w.categorySelect.SetOptions(categories)
	if selected := w.controller.Selected(); selected != "" {
		w.categorySelect.SetSelected(selected)
	} else {
		w.categorySelect.ClearSelected()
	}
	if w.nameEntry.Text != w.controller.ActivityName() {
		w.nameEntry.SetText(w.controller.ActivityName())
	}

	w.pomodoroCheck.SetChecked(w.controller.PomodoroMode())
	config := w.controller.PomodoroConfig()
	syncMinutes(w.workEntry, config.Work)
	syncMinutes(w.breakEntry, config.Break)

	display := w.controller.Display()
	w.bracketButton.SetText(bracketLabel(display.BracketStyle))
	w.rebuildCategories(categories)

	w.rows = w.controller.Rows()
	w.listHeader.SetText("Activities for " + w.controller.DateKey() + " (" + w.controller.Filter() + ")")
	w.activityList.Refresh()
	w.totalButton.SetText(w.controller.CopyTotal())

	if display.Theme != w.theme {
		w.theme = display.Theme
		w.app.Settings().SetTheme(newVariantTheme(display.Theme))
	}
	w.syncMenu(display)
	w.refreshTimer()
}

func (w *Window) refreshTimer() {
	event := w.controller.LastEvent()
	w.clockLabel.SetText(event.Clock)
	w.window.SetTitle(w.controller.Title(w.options.Title))

	switch {
	case !w.controller.Running():
		w.timerButton.SetText("Start")
		w.timerButton.SetIcon(theme.MediaPlayIcon())
		w.timerButton.Importance = widget.HighImportance
	case w.controller.State() == timekeeper.StateBreak:
		w.timerButton.SetText("Skip Break")
		w.timerButton.SetIcon(theme.MediaSkipNextIcon())
		w.timerButton.Importance = widget.MediumImportance
	default:
		w.timerButton.SetText("Stop")
		w.timerButton.SetIcon(theme.MediaStopIcon())
		w.timerButton.Importance = widget.DangerImportance
	}
	w.timerButton.Refresh()

	status := "Status: " + w.controller.State().Label()
	if category, ok := w.controller.ActiveCategory(); ok {
		status += " (" + category + ")"
	}
	w.statusLabel.SetText(status)

	if w.callbacks.OnTimer != nil {
		summary := w.controller.State().Label()
		if w.controller.Running() {
			summary = event.Clock + " - " + summary
		}
		w.callbacks.OnTimer(summary, w.controller.Running())
	}
}

func (w *Window) showError(err error) {
	if err == nil {
		return
	}
	if isNotice(err) {
		dialog.ShowInformation(errorTitle(err), noticeMessage(err), w.window)
		return
	}
	w.log.Warn().Err(err).Msg("operation failed")
	dialog.ShowError(errors.New(errorTitle(err)+": "+err.Error()), w.window)
}

// run reports the error of a controller command, if any.
func (w *Window) run(err error) {
	if err != nil {
		w.showError(err)
	}
}

func (w *Window) copyText(text string) {
	w.app.Clipboard().SetContent(text)
	w.log.Debug().Int("length", len(text)).Msg("copied to clipboard")
}
