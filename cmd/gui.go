package main

import (
	"errors"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"timetracker/internal/core/model"
	"timetracker/internal/core/timekeeper"
	"timetracker/internal/ui/mainwindow"
	"timetracker/internal/ui/preferences"
	"timetracker/internal/ui/tray"
)

func runGUI(env *environment) error {
	guard, err := env.lock()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())

	settings := env.loadSettings()
	controller, loadErr := env.openController(settings)
	if controller == nil {
		env.log.Error().Stack().Err(loadErr).Msg("startup failed")
		showStartupFailure(fyneApp, loadErr)
		return loadErr
	}

	var window *mainwindow.Window
	poller := timekeeper.NewPoller(timekeeper.Config{
		TickInterval: env.cfg.TickInterval,
		Dispatch:     fyne.Do,
	}, func(now time.Time) {
		window.Tick(now)
	})
	controller.SetScheduler(poller)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if updated.StartAtLogin != settings.StartAtLogin {
			if err := env.applyAutostart(updated.StartAtLogin); err != nil {
				window.ShowError(err)
				updated.StartAtLogin = settings.StartAtLogin
			}
		}
		settings = updated
		config := settings.PomodoroConfig()
		controller.SetPomodoroDurations(int(config.Work.Minutes()), int(config.Break.Minutes()))
		window.SetConfirmQuit(settings.ConfirmQuit)
		if err := env.saveSettings(settings); err != nil {
			window.ShowError(err)
		}
	})

	var trayManager *tray.Manager
	window = mainwindow.New(fyneApp, controller, mainwindow.Options{
		Title:       appTitle,
		ConfirmQuit: settings.ConfirmQuit,
		Logger:      env.log,
	}, mainwindow.Callbacks{
		OnPreferences: prefsWindow.Show,
		OnDurations: func(config model.PomodoroConfig) {
			settings.WorkMinutes = int(config.Work.Minutes())
			settings.BreakMinutes = int(config.Break.Minutes())
			prefsWindow.UpdateSettings(settings)
			if err := env.saveSettings(settings); err != nil {
				window.ShowError(err)
			}
		},
		OnTimer: func(status string, running bool) {
			if trayManager != nil {
				trayManager.Update(status, running)
			}
		},
		OnQuit: func() {
			poller.Stop()
			fyneApp.Quit()
		},
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnToggleTimer: window.ToggleTimer,
			OnShow:        window.Show,
			OnQuit:        window.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
	} else {
		env.log.Info().Msg("system tray unsupported on this platform")
	}

	window.Show()
	if errors.Is(loadErr, model.ErrPersistenceCorrupt) {
		window.ShowError(loadErr)
	}
	env.log.Info().Str("data_file", env.cfg.DataFile).Msg("window opened")
	fyneApp.Run()

	poller.Stop()
	return nil
}

// showStartupFailure reports err in a window and returns once it is closed.
func showStartupFailure(fyneApp fyne.App, err error) {
	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(420, 200))
	failure := dialog.NewError(err, window)
	failure.SetOnClosed(fyneApp.Quit)
	window.SetCloseIntercept(fyneApp.Quit)
	window.Show()
	failure.Show()
	fyneApp.Run()
}
