package preferences

import (
	"timetracker/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes      int
	BreakMinutes     int
	PomodoroOnLaunch bool
	StartAtLogin     bool
	ConfirmQuit      bool
}

// DefaultSettings returns default settings for TimeTracker.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:      model.DefaultWorkMinutes,
		BreakMinutes:     model.DefaultBreakMinutes,
		PomodoroOnLaunch: false,
		StartAtLogin:     false,
		ConfirmQuit:      true,
	}
}

// Normalize clamps the Pomodoro lengths into their allowed ranges.
func (settings Settings) Normalize() Settings {
	config := settings.PomodoroConfig()
	settings.WorkMinutes = int(config.Work.Minutes())
	settings.BreakMinutes = int(config.Break.Minutes())
	return settings
}

// PomodoroConfig converts settings to the timer phase lengths.
func (settings Settings) PomodoroConfig() model.PomodoroConfig {
	return model.PomodoroFromMinutes(settings.WorkMinutes, settings.BreakMinutes)
}
