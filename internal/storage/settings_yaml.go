package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"timetracker/internal/ui/preferences"
)

// PreferencesFileName is the default name of the YAML preferences file.
const PreferencesFileName = "preferences.yaml"

type yamlSettings struct {
	WorkMinutes      int   `yaml:"work_minutes"`
	BreakMinutes     int   `yaml:"break_minutes"`
	PomodoroOnLaunch bool  `yaml:"pomodoro_on_launch"`
	StartAtLogin     bool  `yaml:"start_at_login"`
	ConfirmQuit      *bool `yaml:"confirm_quit,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	confirmQuit := settings.ConfirmQuit
	fileData := yamlSettings{
		WorkMinutes:      settings.WorkMinutes,
		BreakMinutes:     settings.BreakMinutes,
		PomodoroOnLaunch: settings.PomodoroOnLaunch,
		StartAtLogin:     settings.StartAtLogin,
		ConfirmQuit:      &confirmQuit,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeAtomic(path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes != 0 {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.BreakMinutes != 0 {
		settings.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.ConfirmQuit != nil {
		settings.ConfirmQuit = *fileData.ConfirmQuit
	}

	settings.PomodoroOnLaunch = fileData.PomodoroOnLaunch
	settings.StartAtLogin = fileData.StartAtLogin
}
