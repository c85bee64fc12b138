package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/ui/preferences"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), PreferencesFileName))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", PreferencesFileName)
	want := preferences.Settings{
		WorkMinutes:      50,
		BreakMinutes:     10,
		PomodoroOnLaunch: true,
		StartAtLogin:     true,
		ConfirmQuit:      false,
	}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsClampsRanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: 500\nbreak_minutes: -3\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 120, settings.WorkMinutes)
	assert.Equal(t, 1, settings.BreakMinutes)
	assert.True(t, settings.ConfirmQuit, "absent keys keep their defaults")
}

func TestLoadSettingsRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
