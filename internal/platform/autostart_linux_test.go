//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxAutostartLifecycle(t *testing.T) {
	dir := t.TempDir()
	service := NewServiceAt(dir)

	enabled, err := service.AutostartEnabled("TimeTracker")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, ApplyAutostart(service, true, "TimeTracker", "/opt/time tracker/timetracker"))
	content, err := os.ReadFile(filepath.Join(dir, "autostart", "timetracker.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=TimeTracker")
	assert.Contains(t, string(content), `Exec="/opt/time tracker/timetracker" gui`)

	enabled, err = service.AutostartEnabled("TimeTracker")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, ApplyAutostart(service, false, "TimeTracker", ""))
	enabled, err = service.AutostartEnabled("TimeTracker")
	require.NoError(t, err)
	assert.False(t, enabled)

	assert.NoError(t, service.DisableAutostart("TimeTracker"), "removing a missing entry is fine")
	assert.Error(t, service.EnableAutostart("TimeTracker", ""))
}
