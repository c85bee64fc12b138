package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstancePerDataFile(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")

	guard, err := AcquireSingleInstance("TimeTrackerTest", dataFile)
	require.NoError(t, err)
	assert.Equal(t, dataFile, guard.DataFile())
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance("TimeTrackerTest", dataFile)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance("TimeTrackerTest", dataFile)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLockPortDependsOnPath(t *testing.T) {
	first := lockPort("TimeTracker", "/home/a/data.json")
	assert.Equal(t, first, lockPort("TimeTracker", "/home/a/data.json"))
	assert.NotEqual(t, first, lockPort("TimeTracker", "/home/b/data.json"))
	assert.GreaterOrEqual(t, first, minLockPort)
	assert.LessOrEqual(t, first, maxLockPort)
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	assert.Empty(t, guard.DataFile())
}

func TestEntrySlug(t *testing.T) {
	assert.Equal(t, "time-tracker", entrySlug(" Time Tracker "))
	assert.Equal(t, "timetracker", entrySlug(""))
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	configDir, err := NewServiceAt(dir).GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, configDir)
}
