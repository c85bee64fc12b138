package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/core/model"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := OpenArchive(filepath.Join(t.TempDir(), ArchiveFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func archived(category string, start model.Clock, seconds float64) model.ActivityRecord {
	return model.ActivityRecord{
		ID:              category + start.String(),
		Category:        category,
		Name:            "task",
		Start:           start,
		End:             start,
		DurationSeconds: seconds,
	}
}

func day(value string) time.Time {
	parsed, err := model.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestArchiveSyncAndTotals(t *testing.T) {
	archive := openTestArchive(t)
	count, err := archive.Sync(map[string][]model.ActivityRecord{
		"2024-03-03": {archived("Work", 600, 9999)},
		"2024-03-04": {archived("Work", 540, 1800), archived("Study", 600, 600)},
		"2024-03-05": {archived("Work", 540, 3600)},
		"2024-03-11": {archived("Study", 540, 7200)},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	totals, err := archive.CategoryTotals(day("2024-03-04"), day("2024-03-11"))
	require.NoError(t, err)
	assert.Equal(t, []CategoryTotal{
		{Category: "Work", TotalSeconds: 5400, ActivityCount: 2},
		{Category: "Study", TotalSeconds: 600, ActivityCount: 1},
	}, totals)

	rows, err := archive.Activities(day("2024-03-04"), day("2024-03-05"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "09:00", rows[0].Start)
	assert.Equal(t, "10:00", rows[1].Start)
}

func TestArchiveSyncReplacesContents(t *testing.T) {
	archive := openTestArchive(t)
	_, err := archive.Sync(map[string][]model.ActivityRecord{
		"2024-03-04": {archived("Work", 540, 1800)},
	})
	require.NoError(t, err)

	count, err := archive.Sync(map[string][]model.ActivityRecord{})
	require.NoError(t, err)
	assert.Zero(t, count)

	totals, err := archive.CategoryTotals(day("2024-01-01"), day("2025-01-01"))
	require.NoError(t, err)
	assert.Empty(t, totals)
}
