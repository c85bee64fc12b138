package mainwindow

import (
	"fmt"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"timetracker/internal/core/model"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		value string
		want  fyne.Size
		ok    bool
	}{
		{"600x700", fyne.NewSize(600, 700), true},
		{"800x900+120+40", fyne.NewSize(800, 900), true},
		{" 640x480 ", fyne.NewSize(640, 480), true},
		{"100x100", fyne.Size{}, false},
		{"wide", fyne.Size{}, false},
		{"600x", fyne.Size{}, false},
		{"", fyne.Size{}, false},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			size, ok := parseGeometry(test.value)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.want, size)
		})
	}
}

func TestFormatGeometry(t *testing.T) {
	assert.Equal(t, "600x700", formatGeometry(fyne.NewSize(600.4, 700.9)))
}

func TestRowCellsFollowColumnOrder(t *testing.T) {
	record := model.ActivityRecord{
		Category:        "Work",
		Name:            "Review",
		Start:           model.Clock(9*60 + 5),
		End:             model.Clock(10*60 + 35),
		DurationSeconds: 5400,
	}

	settings := model.DefaultDisplaySettings()
	assert.Equal(t, []string{"09:05-10:35", "【Work】 Review", "1h30min"}, rowCells(record, settings))

	settings.DisplayColumns = model.ActivityFirstColumns()
	settings.BracketStyle = model.BracketSquare
	assert.Equal(t, []string{"[Work] Review", "09:05-10:35", "1h30min"}, rowCells(record, settings))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Work (25min)", categoryLabel("Work", 25*time.Minute))
	assert.Equal(t, "All (0s)", categoryLabel(model.AllCategory, 0))
	assert.Equal(t, "Brackets: []", bracketLabel(model.BracketSquare))
	assert.Equal(t, "Brackets: 【】", bracketLabel(model.BracketFullWidth))
}

func TestParseMinutes(t *testing.T) {
	minutes, ok := parseMinutes(" 25 ")
	assert.True(t, ok)
	assert.Equal(t, 25, minutes)

	for _, value := range []string{"", "0", "-5", "2.5", "ten"} {
		_, ok := parseMinutes(value)
		assert.False(t, ok, value)
	}
	assert.Equal(t, "50", formatMinutes(50*time.Minute))
}

func TestErrorTitles(t *testing.T) {
	tests := []struct {
		err    error
		title  string
		notice bool
	}{
		{model.ErrNothingToExport, "Nothing to Export", true},
		{model.ErrNothingToCopy, "Nothing to Copy", true},
		{model.ErrRestartRequired, "Restore Successful", true},
		{fmt.Errorf("parse: %w", model.ErrInvalidDate), "Invalid Format", false},
		{model.ErrInvalidTimeFormat, "Input Error", false},
		{model.ErrMissingField, "Input Error", false},
		{&model.PersistenceError{Kind: model.ErrPersistenceCorrupt, Op: "load"}, "Load Error", false},
		{model.ErrNoCategorySelected, "Timer", false},
		{fmt.Errorf("%q: %w", "Work", model.ErrCategoryInUse), "Category", false},
		{fmt.Errorf("boom"), "Error", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.title, errorTitle(test.err), test.err.Error())
		assert.Equal(t, test.notice, isNotice(test.err), test.err.Error())
	}
	assert.Contains(t, noticeMessage(model.ErrRestartRequired), "restart")
}
