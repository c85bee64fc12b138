package mainwindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"timetracker/internal/core/model"
)

const (
	minWindowWidth  = 480
	minWindowHeight = 400
)

// parseGeometry reads a "WxH" size. Anything after the size, such as a
// "+X+Y" position, is ignored.
func parseGeometry(value string) (fyne.Size, bool) {
	value = strings.TrimSpace(value)
	if cut := strings.IndexAny(value, "+-"); cut > 0 {
		value = value[:cut]
	}
	widthText, heightText, ok := strings.Cut(value, "x")
	if !ok {
		return fyne.Size{}, false
	}
	width, err := strconv.Atoi(widthText)
	if err != nil {
		return fyne.Size{}, false
	}
	height, err := strconv.Atoi(heightText)
	if err != nil {
		return fyne.Size{}, false
	}
	if width < minWindowWidth || height < minWindowHeight {
		return fyne.Size{}, false
	}
	return fyne.NewSize(float32(width), float32(height)), true
}

func formatGeometry(size fyne.Size) string {
	return fmt.Sprintf("%dx%d", int(size.Width), int(size.Height))
}

// rowCells returns the text columns of an activity row in display order.
// The copy column is rendered as buttons and has no text cell.
func rowCells(record model.ActivityRecord, settings model.DisplaySettings) []string {
	cells := make([]string, 0, len(settings.DisplayColumns))
	for _, column := range settings.DisplayColumns {
		switch column {
		case model.ColumnTime:
			cells = append(cells, record.Start.String()+"-"+record.End.String())
		case model.ColumnActivity:
			cells = append(cells, settings.BracketStyle.Wrap(record.Category)+" "+record.Name)
		case model.ColumnDuration:
			cells = append(cells, model.FormatDuration(record.Duration()))
		}
	}
	return cells
}

func categoryLabel(name string, total time.Duration) string {
	return fmt.Sprintf("%s (%s)", name, model.FormatDuration(total))
}

func bracketLabel(style model.BracketStyle) string {
	return "Brackets: " + style.Wrap("")
}

// parseMinutes reads a whole number of minutes from a form field.
func parseMinutes(value string) (int, bool) {
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

func formatMinutes(d time.Duration) string {
	return strconv.Itoa(int(d.Minutes()))
}

// syncMinutes shows d in entry unless the entry already holds that value.
func syncMinutes(entry *widget.Entry, d time.Duration) {
	if minutes, ok := parseMinutes(entry.Text); ok && minutes == int(d.Minutes()) {
		return
	}
	entry.SetText(formatMinutes(d))
}

// isNotice reports whether err is informational rather than a failure.
func isNotice(err error) bool {
	return errors.Is(err, model.ErrNothingToExport) ||
		errors.Is(err, model.ErrNothingToCopy) ||
		errors.Is(err, model.ErrRestartRequired)
}

// errorTitle picks the dialog title for err.
func errorTitle(err error) string {
	switch {
	case errors.Is(err, model.ErrNothingToExport):
		return "Nothing to Export"
	case errors.Is(err, model.ErrNothingToCopy):
		return "Nothing to Copy"
	case errors.Is(err, model.ErrRestartRequired):
		return "Restore Successful"
	case errors.Is(err, model.ErrInvalidDate):
		return "Invalid Format"
	case errors.Is(err, model.ErrMissingField), errors.Is(err, model.ErrInvalidTimeFormat):
		return "Input Error"
	case errors.Is(err, model.ErrPersistenceCorrupt):
		return "Load Error"
	case errors.Is(err, model.ErrPersistenceWriteFailure), errors.Is(err, model.ErrNoDataFile):
		return "Save Error"
	case errors.Is(err, model.ErrNoCategorySelected), errors.Is(err, model.ErrEmptyActivityName),
		errors.Is(err, model.ErrAlreadyRunning), errors.Is(err, model.ErrNotRunning):
		return "Timer"
	case errors.Is(err, model.ErrDuplicateCategory), errors.Is(err, model.ErrReservedCategory),
		errors.Is(err, model.ErrUnknownCategory), errors.Is(err, model.ErrEmptyCategoryName),
		errors.Is(err, model.ErrCategoryInUse), errors.Is(err, model.ErrCategoryActive):
		return "Category"
	default:
		return "Error"
	}
}

// noticeMessage is the dialog body for informational errors.
func noticeMessage(err error) string {
	if errors.Is(err, model.ErrRestartRequired) {
		return "Data has been restored.\nPlease restart the application for the changes to take effect."
	}
	return err.Error()
}
