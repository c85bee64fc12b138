package mainwindow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"timetracker/internal/core/model"
	"timetracker/internal/report"
	"timetracker/internal/storage"
)

// showActivityDialog opens the manual entry form. A nil recordID adds a new
// activity to the displayed day; otherwise that record is edited.
func (w *Window) showActivityDialog(recordID *string) {
	entry := model.ManualEntry{Category: w.controller.Selected()}
	title, confirm := "Add Activity Manually", "Add"
	if recordID != nil {
		index, err := w.controller.ResolveIndex(*recordID)
		if err == nil {
			entry, err = w.controller.EntryFor(index)
		}
		if err != nil {
			w.showError(err)
			return
		}
		title, confirm = "Edit Activity", "Save"
	}

	categories := w.controller.Categories()
	category := widget.NewSelect(categories, nil)
	if entry.Category != "" {
		category.SetSelected(entry.Category)
	} else if len(categories) > 0 {
		category.SetSelected(categories[0])
	}

	name := widget.NewEntry()
	name.SetText(entry.Name)
	name.Validator = func(value string) error {
		if strings.TrimSpace(value) == "" {
			return model.ErrMissingField
		}
		return nil
	}
	start := clockEntry(entry.Start)
	end := clockEntry(entry.End)
	notes := widget.NewMultiLineEntry()
	notes.SetText(entry.Notes)
	notes.SetMinRowsVisible(3)

	items := []*widget.FormItem{
		widget.NewFormItem("Category", category),
		widget.NewFormItem("Activity", name),
		widget.NewFormItem("Start (HH:MM)", start),
		widget.NewFormItem("End (HH:MM)", end),
		widget.NewFormItem("Notes", notes),
	}

	form := dialog.NewForm(title, confirm, "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		values := model.ManualEntry{
			Category: category.Selected,
			Name:     name.Text,
			Start:    start.Text,
			End:      end.Text,
			Notes:    strings.TrimSpace(notes.Text),
		}
		if recordID == nil {
			w.run(w.controller.AddManual(values))
			return
		}
		index, err := w.controller.ResolveIndex(*recordID)
		if err != nil {
			w.showError(err)
			return
		}
		w.run(w.controller.EditActivity(index, values))
	}, w.window)
	form.Resize(fyne.NewSize(420, form.MinSize().Height))
	form.Show()
}

func clockEntry(value string) *widget.Entry {
	entry := widget.NewEntry()
	entry.PlaceHolder = "HH:MM"
	entry.SetText(value)
	entry.Validator = func(value string) error {
		_, err := model.ParseClock(value)
		return err
	}
	return entry
}

func (w *Window) confirmDeleteActivity(recordID, name string) {
	message := fmt.Sprintf("Delete the activity %q?", name)
	dialog.ShowConfirm("Delete Activity", message, func(confirmed bool) {
		if !confirmed {
			return
		}
		index, err := w.controller.ResolveIndex(recordID)
		if err != nil {
			w.showError(err)
			return
		}
		w.run(w.controller.DeleteActivity(index))
	}, w.window)
}

func (w *Window) exportText() {
	if len(w.controller.DailyReport().Rows) == 0 {
		w.showError(model.ErrNothingToExport)
		return
	}
	w.saveFile(report.FileName(w.controller.DateKey(), "txt"), []string{".txt"}, w.controller.ExportText)
}

func (w *Window) exportPDF() {
	if len(w.controller.DailyReport().Rows) == 0 {
		w.showError(model.ErrNothingToExport)
		return
	}
	w.saveFile(report.FileName(w.controller.DateKey(), "pdf"), []string{".pdf"}, w.controller.ExportPDF)
}

func (w *Window) backup() {
	name := storage.BackupFileName(time.Now())
	w.saveFile(name, []string{".json"}, func(path string) error {
		if err := w.controller.Backup(path); err != nil {
			return err
		}
		dialog.ShowInformation("Backup Successful", "Data successfully backed up to:\n"+path, w.window)
		return nil
	})
}

func (w *Window) restore() {
	dialog.ShowConfirm("Restore Data",
		"Restoring replaces all current data with the backup.\nThis cannot be undone. Continue?",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil {
					w.showError(err)
					return
				}
				if reader == nil {
					return
				}
				path := reader.URI().Path()
				_ = reader.Close()
				w.finishRestore(w.controller.Restore(path))
			}, w.window)
			open.SetFilter(fynestorage.NewExtensionFileFilter([]string{".json"}))
			open.Show()
		}, w.window)
}

func (w *Window) finishRestore(err error) {
	if !errors.Is(err, model.ErrRestartRequired) {
		w.run(err)
		return
	}
	information := dialog.NewInformation(errorTitle(err), noticeMessage(err), w.window)
	information.SetOnClosed(func() { w.finishQuit(nil) })
	information.Show()
}

// saveFile asks for a destination and hands its path to write.
func (w *Window) saveFile(name string, extensions []string, write func(path string) error) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			w.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		w.run(write(path))
	}, w.window)
	save.SetFileName(name)
	save.SetFilter(fynestorage.NewExtensionFileFilter(extensions))
	save.Show()
}
