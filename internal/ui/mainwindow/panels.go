package mainwindow

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timetracker/internal/core/ledger"
	"timetracker/internal/core/model"
)

func (w *Window) buildDateBar() fyne.CanvasObject {
	w.dateEntry = widget.NewEntry()
	w.dateEntry.PlaceHolder = "YYYY-MM-DD"
	w.dateEntry.OnSubmitted = func(value string) {
		w.run(w.controller.ParseAndGoToDate(value))
	}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), w.controller.PrevDay)
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), w.controller.NextDay)
	goButton := widget.NewButton("Go", func() {
		w.run(w.controller.ParseAndGoToDate(w.dateEntry.Text))
	})
	today := widget.NewButton("Today", w.controller.Today)

	return container.NewBorder(nil, nil, prev, container.NewHBox(goButton, next, today), w.dateEntry)
}

func (w *Window) buildTimerPanel() fyne.CanvasObject {
	w.categorySelect = widget.NewSelect(nil, func(name string) {
		if w.syncing {
			return
		}
		w.controller.SelectCategory(name)
	})
	w.categorySelect.PlaceHolder = "Category"

	w.nameEntry = widget.NewEntry()
	w.nameEntry.PlaceHolder = "What are you working on?"
	w.nameEntry.OnChanged = func(value string) {
		if w.syncing {
			return
		}
		w.controller.SetActivityName(value)
	}
	w.nameEntry.OnSubmitted = func(string) { w.ToggleTimer() }

	w.clockLabel = widget.NewLabel("00:00:00")
	w.clockLabel.Alignment = fyne.TextAlignCenter
	w.clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	w.timerButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), w.ToggleTimer)

	form := container.NewBorder(nil, nil, w.categorySelect, nil, w.nameEntry)
	controls := container.NewBorder(nil, nil, nil, w.timerButton, w.clockLabel)
	return widget.NewCard("Timer", "", container.NewVBox(form, controls))
}

func (w *Window) buildPomodoroPanel() fyne.CanvasObject {
	w.pomodoroCheck = widget.NewCheck("Pomodoro mode", func(enabled bool) {
		if w.syncing {
			return
		}
		w.run(w.controller.SetPomodoroMode(enabled))
	})
	w.statusLabel = widget.NewLabel("Status: Idle")

	w.workEntry = widget.NewEntry()
	w.workEntry.OnSubmitted = func(string) { w.applyDurations() }
	w.breakEntry = widget.NewEntry()
	w.breakEntry.OnSubmitted = func(string) { w.applyDurations() }
	apply := widget.NewButton("Apply", w.applyDurations)

	lengths := container.NewHBox(
		widget.NewLabel("Work"), container.NewGridWrap(fyne.NewSize(60, w.workEntry.MinSize().Height), w.workEntry),
		widget.NewLabel("Break"), container.NewGridWrap(fyne.NewSize(60, w.breakEntry.MinSize().Height), w.breakEntry),
		widget.NewLabel("min"), apply,
	)
	header := container.NewHBox(w.pomodoroCheck, layout.NewSpacer(), w.statusLabel)
	return widget.NewCard("", "", container.NewVBox(header, lengths))
}

func (w *Window) buildCategoryPanel() fyne.CanvasObject {
	w.categoryEntry = widget.NewEntry()
	w.categoryEntry.PlaceHolder = "New category"
	w.categoryEntry.OnSubmitted = func(string) { w.addCategory() }
	add := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), w.addCategory)

	w.bracketButton = widget.NewButton(bracketLabel(model.BracketFullWidth), func() {
		w.run(w.controller.ToggleBracketStyle())
	})

	w.categoryBox = container.NewGridWithColumns(2)
	controls := container.NewBorder(nil, nil, nil, container.NewHBox(add, w.bracketButton), w.categoryEntry)
	return widget.NewCard("Categories", "", container.NewVBox(controls, w.categoryBox))
}

func (w *Window) rebuildCategories(categories []string) {
	totals := w.controller.Totals()
	filter := w.controller.Filter()

	objects := make([]fyne.CanvasObject, 0, len(categories)+1)
	objects = append(objects, w.filterButton(model.AllCategory, totals, filter))
	for _, name := range categories {
		remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Delete Category", fmt.Sprintf("Delete the category %q?", name), func(confirmed bool) {
				if confirmed {
					w.run(w.controller.DeleteCategory(name))
				}
			}, w.window)
		})
		objects = append(objects, container.NewBorder(nil, nil, nil, remove, w.filterButton(name, totals, filter)))
	}
	w.categoryBox.Objects = objects
	w.categoryBox.Refresh()
}

func (w *Window) filterButton(name string, totals ledger.Totals, filter string) *widget.Button {
	button := widget.NewButton(categoryLabel(name, totals.Of(name)), func() {
		w.controller.SetFilter(name)
	})
	if name == filter {
		button.Importance = widget.HighImportance
	}
	return button
}

func (w *Window) buildActivityPanel() fyne.CanvasObject {
	w.listHeader = widget.NewLabel("")
	w.listHeader.TextStyle = fyne.TextStyle{Bold: true}

	w.activityList = widget.NewList(
		func() int { return len(w.rows) },
		func() fyne.CanvasObject {
			buttons := container.NewHBox(
				widget.NewButtonWithIcon("", theme.ContentCopyIcon(), nil),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
			)
			cells := container.NewGridWithColumns(3, widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""))
			return container.NewBorder(nil, nil, nil, buttons, cells)
		},
		w.updateRow,
	)

	w.totalButton = widget.NewButton("Total Time: 0.00h", func() {
		w.copyText(w.controller.CopyTotal())
	})
	w.totalButton.Importance = widget.LowImportance

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon("Copy All", theme.ContentCopyIcon(), w.copyAll),
		widget.NewButtonWithIcon("Add Manually", theme.ContentAddIcon(), func() { w.showActivityDialog(nil) }),
		widget.NewButtonWithIcon("Export TXT", theme.DocumentSaveIcon(), w.exportText),
		widget.NewButtonWithIcon("Export PDF", theme.DocumentPrintIcon(), w.exportPDF),
		layout.NewSpacer(),
		w.totalButton,
	)
	return container.NewBorder(w.listHeader, toolbar, nil, nil, w.activityList)
}

func (w *Window) updateRow(id widget.ListItemID, object fyne.CanvasObject) {
	if id < 0 || id >= len(w.rows) {
		return
	}
	row := w.rows[id]
	box := object.(*fyne.Container)
	cells := box.Objects[0].(*fyne.Container)
	buttons := box.Objects[1].(*fyne.Container)

	texts := rowCells(row.Record, w.controller.Display())
	for index, cell := range cells.Objects {
		label := cell.(*widget.Label)
		if index < len(texts) {
			label.SetText(texts[index])
		} else {
			label.SetText("")
		}
	}

	recordID := row.Record.ID
	buttons.Objects[0].(*widget.Button).OnTapped = func() {
		index, err := w.controller.ResolveIndex(recordID)
		if err != nil {
			w.showError(err)
			return
		}
		line, err := w.controller.CopyActivity(index)
		if err != nil {
			w.showError(err)
			return
		}
		w.copyText(line)
	}
	buttons.Objects[1].(*widget.Button).OnTapped = func() {
		w.showActivityDialog(&recordID)
	}
	buttons.Objects[2].(*widget.Button).OnTapped = func() {
		w.confirmDeleteActivity(recordID, row.Record.Name)
	}
}

// ToggleTimer starts or stops the timer, reporting failures in a dialog.
func (w *Window) ToggleTimer() {
	w.run(w.controller.ToggleTimer())
}

func (w *Window) applyDurations() {
	work, workOK := parseMinutes(w.workEntry.Text)
	rest, restOK := parseMinutes(w.breakEntry.Text)
	if !workOK || !restOK {
		w.showError(errors.New("work and break lengths must be whole minutes"))
		return
	}
	config := w.controller.SetPomodoroDurations(work, rest)
	if w.callbacks.OnDurations != nil {
		w.callbacks.OnDurations(config)
	}
}

func (w *Window) addCategory() {
	if err := w.controller.AddCategory(w.categoryEntry.Text); err != nil {
		w.showError(err)
		return
	}
	w.categoryEntry.SetText("")
}

func (w *Window) copyAll() {
	text, err := w.controller.CopyAll()
	if err != nil {
		w.showError(err)
		return
	}
	w.copyText(text)
}
