package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/core/model"
	"timetracker/internal/core/timekeeper"
	"timetracker/internal/storage"
)

type fakeStore struct {
	document   storage.Document
	loadErr    error
	saveErr    error
	restoreErr error
	saves      int
	backups    []string
	restores   []string
}

func (store *fakeStore) Load() (storage.Document, error) { return store.document, store.loadErr }

func (store *fakeStore) Save(document storage.Document) error {
	if store.saveErr != nil {
		return store.saveErr
	}
	store.saves++
	store.document = document
	return nil
}

func (store *fakeStore) Backup(destination string) error {
	store.backups = append(store.backups, destination)
	return nil
}

func (store *fakeStore) Restore(source string) error {
	store.restores = append(store.restores, source)
	if store.restoreErr != nil {
		return store.restoreErr
	}
	return model.ErrRestartRequired
}

type fakeScheduler struct {
	active bool
	starts int
	stops  int
}

func (scheduler *fakeScheduler) Start() { scheduler.active = true; scheduler.starts++ }
func (scheduler *fakeScheduler) Stop() { scheduler.active = false; scheduler.stops++ }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Set(hour, minute, second int) { c.now = at(hour, minute, second) }

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, second, 0, time.Local)
}

type fixture struct {
	controller *Controller
	store      *fakeStore
	scheduler  *fakeScheduler
	clock      *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &fakeStore{document: storage.NewDocument()}
	scheduler := &fakeScheduler{}
	fakeClock := &clock{now: at(9, 0, 0)}

	controller := New(Options{
		Store:    store,
		Logger:   zerolog.Nop(),
		Now:      fakeClock.Now,
		Pomodoro: model.DefaultPomodoroConfig(),
	})
	controller.SetScheduler(scheduler)
	require.NoError(t, controller.Load())

	return &fixture{controller: controller, store: store, scheduler: scheduler, clock: fakeClock}
}

func TestLoadStartsOnTodayWithAllFilter(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "2024-03-04", f.controller.DateKey())
	assert.Equal(t, model.AllCategory, f.controller.Filter())
	assert.Equal(t, []string{"Lunch Break", "Personal", "Study", "Work"}, f.controller.Categories())
	assert.Equal(t, model.DefaultDisplaySettings(), f.controller.Display())
}

func TestLoadCorruptKeepsRecoveredData(t *testing.T) {
	store := &fakeStore{
		document: storage.Document{Categories: []string{"Work"}},
		loadErr:  &model.PersistenceError{Kind: model.ErrPersistenceCorrupt, Op: "load", Err: errors.New("bad")},
	}
	controller := New(Options{Store: store, Logger: zerolog.Nop()})

	err := controller.Load()
	assert.ErrorIs(t, err, model.ErrPersistenceCorrupt)
	assert.Equal(t, []string{"Work"}, controller.Categories())
}

func TestPlainTimerLogsAndSaves(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.controller.StartTimer(), model.ErrNoCategorySelected)

	f.controller.SelectCategory("Work")
	assert.ErrorIs(t, f.controller.StartTimer(), model.ErrEmptyActivityName)

	f.controller.SetActivityName("Draft report")
	require.NoError(t, f.controller.ToggleTimer())
	assert.True(t, f.scheduler.active)
	assert.Equal(t, "Tracking", f.controller.State().Label())

	f.clock.Set(9, 10, 0)
	event := f.controller.Tick(f.clock.Now())
	assert.Equal(t, "00:10:00", event.Clock)
	assert.Equal(t, "00:10:00 - Tracking", f.controller.Title("TimeTracker"))

	saves := f.store.saves
	f.clock.Set(9, 25, 30)
	require.NoError(t, f.controller.ToggleTimer())
	assert.False(t, f.scheduler.active)
	assert.Equal(t, saves+1, f.store.saves)
	assert.Equal(t, "TimeTracker", f.controller.Title("TimeTracker"))

	rows := f.controller.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1530.0, rows[0].Record.DurationSeconds)
	assert.Equal(t, "Draft report", rows[0].Record.Name)
	assert.Len(t, f.store.document.Activities["2024-03-04"], 1)
	assert.Equal(t, 1530*time.Second, f.controller.Totals().Of("Work"))
}

func TestPomodoroCycleThroughTicks(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.SetPomodoroMode(true))
	f.controller.SelectCategory("Study")
	f.controller.SetActivityName("Chapter 3")

	f.clock.Set(10, 0, 0)
	require.NoError(t, f.controller.StartTimer())

	event := f.controller.Tick(at(10, 25, 1))
	assert.Equal(t, timekeeper.StateBreak, event.State)
	assert.True(t, f.scheduler.active, "scheduler keeps running through the break")

	rows := f.controller.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Chapter 3 (Pomodoro)", rows[0].Record.Name)
	assert.Equal(t, "10:25", rows[0].Record.End.String())
	assert.Equal(t, 1500.0, rows[0].Record.DurationSeconds)

	event = f.controller.Tick(at(10, 30, 1))
	assert.Equal(t, timekeeper.StateIdle, event.State)
	assert.False(t, f.scheduler.active, "break expiry stops the scheduler")
	assert.Len(t, f.controller.Rows(), 1, "breaks are never logged")
}

func TestTickSaveFailureIsReported(t *testing.T) {
	f := newFixture(t)
	var reported []error
	f.controller.OnError(func(err error) { reported = append(reported, err) })

	require.NoError(t, f.controller.SetPomodoroMode(true))
	f.controller.SelectCategory("Work")
	f.controller.SetActivityName("x")
	f.clock.Set(10, 0, 0)
	require.NoError(t, f.controller.StartTimer())

	f.store.saveErr = &model.PersistenceError{Kind: model.ErrPersistenceWriteFailure, Op: "save"}
	f.controller.Tick(at(10, 25, 0))

	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], model.ErrPersistenceWriteFailure)
	assert.Len(t, f.controller.Rows(), 1, "record stays in memory")
}

func TestModeToggleWhileRunningLogsPlainSession(t *testing.T) {
	f := newFixture(t)
	f.controller.SelectCategory("Work")
	f.controller.SetActivityName("plain")
	require.NoError(t, f.controller.StartTimer())

	f.clock.Set(9, 30, 0)
	require.NoError(t, f.controller.SetPomodoroMode(true))
	assert.False(t, f.controller.Running())
	assert.True(t, f.controller.PomodoroMode())
	assert.False(t, f.scheduler.active)

	rows := f.controller.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "plain", rows[0].Record.Name)
	assert.Equal(t, 1800.0, rows[0].Record.DurationSeconds)
}

func TestSelectCategoryWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.controller.SelectCategory("Work")
	f.controller.SetActivityName("x")
	require.NoError(t, f.controller.StartTimer())

	f.controller.SelectCategory("Study")
	category, ok := f.controller.ActiveCategory()
	require.True(t, ok)
	assert.Equal(t, "Study", category)

	f.controller.SelectCategory(model.AllCategory)
	category, _ = f.controller.ActiveCategory()
	assert.Equal(t, "Study", category, "All keeps the current attribution")
	assert.Equal(t, model.AllCategory, f.controller.Filter())

	f.clock.Set(9, 5, 0)
	require.NoError(t, f.controller.StopTimer())
	assert.Equal(t, "Study", f.controller.Rows()[0].Record.Category)
}

func TestSetPomodoroDurationsClamps(t *testing.T) {
	f := newFixture(t)
	config := f.controller.SetPomodoroDurations(0, 500)
	assert.Equal(t, time.Minute, config.Work)
	assert.Equal(t, 60*time.Minute, config.Break)
	assert.Equal(t, config, f.controller.PomodoroConfig())
}

func TestDateNavigation(t *testing.T) {
	f := newFixture(t)

	f.controller.PrevDay()
	assert.Equal(t, "2024-03-03", f.controller.DateKey())
	f.controller.NextDay()
	f.controller.NextDay()
	assert.Equal(t, "2024-03-05", f.controller.DateKey())

	assert.ErrorIs(t, f.controller.ParseAndGoToDate("03/04/2024"), model.ErrInvalidDate)
	assert.Equal(t, "2024-03-05", f.controller.DateKey())

	require.NoError(t, f.controller.ParseAndGoToDate("2023-12-31"))
	assert.Equal(t, "2023-12-31", f.controller.DateKey())

	f.controller.Today()
	assert.Equal(t, "2024-03-04", f.controller.DateKey())
}

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.controller.AddCategory("  Reading "))
	assert.Contains(t, f.store.document.Categories, "Reading")
	assert.ErrorIs(t, f.controller.AddCategory("Reading"), model.ErrDuplicateCategory)

	f.controller.SetFilter("Reading")
	assert.Equal(t, "Reading", f.controller.Selected())
	require.NoError(t, f.controller.DeleteCategory("Reading"))
	assert.Equal(t, model.AllCategory, f.controller.Filter())
	assert.Empty(t, f.controller.Selected())
	assert.NotContains(t, f.store.document.Categories, "Reading")
}

func TestDeleteActiveCategoryRefused(t *testing.T) {
	f := newFixture(t)
	f.controller.SelectCategory("Personal")
	f.controller.SetActivityName("x")
	require.NoError(t, f.controller.StartTimer())

	assert.ErrorIs(t, f.controller.DeleteCategory("Personal"), model.ErrCategoryActive)
	assert.ErrorIs(t, f.controller.DeleteCategory(model.AllCategory), model.ErrReservedCategory)
}

func TestManualActivities(t *testing.T) {
	f := newFixture(t)

	err := f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "Night shift", Start: "22:00", End: "02:00"})
	require.NoError(t, err)
	err = f.controller.AddManual(model.ManualEntry{Category: "Study", Name: "Morning", Start: "7:30", End: "8:00", Notes: "flashcards"})
	require.NoError(t, err)

	rows := f.controller.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Morning", rows[0].Record.Name)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 4*3600.0, rows[1].Record.DurationSeconds)

	assert.ErrorIs(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "x", Start: "25:00", End: "26:00"}), model.ErrInvalidTimeFormat)
	assert.ErrorIs(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Start: "09:00", End: "10:00"}), model.ErrMissingField)
	assert.ErrorIs(t, f.controller.AddManual(model.ManualEntry{Category: "Ghost", Name: "x", Start: "09:00", End: "10:00"}), model.ErrUnknownCategory)

	index, err := f.controller.ResolveIndex(rows[0].Record.ID)
	require.NoError(t, err)
	entry, err := f.controller.EntryFor(index)
	require.NoError(t, err)
	assert.Equal(t, "07:30", entry.Start)
	assert.Equal(t, "flashcards", entry.Notes)

	entry.End = "09:00"
	require.NoError(t, f.controller.EditActivity(index, entry))
	edited, err := f.controller.Activity(index)
	require.NoError(t, err)
	assert.Equal(t, 5400.0, edited.DurationSeconds, "duration is recomputed")
	assert.Equal(t, rows[0].Record.ID, edited.ID)

	assert.ErrorIs(t, f.controller.EditActivity(7, entry), model.ErrIndexOutOfRange)

	require.NoError(t, f.controller.DeleteActivity(0))
	require.NoError(t, f.controller.DeleteActivity(0))
	assert.Empty(t, f.controller.Rows())
	assert.NotContains(t, f.store.document.Activities, "2024-03-04")

	_, err = f.controller.ResolveIndex("missing")
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
}

func TestManualDurationOnDaylightSavingDay(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	local := time.Local
	time.Local = newYork
	t.Cleanup(func() { time.Local = local })

	f := newFixture(t)
	require.NoError(t, f.controller.ParseAndGoToDate("2024-03-10"))
	require.NoError(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "Early", Start: "01:00", End: "03:00"}))
	require.NoError(t, f.controller.ParseAndGoToDate("2024-11-03"))
	require.NoError(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "Late", Start: "00:30", End: "03:00"}))

	spring := f.store.document.Activities["2024-03-10"]
	require.Len(t, spring, 1)
	assert.Equal(t, 7200.0, spring[0].DurationSeconds)
	fall := f.store.document.Activities["2024-11-03"]
	require.Len(t, fall, 1)
	assert.Equal(t, 9000.0, fall[0].DurationSeconds)
}

func TestCopyOperations(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.SetBracketStyle(model.BracketSquare))

	_, err := f.controller.CopyAll()
	assert.ErrorIs(t, err, model.ErrNothingToCopy)

	require.NoError(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "B", Start: "10:00", End: "11:00"}))
	require.NoError(t, f.controller.AddManual(model.ManualEntry{Category: "Study", Name: "A", Start: "09:00", End: "09:30"}))

	line, err := f.controller.CopyActivity(0)
	require.NoError(t, err)
	assert.Equal(t, "10:00-11:00 [Work] B", line)

	all, err := f.controller.CopyAll()
	require.NoError(t, err)
	assert.Equal(t, "09:00-09:30 [Study] A\n10:00-11:00 [Work] B", all)

	assert.Equal(t, "Total Time: 1.50h", f.controller.CopyTotal())
	f.controller.SetFilter("Work")
	assert.Equal(t, "Work Time: 1.00h", f.controller.CopyTotal())

	require.NoError(t, f.controller.SetTimeFirst(false))
	line, err = f.controller.CopyActivity(0)
	require.NoError(t, err)
	assert.Equal(t, "[Work] B 10:00-11:00", line)

	require.NoError(t, f.controller.ToggleBracketStyle())
	assert.Equal(t, model.BracketFullWidth, f.store.document.Settings.BracketStyle)
}

func TestExports(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	assert.ErrorIs(t, f.controller.ExportText(filepath.Join(dir, "empty.txt")), model.ErrNothingToExport)

	require.NoError(t, f.controller.AddManual(model.ManualEntry{Category: "Work", Name: "Plan", Start: "09:00", End: "10:00", Notes: "q2"}))

	textPath := filepath.Join(dir, "2024-03-04_report.txt")
	require.NoError(t, f.controller.ExportText(textPath))
	content, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Daily Activities for 2024-03-04\n"))
	assert.Contains(t, string(content), "  Notes: q2\n")
	assert.Contains(t, string(content), "Work Time: 1.00h\n")

	pdfPath := filepath.Join(dir, "2024-03-04_report.pdf")
	require.NoError(t, f.controller.ExportPDF(pdfPath))
	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDisplaySettingValidation(t *testing.T) {
	f := newFixture(t)

	assert.Error(t, f.controller.SetTheme("solar"))
	require.NoError(t, f.controller.SetTheme(model.ThemeLight))
	assert.Equal(t, model.ThemeLight, f.store.document.Settings.Theme)

	assert.Error(t, f.controller.SetDisplayColumns([]string{"time", "bogus"}))
	assert.Error(t, f.controller.SetBracketStyle("round"))

	f.controller.SetWindowGeometry("1024x768")
	require.NoError(t, f.controller.Save())
	assert.Equal(t, "1024x768", f.store.document.Settings.WindowGeometry)
}

func TestSaveFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.store.saveErr = &model.PersistenceError{Kind: model.ErrPersistenceWriteFailure, Op: "save"}

	err := f.controller.AddCategory("Reading")
	assert.ErrorIs(t, err, model.ErrPersistenceWriteFailure)
	assert.Contains(t, f.controller.Categories(), "Reading")
}

func TestBackupSavesFirst(t *testing.T) {
	f := newFixture(t)
	saves := f.store.saves

	require.NoError(t, f.controller.Backup("/backups/b.json"))
	assert.Equal(t, saves+1, f.store.saves)
	assert.Equal(t, []string{"/backups/b.json"}, f.store.backups)
}

func TestRestoreDisablesSaving(t *testing.T) {
	f := newFixture(t)
	f.store.restoreErr = &model.PersistenceError{Kind: model.ErrPersistenceCorrupt, Op: "restore"}
	assert.ErrorIs(t, f.controller.Restore("/bad.json"), model.ErrPersistenceCorrupt)
	assert.False(t, f.controller.Restored())

	f.store.restoreErr = nil
	assert.ErrorIs(t, f.controller.Restore("/good.json"), model.ErrRestartRequired)
	assert.True(t, f.controller.Restored())

	saves := f.store.saves
	require.NoError(t, f.controller.AddCategory("Reading"))
	require.NoError(t, f.controller.Close(false))
	assert.Equal(t, saves, f.store.saves, "restored file is not overwritten")
}

func TestCloseRequiresConfirmationWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.controller.SelectCategory("Work")
	f.controller.SetActivityName("late work")
	require.NoError(t, f.controller.StartTimer())

	assert.ErrorIs(t, f.controller.Close(false), model.ErrConfirmationRequired)
	assert.True(t, f.controller.Running())

	f.clock.Set(9, 45, 0)
	require.NoError(t, f.controller.Close(true))
	assert.False(t, f.controller.Running())
	assert.False(t, f.scheduler.active)
	require.Len(t, f.store.document.Activities["2024-03-04"], 1)
	assert.Equal(t, 2700.0, f.store.document.Activities["2024-03-04"][0].DurationSeconds)
}

func TestOnChangeFires(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.controller.OnChange(func() { calls++ })

	f.controller.NextDay()
	f.controller.SetFilter("Work")
	require.NoError(t, f.controller.AddCategory("Reading"))
	assert.Equal(t, 3, calls)
}
