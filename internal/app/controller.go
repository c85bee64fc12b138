// Package app holds the application state and the commands the UI and CLI
// issue against it. All methods must be called from a single goroutine.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"timetracker/internal/core/ledger"
	"timetracker/internal/core/model"
	"timetracker/internal/core/timekeeper"
	"timetracker/internal/storage"
)

// DataStore persists the whole application document.
type DataStore interface {
	Load() (storage.Document, error)
	Save(storage.Document) error
	Backup(destination string) error
	Restore(source string) error
}

// Scheduler drives periodic ticks while a timer runs.
type Scheduler interface {
	Start()
	Stop()
}

type noopScheduler struct{}

func (noopScheduler) Start() {}
func (noopScheduler) Stop() {}

// Options configures a Controller.
type Options struct {
	Store        DataStore
	Logger       zerolog.Logger
	Now          func() time.Time
	Pomodoro     model.PomodoroConfig
	PomodoroMode bool
}

// Controller owns the ledger, the timer and the view state.
type Controller struct {
	log    zerolog.Logger
	store  DataStore
	now    func() time.Time
	ledger *ledger.Ledger
	engine *timekeeper.TimeKeeper

	display      model.DisplaySettings
	date         time.Time
	filter       string
	selected     string
	activityName string
	lastEvent    timekeeper.Event

	scheduler Scheduler
	onChange  func()
	onError   func(error)
	restored  bool
}

// New creates a controller with an empty ledger. Call Load before use.
func New(options Options) *Controller {
	now := options.Now
	if now == nil {
		now = time.Now
	}
	engine := timekeeper.New(options.Pomodoro)
	if options.PomodoroMode {
		_, _ = engine.SetMode(timekeeper.ModePomodoro, now())
	}

	book := ledger.New(nil, nil)
	book.SetActiveGuard(engine)

	controller := &Controller{
		log:       options.Logger,
		store:     options.Store,
		now:       now,
		ledger:    book,
		engine:    engine,
		display:   model.DefaultDisplaySettings(),
		date:      model.StartOfDay(now()),
		filter:    model.AllCategory,
		scheduler: noopScheduler{},
	}
	controller.lastEvent = engine.Tick(now())
	return controller
}

// SetScheduler installs the tick source started and stopped with the timer.
func (c *Controller) SetScheduler(scheduler Scheduler) {
	if scheduler == nil {
		scheduler = noopScheduler{}
	}
	c.scheduler = scheduler
}

// OnChange registers a callback invoked after every state change.
func (c *Controller) OnChange(fn func()) { c.onChange = fn }

// OnError registers a callback for failures that happen outside a command,
// such as saving a record produced by a timer expiry.
func (c *Controller) OnError(fn func(error)) { c.onError = fn }

// Load reads the data file into the ledger. A corrupt file still yields the
// decoded part; the error is returned for display.
func (c *Controller) Load() error {
	document, err := c.store.Load()
	switch {
	case errors.Is(err, model.ErrPersistenceCorrupt):
		c.log.Error().Stack().Err(err).Msg("data file is corrupt, continuing with recovered data")
	case err != nil:
		c.log.Error().Stack().Err(err).Msg("data file could not be initialized")
	}

	c.ledger = ledger.New(document.Categories, document.Activities)
	c.ledger.SetActiveGuard(c.engine)
	c.display = document.Settings.Normalize()
	c.date = model.StartOfDay(c.now())
	c.filter = model.AllCategory
	c.selected = ""

	c.log.Info().
		Int("categories", len(c.ledger.Categories())).
		Int("dates", len(c.ledger.Dates())).
		Msg("data loaded")
	c.changed()
	return err
}

// Save writes the whole document. After a restore nothing is written so the
// restored file survives until restart.
func (c *Controller) Save() error {
	if c.restored {
		return nil
	}
	if err := c.store.Save(c.Document()); err != nil {
		c.log.Error().Stack().Err(err).Msg("save failed")
		return err
	}
	return nil
}

// Document returns the persistable state.
func (c *Controller) Document() storage.Document {
	categories, activities := c.ledger.Snapshot()
	return storage.Document{
		Categories: categories,
		Activities: activities,
		Settings:   c.display,
	}
}

// Ledger exposes the ledger for read-only reporting.
func (c *Controller) Ledger() *ledger.Ledger { return c.ledger }

// Restored reports whether a backup replaced the data file this session.
func (c *Controller) Restored() bool { return c.restored }

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) reportError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

// saveAndNotify persists and then notifies, returning the save error.
func (c *Controller) saveAndNotify() error {
	err := c.Save()
	c.changed()
	return err
}

func (c *Controller) logCompletion(completion *timekeeper.Completion) error {
	if completion == nil {
		return nil
	}
	record, err := c.ledger.AddActivity(completion.Date, completion.Record)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	c.log.Info().
		Str("date", completion.Date).
		Str("category", record.Category).
		Str("name", record.Name).
		Float64("duration_seconds", record.DurationSeconds).
		Msg("activity logged")
	return nil
}
