package timekeeper

import (
	"strings"
	"time"

	"timetracker/internal/core/model"
)

// minPomodoroLog is the shortest manually stopped work phase that is logged.
const minPomodoroLog = time.Second

// TimeKeeper is the plain / Pomodoro timer state machine. Time is always
// passed in by the caller; the TimeKeeper never reads the wall clock.
// It is driven from a single goroutine.
type TimeKeeper struct {
	config         model.PomodoroConfig
	mode           Mode
	state          State
	startTime      time.Time
	endTime        time.Time
	activeCategory string
	activityName   string
}

// New creates an idle TimeKeeper in plain mode.
func New(config model.PomodoroConfig) *TimeKeeper {
	return &TimeKeeper{
		config: normalizeConfig(config),
		mode:   ModePlain,
		state:  StateIdle,
	}
}

func normalizeConfig(config model.PomodoroConfig) model.PomodoroConfig {
	defaults := model.DefaultPomodoroConfig()
	if config.Work <= 0 {
		config.Work = defaults.Work
	}
	if config.Break <= 0 {
		config.Break = defaults.Break
	}
	return config
}

// Mode returns the selected mode.
func (keeper *TimeKeeper) Mode() Mode { return keeper.mode }

// State returns the current state.
func (keeper *TimeKeeper) State() State { return keeper.state }

// Running reports whether a session is active.
func (keeper *TimeKeeper) Running() bool { return keeper.state.Running() }

// Config returns the Pomodoro phase lengths.
func (keeper *TimeKeeper) Config() model.PomodoroConfig { return keeper.config }

// StartTime returns when the current phase began.
func (keeper *TimeKeeper) StartTime() time.Time { return keeper.startTime }

// EndTime returns when the current Pomodoro phase expires.
func (keeper *TimeKeeper) EndTime() time.Time { return keeper.endTime }

// ActivityName returns the name the running session logs under.
func (keeper *TimeKeeper) ActivityName() string { return keeper.activityName }

// ActiveCategory returns the category the running session logs against.
// There is none while idle or during a break.
func (keeper *TimeKeeper) ActiveCategory() (string, bool) {
	if keeper.state != StatePlain && keeper.state != StateWork {
		return "", false
	}
	return keeper.activeCategory, keeper.activeCategory != ""
}

// UpdateConfig changes the phase lengths. A running phase keeps its end time.
func (keeper *TimeKeeper) UpdateConfig(config model.PomodoroConfig) {
	keeper.config = normalizeConfig(config)
}

// Start begins a session in the current mode.
func (keeper *TimeKeeper) Start(category, name string, now time.Time) error {
	if keeper.Running() {
		return model.ErrAlreadyRunning
	}
	category = strings.TrimSpace(category)
	if category == "" || category == model.AllCategory {
		return model.ErrNoCategorySelected
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ErrEmptyActivityName
	}

	keeper.activeCategory = category
	keeper.activityName = name
	keeper.startTime = now
	if keeper.mode == ModePomodoro {
		keeper.state = StateWork
		keeper.endTime = now.Add(keeper.config.Work)
	} else {
		keeper.state = StatePlain
		keeper.endTime = time.Time{}
	}
	return nil
}

// Stop ends the running session and returns the activity to log, if any.
// A plain session always logs; a work phase logs when it lasted more than a
// second; a break never logs.
func (keeper *TimeKeeper) Stop(now time.Time) (*Completion, error) {
	if !keeper.Running() {
		return nil, model.ErrNotRunning
	}

	var completion *Completion
	switch keeper.state {
	case StatePlain:
		completion = keeper.complete(keeper.activityName, now)
	case StateWork:
		if now.Sub(keeper.startTime) > minPomodoroLog {
			completion = keeper.complete(keeper.activityName+model.PomodoroSuffix, now)
		}
	}
	keeper.reset()
	return completion, nil
}

// SetMode switches between plain and Pomodoro. A running session is stopped
// first, logged according to the state it was in.
func (keeper *TimeKeeper) SetMode(mode Mode, now time.Time) (*Completion, error) {
	if mode != ModePlain && mode != ModePomodoro {
		mode = ModePlain
	}
	var completion *Completion
	if keeper.Running() {
		var err error
		completion, err = keeper.Stop(now)
		if err != nil {
			return nil, err
		}
	}
	keeper.mode = mode
	return completion, nil
}

// SelectCategory reassigns attribution of a running plain or work session.
// Records already logged are not affected. "All" is ignored.
func (keeper *TimeKeeper) SelectCategory(category string) {
	if category == "" || category == model.AllCategory {
		return
	}
	if keeper.state == StatePlain || keeper.state == StateWork {
		keeper.activeCategory = category
	}
}

// SetActivityName renames the running session. Blank names are ignored.
func (keeper *TimeKeeper) SetActivityName(name string) {
	name = strings.TrimSpace(name)
	if name == "" || !keeper.Running() {
		return
	}
	keeper.activityName = name
}

// Tick applies any phase expiry at now and returns the display value.
func (keeper *TimeKeeper) Tick(now time.Time) Event {
	event := Event{Previous: keeper.state, At: now}

	switch keeper.state {
	case StateWork:
		if !now.Before(keeper.endTime) {
			end := keeper.startTime.Add(keeper.config.Work)
			completion := keeper.complete(keeper.activityName+model.PomodoroSuffix, end)
			event.Completed = completion
			keeper.enterBreak(now)
		}
	case StateBreak:
		if !now.Before(keeper.endTime) {
			keeper.reset()
		}
	}

	event.State = keeper.state
	switch keeper.state {
	case StatePlain:
		event.Elapsed = now.Sub(keeper.startTime)
		event.Clock = model.FormatClock(event.Elapsed)
	case StateWork, StateBreak:
		event.Elapsed = now.Sub(keeper.startTime)
		event.Remaining = keeper.endTime.Sub(now)
		event.Clock = model.FormatClock(event.Remaining)
	default:
		event.Clock = model.FormatClock(0)
	}
	return event
}

func (keeper *TimeKeeper) complete(name string, end time.Time) *Completion {
	return &Completion{
		Date:   model.DateKey(keeper.startTime),
		Record: model.NewTimedRecord(keeper.activeCategory, name, keeper.startTime, end),
	}
}

func (keeper *TimeKeeper) enterBreak(now time.Time) {
	keeper.state = StateBreak
	keeper.startTime = now
	keeper.endTime = now.Add(keeper.config.Break)
	keeper.activeCategory = ""
}

func (keeper *TimeKeeper) reset() {
	keeper.state = StateIdle
	keeper.startTime = time.Time{}
	keeper.endTime = time.Time{}
	keeper.activeCategory = ""
	keeper.activityName = ""
}
