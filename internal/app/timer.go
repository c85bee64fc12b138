package app

import (
	"strings"
	"time"

	"timetracker/internal/core/model"
	"timetracker/internal/core/timekeeper"
)

// Running reports whether a timer session is active.
func (c *Controller) Running() bool { return c.engine.Running() }

// State returns the timer state.
func (c *Controller) State() timekeeper.State { return c.engine.State() }

// PomodoroMode reports whether Pomodoro mode is selected.
func (c *Controller) PomodoroMode() bool { return c.engine.Mode() == timekeeper.ModePomodoro }

// PomodoroConfig returns the phase lengths.
func (c *Controller) PomodoroConfig() model.PomodoroConfig { return c.engine.Config() }

// LastEvent returns the most recent tick result.
func (c *Controller) LastEvent() timekeeper.Event { return c.lastEvent }

// ActiveCategory returns the category the running timer logs against.
func (c *Controller) ActiveCategory() (string, bool) { return c.engine.ActiveCategory() }

// Title is the window title while a timer runs, e.g. "00:12:03 - Work".
func (c *Controller) Title(base string) string {
	if !c.engine.Running() {
		return base
	}
	return c.lastEvent.Clock + " - " + c.engine.State().Label()
}

// ToggleTimer starts a stopped timer or stops a running one.
func (c *Controller) ToggleTimer() error {
	if c.engine.Running() {
		return c.StopTimer()
	}
	return c.StartTimer()
}

// StartTimer starts a session for the selected category and activity name.
func (c *Controller) StartTimer() error {
	now := c.now()
	if err := c.engine.Start(c.selected, c.activityName, now); err != nil {
		return err
	}
	c.log.Info().
		Str("category", c.selected).
		Str("mode", string(c.engine.Mode())).
		Msg("timer started")
	c.scheduler.Start()
	c.lastEvent = c.engine.Tick(now)
	c.changed()
	return nil
}

// StopTimer stops the running session, logging it when the rules allow.
// During a break this skips the rest of the break.
func (c *Controller) StopTimer() error {
	now := c.now()
	completion, err := c.engine.Stop(now)
	if err != nil {
		return err
	}
	return c.afterStop(completion, now)
}

func (c *Controller) afterStop(completion *timekeeper.Completion, now time.Time) error {
	c.scheduler.Stop()
	c.lastEvent = c.engine.Tick(now)
	if err := c.logCompletion(completion); err != nil {
		c.changed()
		return err
	}
	c.log.Info().Bool("logged", completion != nil).Msg("timer stopped")
	return c.saveAndNotify()
}

// Tick advances the timer to now. Work expiry logs the session and starts
// the break; break expiry returns to idle and stops the scheduler.
func (c *Controller) Tick(now time.Time) timekeeper.Event {
	event := c.engine.Tick(now)
	c.lastEvent = event

	if !event.Transitioned() && event.Completed == nil {
		c.changed()
		return event
	}

	if err := c.logCompletion(event.Completed); err != nil {
		c.log.Error().Err(err).Msg("pomodoro work phase could not be logged")
		c.reportError(err)
	}
	if !event.State.Running() {
		c.scheduler.Stop()
	}
	c.log.Info().
		Str("from", string(event.Previous)).
		Str("to", string(event.State)).
		Msg("timer phase changed")
	if err := c.saveAndNotify(); err != nil {
		c.reportError(err)
	}
	return event
}

// SetPomodoroMode switches modes, force-stopping a running session first.
func (c *Controller) SetPomodoroMode(enabled bool) error {
	mode := timekeeper.ModePlain
	if enabled {
		mode = timekeeper.ModePomodoro
	}
	if mode == c.engine.Mode() {
		return nil
	}

	wasRunning := c.engine.Running()
	now := c.now()
	completion, err := c.engine.SetMode(mode, now)
	if err != nil {
		return err
	}
	c.log.Info().Str("mode", string(mode)).Msg("timer mode changed")
	if wasRunning {
		return c.afterStop(completion, now)
	}
	c.lastEvent = c.engine.Tick(now)
	c.changed()
	return nil
}

// SetPomodoroDurations updates the phase lengths, clamped into range.
func (c *Controller) SetPomodoroDurations(workMinutes, breakMinutes int) model.PomodoroConfig {
	config := model.PomodoroFromMinutes(workMinutes, breakMinutes)
	c.engine.UpdateConfig(config)
	c.changed()
	return config
}

// SelectCategory picks the working category from the timer selector. It
// also becomes the view filter, and a running session logs against it from
// now on.
func (c *Controller) SelectCategory(name string) {
	c.engine.SelectCategory(name)
	c.SetFilter(name)
}

// SetActivityName sets what the timer logs as the activity name.
func (c *Controller) SetActivityName(name string) {
	c.activityName = strings.TrimSpace(name)
	c.engine.SetActivityName(name)
}

// ActivityName returns the current activity name.
func (c *Controller) ActivityName() string { return c.activityName }

// Selected returns the working category, empty when none is selected.
func (c *Controller) Selected() string { return c.selected }
