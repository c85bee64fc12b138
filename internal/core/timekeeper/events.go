package timekeeper

import (
	"time"

	"timetracker/internal/core/model"
)

// Mode selects plain tracking or Pomodoro cycles.
type Mode string

const (
	ModePlain    Mode = "plain"
	ModePomodoro Mode = "pomodoro"
)

// State represents the current TimeKeeper state.
type State string

const (
	StateIdle  State = "idle"
	StatePlain State = "running_plain"
	StateWork  State = "pomodoro_work"
	StateBreak State = "pomodoro_break"
)

// Running reports whether the state is one of the running states.
func (state State) Running() bool {
	return state != StateIdle && state != ""
}

// Label is the short status shown in the window title and tray.
func (state State) Label() string {
	switch state {
	case StatePlain:
		return "Tracking"
	case StateWork:
		return "Work"
	case StateBreak:
		return "Break"
	default:
		return "Idle"
	}
}

// Completion is an activity produced by the end of a session, dated by the
// day the session started.
type Completion struct {
	Date   string
	Record model.ActivityRecord
}

// Event is the result of a tick: the display value after any expiry
// transition has been applied.
type Event struct {
	State     State
	Previous  State
	Clock     string
	Elapsed   time.Duration
	Remaining time.Duration
	Completed *Completion
	At        time.Time
}

// Transitioned reports whether the tick changed state.
func (event Event) Transitioned() bool {
	return event.State != event.Previous
}
