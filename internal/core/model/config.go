package model

import "time"

// Pomodoro phase bounds accepted from user input.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60

	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// PomodoroConfig contains the phase lengths for the Pomodoro cycle.
type PomodoroConfig struct {
	Work  time.Duration
	Break time.Duration
}

// DefaultPomodoroConfig returns the classic 25/5 cycle.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		Work:  DefaultWorkMinutes * time.Minute,
		Break: DefaultBreakMinutes * time.Minute,
	}
}

// PomodoroFromMinutes clamps the minute values into range and converts them.
func PomodoroFromMinutes(workMinutes, breakMinutes int) PomodoroConfig {
	return PomodoroConfig{
		Work:  time.Duration(clamp(workMinutes, MinWorkMinutes, MaxWorkMinutes)) * time.Minute,
		Break: time.Duration(clamp(breakMinutes, MinBreakMinutes, MaxBreakMinutes)) * time.Minute,
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
