package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AllCategory is the virtual category aggregating every other one.
const AllCategory = "All"

// PomodoroSuffix is appended to names of activities logged by a Pomodoro work phase.
const PomodoroSuffix = " (Pomodoro)"

const dateLayout = "2006-01-02"

// Clock is a time of day with minute resolution, stored as minutes since midnight.
type Clock int

// ClockOf returns the time of day of t, dropping seconds.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// ParseClock parses "H:MM" or "HH:MM".
func ParseClock(value string) (Clock, error) {
	hourText, minuteText, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || hourText == "" || minuteText == "" || len(hourText) > 2 || len(minuteText) > 2 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidTimeFormat)
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidTimeFormat)
	}
	return Clock(hour*60 + minute), nil
}

// Hour returns the hour component.
func (clock Clock) Hour() int { return int(clock) / 60 }

// Minute returns the minute component.
func (clock Clock) Minute() int { return int(clock) % 60 }

func (clock Clock) String() string {
	return fmt.Sprintf("%02d:%02d", clock.Hour(), clock.Minute())
}

// MarshalJSON encodes the clock as "HH:MM".
func (clock Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(clock.String())
}

// UnmarshalJSON decodes "HH:MM".
func (clock *Clock) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("clock: %w", ErrInvalidTimeFormat)
	}
	parsed, err := ParseClock(text)
	if err != nil {
		return err
	}
	*clock = parsed
	return nil
}

// ActivityRecord is one logged time span.
type ActivityRecord struct {
	ID              string  `json:"id,omitempty"`
	Category        string  `json:"category"`
	Name            string  `json:"name"`
	Start           Clock   `json:"start"`
	End             Clock   `json:"end"`
	DurationSeconds float64 `json:"duration_seconds"`
	Notes           string  `json:"notes"`
}

// Duration returns the stored duration.
func (record ActivityRecord) Duration() time.Duration {
	return time.Duration(record.DurationSeconds * float64(time.Second))
}

// NewTimedRecord builds a record for a timer session. The duration keeps
// fractions of a second.
func NewTimedRecord(category, name string, start, end time.Time) ActivityRecord {
	return ActivityRecord{
		Category:        category,
		Name:            name,
		Start:           ClockOf(start),
		End:             ClockOf(end),
		DurationSeconds: end.Sub(start).Seconds(),
	}
}

// ManualEntry is the raw form input for adding or editing an activity.
type ManualEntry struct {
	Category string
	Name     string
	Start    string
	End      string
	Notes    string
}

// NewManualRecord validates entry and computes its wall-clock duration.
// An end at or before the start is taken to be on the following day.
func NewManualRecord(entry ManualEntry) (ActivityRecord, error) {
	category := strings.TrimSpace(entry.Category)
	name := strings.TrimSpace(entry.Name)
	if category == "" || name == "" || strings.TrimSpace(entry.Start) == "" || strings.TrimSpace(entry.End) == "" {
		return ActivityRecord{}, ErrMissingField
	}
	start, err := ParseClock(entry.Start)
	if err != nil {
		return ActivityRecord{}, err
	}
	end, err := ParseClock(entry.End)
	if err != nil {
		return ActivityRecord{}, err
	}

	minutes := int(end) - int(start)
	if minutes <= 0 {
		minutes += 24 * 60
	}

	return ActivityRecord{
		Category:        category,
		Name:            name,
		Start:           start,
		End:             end,
		DurationSeconds: float64(minutes * 60),
		Notes:           strings.TrimSpace(entry.Notes),
	}, nil
}

// DateKey formats the ledger key for the calendar day of t.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD ledger key in the local time zone.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
	}
	return parsed, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
