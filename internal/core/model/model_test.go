package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{500 * time.Millisecond, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1min"},
		{time.Hour, "1h"},
		{time.Hour + 3*time.Second, "1h3s"},
		{25*time.Minute + 30*time.Second, "25min30s"},
		{2*time.Hour + 5*time.Minute + 7*time.Second, "2h5min7s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.in), "duration %v", tc.in)
	}
}

func TestFormatDurationOmitsZeroUnits(t *testing.T) {
	for seconds := 0; seconds < 2*3600; seconds += 37 {
		got := FormatDuration(time.Duration(seconds) * time.Second)
		if seconds == 0 {
			assert.Equal(t, "0s", got)
			continue
		}
		assert.NotContains(t, got, "0h")
		if strings.HasPrefix(got, "0") {
			t.Fatalf("leading zero unit in %q", got)
		}
		assert.NotContains(t, got, "h0min")
		assert.NotContains(t, got, "min0s")
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(-time.Minute))
	assert.Equal(t, "00:25:30", FormatClock(25*time.Minute+30*time.Second))
	assert.Equal(t, "01:02:03", FormatClock(time.Hour+2*time.Minute+3*time.Second+900*time.Millisecond))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.43h", FormatHours(1530*time.Second))
	assert.Equal(t, "0.00h", FormatHours(0))
}

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, clock.Hour())
	assert.Equal(t, 5, clock.Minute())
	assert.Equal(t, "09:05", clock.String())

	clock, err = ParseClock(" 7:3 ")
	require.NoError(t, err)
	assert.Equal(t, "07:03", clock.String())

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "123:00", "12:345"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", bad)
	}
}

func TestClockJSON(t *testing.T) {
	data, err := json.Marshal(Clock(9*60 + 25))
	require.NoError(t, err)
	assert.Equal(t, `"09:25"`, string(data))

	var clock Clock
	require.NoError(t, json.Unmarshal([]byte(`"23:59"`), &clock))
	assert.Equal(t, Clock(23*60+59), clock)

	assert.ErrorIs(t, json.Unmarshal([]byte(`"25:00"`), &clock), ErrInvalidTimeFormat)
	assert.ErrorIs(t, json.Unmarshal([]byte(`12`), &clock), ErrInvalidTimeFormat)
}

func TestNewTimedRecord(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 4, 9, 25, 30, int(500*time.Millisecond), time.Local)

	record := NewTimedRecord("Work", "Draft report", start, end)
	assert.Equal(t, "Work", record.Category)
	assert.Equal(t, "Draft report", record.Name)
	assert.Equal(t, "09:00", record.Start.String())
	assert.Equal(t, "09:25", record.End.String())
	assert.Equal(t, 1530.5, record.DurationSeconds)
	assert.Equal(t, 1530*time.Second+500*time.Millisecond, record.Duration())
}

func TestNewManualRecord(t *testing.T) {
	record, err := NewManualRecord(ManualEntry{Category: "Work", Name: " Review ", Start: "10:00", End: "11:30", Notes: " n "})
	require.NoError(t, err)
	assert.Equal(t, "Review", record.Name)
	assert.Equal(t, "n", record.Notes)
	assert.Equal(t, 5400.0, record.DurationSeconds)
}

func TestNewManualRecordRollsOverMidnight(t *testing.T) {
	record, err := NewManualRecord(ManualEntry{Category: "Personal", Name: "Reading", Start: "23:30", End: "00:15"})
	require.NoError(t, err)
	assert.Equal(t, 45*60.0, record.DurationSeconds)

	record, err = NewManualRecord(ManualEntry{Category: "Personal", Name: "Same", Start: "08:00", End: "08:00"})
	require.NoError(t, err)
	assert.Equal(t, 24*3600.0, record.DurationSeconds)
}

func TestNewManualRecordIgnoresDaylightSaving(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"01:00", "03:00", 7200},
		{"00:30", "03:00", 9000},
		{"23:00", "04:00", 18000},
	}
	for _, tc := range cases {
		record, err := NewManualRecord(ManualEntry{Category: "Work", Name: "Shift", Start: tc.start, End: tc.end})
		require.NoError(t, err)
		assert.Equal(t, tc.want, record.DurationSeconds, "%s-%s", tc.start, tc.end)
	}
}

func TestNewManualRecordErrors(t *testing.T) {
	_, err := NewManualRecord(ManualEntry{Category: "Work", Name: "", Start: "10:00", End: "11:00"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = NewManualRecord(ManualEntry{Category: "Work", Name: "x", Start: "10", End: "11:00"})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", DateKey(parsed))

	_, err = ParseDate("2024/02/29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDisplaySettings(t *testing.T) {
	settings := DisplaySettings{DisplayColumns: []string{"bogus"}}.Normalize()
	assert.Equal(t, DefaultDisplaySettings(), settings)
	assert.True(t, settings.TimeFirst())

	settings.DisplayColumns = ActivityFirstColumns()
	assert.False(t, settings.TimeFirst())

	assert.Equal(t, "【Work】", BracketFullWidth.Wrap("Work"))
	assert.Equal(t, "[Work]", BracketSquare.Wrap("Work"))
	assert.Equal(t, BracketSquare, BracketFullWidth.Toggle())
}

func TestPomodoroFromMinutes(t *testing.T) {
	cfg := PomodoroFromMinutes(0, 500)
	assert.Equal(t, time.Minute, cfg.Work)
	assert.Equal(t, 60*time.Minute, cfg.Break)
}

func TestPersistenceErrorMatchesKindAndCause(t *testing.T) {
	cause := json.Unmarshal([]byte("{"), &struct{}{})
	err := &PersistenceError{Kind: ErrPersistenceCorrupt, Op: "load", Path: "x.json", Err: cause}
	assert.ErrorIs(t, err, ErrPersistenceCorrupt)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, err.Error(), "x.json")
}
