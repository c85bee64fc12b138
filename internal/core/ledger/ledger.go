// Package ledger holds categories and the date-indexed activity log.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"timetracker/internal/core/model"
)

// ActiveGuard reports which category the running timer logs against.
type ActiveGuard interface {
	ActiveCategory() (string, bool)
}

// Totals maps category names (including model.AllCategory) to a day's total.
type Totals map[string]time.Duration

// Of returns the total for name, zero when absent.
func (totals Totals) Of(name string) time.Duration {
	return totals[name]
}

// Row is a displayed activity paired with its index in the day's sequence.
type Row struct {
	Index  int
	Record model.ActivityRecord
}

// Ledger owns categories and activity records. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Ledger struct {
	categories []string
	known      map[string]struct{}
	activities map[string][]model.ActivityRecord
	guard      ActiveGuard
	newID      func() string
}

// New builds a ledger from persisted data. Blank, duplicate and reserved
// category names are skipped, empty days are dropped and records without an
// id receive one.
func New(categories []string, activities map[string][]model.ActivityRecord) *Ledger {
	ledger := &Ledger{
		known:      make(map[string]struct{}),
		activities: make(map[string][]model.ActivityRecord),
		newID:      func() string { return uuid.NewString() },
	}
	for _, name := range categories {
		name = strings.TrimSpace(name)
		if name == "" || name == model.AllCategory {
			continue
		}
		if _, exists := ledger.known[name]; exists {
			continue
		}
		ledger.known[name] = struct{}{}
		ledger.categories = append(ledger.categories, name)
	}
	for date, records := range activities {
		if len(records) == 0 {
			continue
		}
		day := make([]model.ActivityRecord, len(records))
		copy(day, records)
		for index := range day {
			if day[index].ID == "" {
				day[index].ID = ledger.newID()
			}
		}
		ledger.activities[date] = day
	}
	return ledger
}

// SetActiveGuard injects the running-timer check used by DeleteCategory.
func (ledger *Ledger) SetActiveGuard(guard ActiveGuard) {
	ledger.guard = guard
}

// Categories returns the user categories sorted by name.
func (ledger *Ledger) Categories() []string {
	names := append([]string(nil), ledger.categories...)
	sort.Strings(names)
	return names
}

// HasCategory reports whether name is a user category.
func (ledger *Ledger) HasCategory(name string) bool {
	_, ok := ledger.known[name]
	return ok
}

// AddCategory registers a new category and returns its trimmed name.
func (ledger *Ledger) AddCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrEmptyCategoryName
	}
	if name == model.AllCategory || ledger.HasCategory(name) {
		return "", fmt.Errorf("%q: %w", name, model.ErrDuplicateCategory)
	}
	ledger.known[name] = struct{}{}
	ledger.categories = append(ledger.categories, name)
	return name, nil
}

// DeleteCategory removes a category that no activity references.
func (ledger *Ledger) DeleteCategory(name string) error {
	if name == model.AllCategory {
		return fmt.Errorf("%q: %w", name, model.ErrReservedCategory)
	}
	if !ledger.HasCategory(name) {
		return fmt.Errorf("%q: %w", name, model.ErrUnknownCategory)
	}
	if ledger.guard != nil {
		if active, ok := ledger.guard.ActiveCategory(); ok && active == name {
			return fmt.Errorf("%q: %w", name, model.ErrCategoryActive)
		}
	}
	if ledger.referenced(name) {
		return fmt.Errorf("%q: %w", name, model.ErrCategoryInUse)
	}

	delete(ledger.known, name)
	for index, existing := range ledger.categories {
		if existing == name {
			ledger.categories = append(ledger.categories[:index], ledger.categories[index+1:]...)
			break
		}
	}
	return nil
}

func (ledger *Ledger) referenced(name string) bool {
	for _, records := range ledger.activities {
		for _, record := range records {
			if record.Category == name {
				return true
			}
		}
	}
	return false
}

// Activities returns a copy of the day's records in insertion order.
func (ledger *Ledger) Activities(date string) []model.ActivityRecord {
	return append([]model.ActivityRecord(nil), ledger.activities[date]...)
}

// Activity returns the record at index on date.
func (ledger *Ledger) Activity(date string, index int) (model.ActivityRecord, error) {
	records := ledger.activities[date]
	if index < 0 || index >= len(records) {
		return model.ActivityRecord{}, fmt.Errorf("%s[%d]: %w", date, index, model.ErrIndexOutOfRange)
	}
	return records[index], nil
}

// AddActivity appends record to date and returns it with its id set.
func (ledger *Ledger) AddActivity(date string, record model.ActivityRecord) (model.ActivityRecord, error) {
	if err := ledger.checkRecord(date, record); err != nil {
		return model.ActivityRecord{}, err
	}
	if record.ID == "" {
		record.ID = ledger.newID()
	}
	ledger.activities[date] = append(ledger.activities[date], record)
	return record, nil
}

// UpdateActivity replaces the record at index. The replacement keeps the
// original id; its duration is taken as given.
func (ledger *Ledger) UpdateActivity(date string, index int, record model.ActivityRecord) error {
	current, err := ledger.Activity(date, index)
	if err != nil {
		return err
	}
	if err := ledger.checkRecord(date, record); err != nil {
		return err
	}
	record.ID = current.ID
	ledger.activities[date][index] = record
	return nil
}

// DeleteActivity removes the record at index, dropping the day when empty.
func (ledger *Ledger) DeleteActivity(date string, index int) error {
	if _, err := ledger.Activity(date, index); err != nil {
		return err
	}
	records := ledger.activities[date]
	records = append(records[:index], records[index+1:]...)
	if len(records) == 0 {
		delete(ledger.activities, date)
		return nil
	}
	ledger.activities[date] = records
	return nil
}

func (ledger *Ledger) checkRecord(date string, record model.ActivityRecord) error {
	if _, err := model.ParseDate(date); err != nil {
		return err
	}
	if record.Category == model.AllCategory {
		return fmt.Errorf("%q: %w", record.Category, model.ErrReservedCategory)
	}
	if !ledger.HasCategory(record.Category) {
		return fmt.Errorf("%q: %w", record.Category, model.ErrUnknownCategory)
	}
	return nil
}

// IndexOf resolves a record id to its current index on date.
func (ledger *Ledger) IndexOf(date, id string) (int, bool) {
	for index, record := range ledger.activities[date] {
		if record.ID == id {
			return index, true
		}
	}
	return -1, false
}

// RecomputeTotals sums the day's durations per category and into All.
func (ledger *Ledger) RecomputeTotals(date string) Totals {
	totals := make(Totals, len(ledger.categories)+1)
	totals[model.AllCategory] = 0
	for _, name := range ledger.categories {
		totals[name] = 0
	}
	for _, record := range ledger.activities[date] {
		duration := record.Duration()
		totals[record.Category] += duration
		totals[model.AllCategory] += duration
	}
	return totals
}

// Display returns the day's records matching filter, sorted by start time.
// Records sharing a start time keep insertion order.
func (ledger *Ledger) Display(date, filter string) []Row {
	records := ledger.activities[date]
	rows := make([]Row, 0, len(records))
	for index, record := range records {
		if filter == "" || filter == model.AllCategory || record.Category == filter {
			rows = append(rows, Row{Index: index, Record: record})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Record.Start < rows[j].Record.Start
	})
	return rows
}

// Dates returns the dates holding activities, ascending.
func (ledger *Ledger) Dates() []string {
	dates := make([]string, 0, len(ledger.activities))
	for date := range ledger.activities {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Snapshot returns deep copies of the categories (in creation order) and
// activities for persistence.
func (ledger *Ledger) Snapshot() ([]string, map[string][]model.ActivityRecord) {
	categories := append([]string{}, ledger.categories...)
	activities := make(map[string][]model.ActivityRecord, len(ledger.activities))
	for date, records := range ledger.activities {
		activities[date] = append([]model.ActivityRecord(nil), records...)
	}
	return categories, activities
}
