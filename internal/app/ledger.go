package app

import (
	"time"

	"timetracker/internal/core/ledger"
	"timetracker/internal/core/model"
)

// Date returns the displayed day.
func (c *Controller) Date() time.Time { return c.date }

// DateKey returns the displayed day as YYYY-MM-DD.
func (c *Controller) DateKey() string { return model.DateKey(c.date) }

// Filter returns the category filter of the activity list.
func (c *Controller) Filter() string { return c.filter }

// Categories returns the user categories, sorted.
func (c *Controller) Categories() []string { return c.ledger.Categories() }

// Totals returns the per-category totals of the displayed day.
func (c *Controller) Totals() ledger.Totals { return c.ledger.RecomputeTotals(c.DateKey()) }

// Rows returns the displayed day's activities matching the filter.
func (c *Controller) Rows() []ledger.Row { return c.ledger.Display(c.DateKey(), c.filter) }

// GoToDate shows day.
func (c *Controller) GoToDate(day time.Time) {
	c.date = model.StartOfDay(day)
	c.log.Debug().Str("date", c.DateKey()).Msg("date changed")
	c.changed()
}

// ParseAndGoToDate shows the day written as YYYY-MM-DD.
func (c *Controller) ParseAndGoToDate(value string) error {
	day, err := model.ParseDate(value)
	if err != nil {
		return err
	}
	c.GoToDate(day)
	return nil
}

// PrevDay shows the previous day.
func (c *Controller) PrevDay() { c.GoToDate(c.date.AddDate(0, 0, -1)) }

// NextDay shows the next day.
func (c *Controller) NextDay() { c.GoToDate(c.date.AddDate(0, 0, 1)) }

// Today shows the current day.
func (c *Controller) Today() { c.GoToDate(c.now()) }

// SetFilter narrows the activity list to one category. A concrete category
// also becomes the working category for the next timer start.
func (c *Controller) SetFilter(name string) {
	if name == "" || (name != model.AllCategory && !c.ledger.HasCategory(name)) {
		name = model.AllCategory
	}
	c.filter = name
	if name == model.AllCategory {
		c.selected = ""
	} else {
		c.selected = name
	}
	c.changed()
}

// AddCategory creates a category.
func (c *Controller) AddCategory(name string) error {
	added, err := c.ledger.AddCategory(name)
	if err != nil {
		return err
	}
	c.log.Info().Str("category", added).Msg("category added")
	return c.saveAndNotify()
}

// DeleteCategory removes an unused category. When it was the filter or the
// working category, those fall back to All and none.
func (c *Controller) DeleteCategory(name string) error {
	if err := c.ledger.DeleteCategory(name); err != nil {
		return err
	}
	if c.filter == name {
		c.filter = model.AllCategory
	}
	if c.selected == name {
		c.selected = ""
	}
	c.log.Info().Str("category", name).Msg("category deleted")
	return c.saveAndNotify()
}

// AddManual adds a manually entered activity to the displayed day.
func (c *Controller) AddManual(entry model.ManualEntry) error {
	record, err := model.NewManualRecord(entry)
	if err != nil {
		return err
	}
	if _, err := c.ledger.AddActivity(c.DateKey(), record); err != nil {
		return err
	}
	c.log.Info().
		Str("date", c.DateKey()).
		Str("category", record.Category).
		Msg("manual activity added")
	return c.saveAndNotify()
}

// EditActivity replaces the activity at index on the displayed day and
// recomputes its duration.
func (c *Controller) EditActivity(index int, entry model.ManualEntry) error {
	if _, err := c.ledger.Activity(c.DateKey(), index); err != nil {
		return err
	}
	record, err := model.NewManualRecord(entry)
	if err != nil {
		return err
	}
	if err := c.ledger.UpdateActivity(c.DateKey(), index, record); err != nil {
		return err
	}
	c.log.Info().Str("date", c.DateKey()).Int("index", index).Msg("activity edited")
	return c.saveAndNotify()
}

// DeleteActivity removes the activity at index on the displayed day.
func (c *Controller) DeleteActivity(index int) error {
	if err := c.ledger.DeleteActivity(c.DateKey(), index); err != nil {
		return err
	}
	c.log.Info().Str("date", c.DateKey()).Int("index", index).Msg("activity deleted")
	return c.saveAndNotify()
}

// Activity returns the activity at index on the displayed day.
func (c *Controller) Activity(index int) (model.ActivityRecord, error) {
	return c.ledger.Activity(c.DateKey(), index)
}

// ResolveIndex maps a record id on the displayed day to its current index.
func (c *Controller) ResolveIndex(id string) (int, error) {
	index, ok := c.ledger.IndexOf(c.DateKey(), id)
	if !ok {
		return -1, model.ErrIndexOutOfRange
	}
	return index, nil
}

// EntryFor returns the form values for editing the activity at index.
func (c *Controller) EntryFor(index int) (model.ManualEntry, error) {
	record, err := c.Activity(index)
	if err != nil {
		return model.ManualEntry{}, err
	}
	return model.ManualEntry{
		Category: record.Category,
		Name:     record.Name,
		Start:    record.Start.String(),
		End:      record.End.String(),
		Notes:    record.Notes,
	}, nil
}
