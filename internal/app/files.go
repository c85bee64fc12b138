package app

import (
	"errors"
	"fmt"
	"os"

	"timetracker/internal/core/model"
	"timetracker/internal/report"
)

// Backup saves the current state and copies the data file to destination.
func (c *Controller) Backup(destination string) error {
	if err := c.Save(); err != nil {
		return err
	}
	if err := c.store.Backup(destination); err != nil {
		c.log.Error().Err(err).Str("path", destination).Msg("backup failed")
		return err
	}
	c.log.Info().Str("path", destination).Msg("backup written")
	return nil
}

// Restore replaces the data file with the backup at source. On success it
// returns ErrRestartRequired and no further saves happen this session.
func (c *Controller) Restore(source string) error {
	err := c.store.Restore(source)
	if errors.Is(err, model.ErrRestartRequired) {
		c.restored = true
		c.scheduler.Stop()
		c.log.Warn().Str("path", source).Msg("data restored, restart required")
		return err
	}
	if err != nil {
		c.log.Error().Err(err).Str("path", source).Msg("restore failed")
	}
	return err
}

// DailyReport returns the report data for the displayed day.
func (c *Controller) DailyReport() report.Daily {
	return report.NewDaily(c.ledger, c.DateKey())
}

// ExportText writes the displayed day's text report to path.
func (c *Controller) ExportText(path string) error {
	text, err := c.DailyReport().Text(c.display)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	c.log.Info().Str("date", c.DateKey()).Str("path", path).Msg("text report exported")
	return nil
}

// ExportPDF writes the displayed day's PDF report to path.
func (c *Controller) ExportPDF(path string) error {
	if err := c.DailyReport().WritePDF(path, c.display); err != nil {
		return err
	}
	c.log.Info().Str("date", c.DateKey()).Str("path", path).Msg("pdf report exported")
	return nil
}

// CopyActivity returns the clipboard line for the activity at index.
func (c *Controller) CopyActivity(index int) (string, error) {
	record, err := c.Activity(index)
	if err != nil {
		return "", err
	}
	return report.ActivityLine(record, c.display), nil
}

// CopyAll returns the clipboard text for the filtered activity list.
func (c *Controller) CopyAll() (string, error) {
	return report.CopyAll(c.Rows(), c.display)
}

// CopyTotal returns the clipboard text for the filter's total.
func (c *Controller) CopyTotal() string {
	return report.TotalLine(c.filter, c.Totals().Of(c.filter))
}

// Close prepares for exit. A running timer needs confirmation; once
// confirmed it is stopped and logged before the final save.
func (c *Controller) Close(confirmed bool) error {
	if c.engine.Running() {
		if !confirmed {
			return model.ErrConfirmationRequired
		}
		completion, err := c.engine.Stop(c.now())
		if err != nil {
			return err
		}
		if err := c.logCompletion(completion); err != nil {
			c.log.Error().Err(err).Msg("running session could not be logged on exit")
		}
	}
	c.scheduler.Stop()
	c.log.Info().Msg("closing")
	return c.Save()
}
