package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/app"
	"timetracker/internal/core/model"
	"timetracker/internal/report"
	"timetracker/internal/storage"
)

// open loads the controller for a CLI command, continuing on a corrupt
// data file after logging it.
func (env *environment) open() (*app.Controller, error) {
	controller, err := env.openController(env.loadSettings())
	if controller == nil {
		return nil, err
	}
	if err != nil {
		env.log.Warn().Err(err).Msg("continuing with recovered data")
	}
	return controller, nil
}

func newGUICmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the tracker window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(env)
		},
	}
}

func newReportCmd(env *environment) *cobra.Command {
	var date, out string
	var asPDF bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the daily report as text or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := env.open()
			if err != nil {
				return err
			}
			if date != "" {
				if err := controller.ParseAndGoToDate(date); err != nil {
					return err
				}
			}

			if asPDF {
				if out == "" {
					out = report.FileName(controller.DateKey(), "pdf")
				}
				if err := controller.ExportPDF(out); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			if out != "" {
				return controller.ExportText(out)
			}
			text, err := controller.DailyReport().Text(controller.Display())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to report as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&asPDF, "pdf", false, "Render a PDF instead of text")
	return cmd
}

func newCategoriesCmd(env *environment) *cobra.Command {
	categoriesCmd := &cobra.Command{Use: "categories", Short: "Manage categories"}

	var date string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with the day's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := env.open()
			if err != nil {
				return err
			}
			if date != "" {
				if err := controller.ParseAndGoToDate(date); err != nil {
					return err
				}
			}
			totals := controller.Totals()
			for _, name := range controller.Categories() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, model.FormatDuration(totals.Of(name)))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&date, "date", "", "Day for the totals as YYYY-MM-DD (default today)")
	categoriesCmd.AddCommand(listCmd)

	categoriesCmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withLockedController(func(controller *app.Controller) error {
				return controller.AddCategory(args[0])
			})
		},
	})

	categoriesCmd.AddCommand(&cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a category without recorded activities",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withLockedController(func(controller *app.Controller) error {
				return controller.DeleteCategory(args[0])
			})
		},
	})
	return categoriesCmd
}

func newBackupCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [PATH]",
		Short: "Copy the data file to PATH (default time_tracker_backup_YYYYMMDD.json)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := storage.BackupFileName(time.Now())
			if len(args) == 1 {
				destination = args[0]
			}
			err := env.withLockedController(func(controller *app.Controller) error {
				return controller.Backup(destination)
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), destination)
			return nil
		},
	}
}

func newRestoreCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "restore PATH",
		Short: "Replace the data file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guard, err := env.lock()
			if err != nil {
				return err
			}
			defer func() {
				_ = guard.Release()
			}()

			err = storage.NewDataFile(env.cfg.DataFile).Restore(args[0])
			if !errors.Is(err, model.ErrRestartRequired) {
				return err
			}
			env.log.Info().Str("path", args[0]).Msg("data restored")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %s from %s\n", env.cfg.DataFile, args[0])
			return nil
		},
	}
}

func newArchiveCmd(env *environment) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Mirror all activities into the SQLite archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := env.syncArchive(dbPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archived %d activities\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Archive database path (overrides TIMETRACKER_ARCHIVE_DB)")
	return cmd
}

func newSummaryCmd(env *environment) *cobra.Command {
	var period, dbPath string
	var asJSON, detail, noSync bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize tracked time per category for a day, week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			span, err := report.PeriodOf(period, now)
			if err != nil {
				return err
			}
			if !noSync {
				if _, err := env.syncArchive(dbPath); err != nil {
					return err
				}
			}

			archive, err := storage.OpenArchive(env.archivePath(dbPath))
			if err != nil {
				return err
			}
			defer func() {
				_ = archive.Close()
			}()

			totals, err := archive.CategoryTotals(span.Start, span.End)
			if err != nil {
				return err
			}
			summary := report.NewSummary(span, totals, now)

			out := cmd.OutOrStdout()
			if asJSON {
				text, err := summary.JSON()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, text)
				return nil
			}
			_, _ = fmt.Fprint(out, summary.Text())
			if !detail {
				return nil
			}

			rows, err := archive.Activities(span.Start, span.End)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out)
			for _, row := range rows {
				_, _ = fmt.Fprintf(out, "%s %s-%s %-15s %s\n", row.Date, row.Start, row.End, row.Category, row.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", report.PeriodDay, "Period: day, week or month")
	cmd.Flags().StringVar(&dbPath, "db", "", "Archive database path (overrides TIMETRACKER_ARCHIVE_DB)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().BoolVar(&detail, "detail", false, "List the period's activities after the table")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Use the archive as is instead of refreshing it first")
	return cmd
}

func newAutostartCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:       "autostart on|off",
		Short:     "Start the tracker at login",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			if err := env.applyAutostart(enabled); err != nil {
				return err
			}
			settings := env.loadSettings()
			settings.StartAtLogin = enabled
			return env.saveSettings(settings)
		},
	}
}

// withLockedController runs fn against the loaded data while holding the
// instance lock for the data file.
func (env *environment) withLockedController(fn func(*app.Controller) error) error {
	guard, err := env.lock()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	controller, err := env.open()
	if err != nil {
		return err
	}
	return fn(controller)
}

func (env *environment) archivePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return env.cfg.ArchiveDB
}

func (env *environment) syncArchive(dbPath string) (int, error) {
	controller, err := env.open()
	if err != nil {
		return 0, err
	}
	archive, err := storage.OpenArchive(env.archivePath(dbPath))
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = archive.Close()
	}()

	_, activities := controller.Ledger().Snapshot()
	count, err := archive.Sync(activities)
	if err != nil {
		return 0, err
	}
	env.log.Info().Int("activities", count).Str("path", env.archivePath(dbPath)).Msg("archive synced")
	return count, nil
}
