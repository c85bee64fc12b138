package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"timetracker/internal/app"
	"timetracker/internal/config"
	"timetracker/internal/core/model"
	"timetracker/internal/logger"
	"timetracker/internal/platform"
	"timetracker/internal/storage"
	"timetracker/internal/ui/preferences"
)

const (
	appName  = "TimeTracker"
	appTitle = "Time Tracker"
	appID    = "com.timetracker.app"
)

func main() {
	cmd := NewRootCmd(platform.NewService())
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// environment is the state shared by every command once flags are parsed.
type environment struct {
	service  platform.Service
	dataFile string
	debug    bool
	cfg      *config.Config
	log      zerolog.Logger
}

// NewRootCmd constructs the root CLI command. Without a subcommand it starts
// the GUI.
func NewRootCmd(service platform.Service) *cobra.Command {
	env := &environment{service: service}

	rootCmd := &cobra.Command{
		Use:           "timetracker",
		Short:         "Track time per category, with an optional Pomodoro timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(env)
		},
	}

	rootCmd.PersistentFlags().StringVar(&env.dataFile, "data-file", "", "Path of the JSON data file (overrides TIMETRACKER_DATA_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&env.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(newGUICmd(env))
	rootCmd.AddCommand(newReportCmd(env))
	rootCmd.AddCommand(newCategoriesCmd(env))
	rootCmd.AddCommand(newBackupCmd(env))
	rootCmd.AddCommand(newRestoreCmd(env))
	rootCmd.AddCommand(newArchiveCmd(env))
	rootCmd.AddCommand(newSummaryCmd(env))
	rootCmd.AddCommand(newAutostartCmd(env))
	return rootCmd
}

func (env *environment) setup() error {
	configDir, err := env.service.GetConfigDir()
	if err != nil {
		return err
	}
	cfg, err := config.New(configDir)
	if err != nil {
		return err
	}
	if env.dataFile != "" {
		cfg.DataFile = env.dataFile
	}
	if env.debug {
		cfg.LogLevel = "debug"
	}
	env.cfg = cfg
	env.log = logger.New(logger.Options{
		AppName: appName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Out:     os.Stderr,
	})
	env.log.Debug().
		Str("data_file", cfg.DataFile).
		Str("preferences", cfg.PreferencesFile).
		Msg("configuration resolved")
	return nil
}

// lock guards commands that write the data file against a running GUI.
func (env *environment) lock() (*platform.InstanceGuard, error) {
	guard, err := platform.AcquireSingleInstance(appName, env.cfg.DataFile)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return nil, fmt.Errorf("%s is already running with this data file, close it first: %w", appTitle, err)
	}
	return guard, err
}

func (env *environment) loadSettings() preferences.Settings {
	settings, err := storage.LoadSettings(env.cfg.PreferencesFile)
	if err != nil {
		env.log.Warn().Err(err).Str("path", env.cfg.PreferencesFile).Msg("preferences unreadable, using defaults")
	}
	return settings
}

func (env *environment) saveSettings(settings preferences.Settings) error {
	if err := storage.SaveSettings(env.cfg.PreferencesFile, settings); err != nil {
		env.log.Error().Err(err).Str("path", env.cfg.PreferencesFile).Msg("preferences not saved")
		return err
	}
	return nil
}

// applyAutostart brings the login entry in line with enabled.
func (env *environment) applyAutostart(enabled bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := platform.ApplyAutostart(env.service, enabled, appName, execPath); err != nil {
		return err
	}
	env.log.Info().Bool("enabled", enabled).Msg("autostart updated")
	return nil
}

// openController loads the data file. A corrupt file is not fatal: the
// original bytes are preserved and the recovered part is used.
func (env *environment) openController(settings preferences.Settings) (*app.Controller, error) {
	controller := app.New(app.Options{
		Store:        storage.NewDataFile(env.cfg.DataFile),
		Logger:       env.log,
		Pomodoro:     settings.PomodoroConfig(),
		PomodoroMode: settings.PomodoroOnLaunch,
	})
	err := controller.Load()
	if err != nil && !errors.Is(err, model.ErrPersistenceCorrupt) {
		return nil, err
	}
	return controller, err
}
