package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"timetracker/internal/logger"
	"timetracker/internal/storage"
)

// EnvPrefix is the prefix of every environment variable read by New.
const EnvPrefix = "TIMETRACKER"

// AppDirName is the directory created under the OS config directory.
const AppDirName = "TimeTracker"

// Config holds the runtime configuration.
// Environment variables are parsed from the TIMETRACKER_ prefix.
type Config struct {
	DataFile        string        `envconfig:"DATA_FILE"`
	PreferencesFile string        `envconfig:"PREFERENCES_FILE"`
	ArchiveDB       string        `envconfig:"ARCHIVE_DB"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"console"`
	TickInterval    time.Duration `envconfig:"TICK_INTERVAL" default:"200ms"`
}

// New parses the environment and resolves empty paths under configDir.
func New(configDir string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(configDir); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults fills empty paths and validates the remaining values.
func (c *Config) ResolveDefaults(configDir string) error {
	appDir := filepath.Join(configDir, AppDirName)
	if c.DataFile == "" {
		c.DataFile = filepath.Join(appDir, storage.DataFileName)
	}
	if c.PreferencesFile == "" {
		c.PreferencesFile = filepath.Join(appDir, storage.PreferencesFileName)
	}
	if c.ArchiveDB == "" {
		c.ArchiveDB = filepath.Join(appDir, storage.ArchiveFileName)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = logger.FormatConsole
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("unsupported LOG_FORMAT: %s", c.LogFormat)
	}

	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	return nil
}

// AppDir returns the directory holding the data file.
func (c *Config) AppDir() string {
	return filepath.Dir(c.DataFile)
}
