// Package logger provides the configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects the logger output.
type Options struct {
	AppName string
	Level   string
	Format  string
	Out     io.Writer
}

// New returns a logger for the application and installs it as the global
// zerolog logger. Call sites use .Stack() on error events to include stacks.
func New(options Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	out := options.Out
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(options.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    true,
		}
	}

	level := ParseLevel(options.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(out).Level(level).With().
		Str("app", options.AppName).
		Timestamp().
		Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || value == "" {
		return zerolog.InfoLevel
	}
	return level
}
