// Package logging builds the diagnostic logger used across pegvault.
//
// Diagnostics are separate from the history file: the history file is the
// audit trail of operations, while the logger reports what the tool is doing
// at the requested verbosity.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger writing to w at the given level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", "pegvault").
		Logger()
}

// FromString creates a stderr logger from a textual level such as "warn" or "debug".
func FromString(level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return NewLogger(os.Stderr, lvl), nil
}

// ParseLevel parses a case-insensitive level name.
// The empty string maps to warn.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.WarnLevel, nil
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	return lvl, nil
}
