// Package logging builds the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped console logger. The development environment logs
// everything; other environments log at the given level, defaulting to info.
func New(environment, level string) *zerolog.Logger {
	return NewWithWriter(os.Stdout, environment, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, environment, level string) *zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: environment != "development"}

	lvl := zerolog.TraceLevel
	if environment != "development" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || parsed == zerolog.NoLevel {
			parsed = zerolog.InfoLevel
		}
		lvl = parsed
		output.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		}
	}

	log := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	return &log
}

// Named returns a child logger tagged with the component name.
func Named(logger *zerolog.Logger, name string) *zerolog.Logger {
	log := logger.With().Str("name", name).Logger()
	return &log
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	log := zerolog.Nop()
	return &log
}
