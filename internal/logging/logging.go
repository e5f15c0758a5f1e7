// Package logging builds the zerolog logger used for progress and
// diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Default: info
	Level string

	// Format is console or json.
	// Default: console
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from config. An unknown level or format is an error.
func New(config Config) (zerolog.Logger, error) {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	level, err := parseLevel(config.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer
	switch strings.ToLower(config.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.TimeOnly}
	case "json":
		out = config.Output
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (want console or json)", config.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return l, nil
}
