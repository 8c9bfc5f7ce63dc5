// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init sets the global level and routes the global logger to path.
// The TUI owns the terminal, so it logs to a file; an empty path logs
// human-readable lines to stderr instead. An invalid level falls back to info.
func Init(path, level string) (io.Closer, error) {
	if path == "" {
		InitWriter(os.Stderr, level)
		return nopCloser{}, nil
	}

	setLevel(level)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// InitWriter routes the global logger to w as human-readable lines.
func InitWriter(w io.Writer, level string) {
	setLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

func setLevel(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
}

// Logger returns a logger tagged with the given component name
func Logger(component string) *zerolog.Logger {
	l := log.With().Str("component", component).Logger()
	return &l
}
