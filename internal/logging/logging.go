// Package logging configures the zerolog logger shared by the client and widget.
//
// The terminal belongs to the chat UI, so logs never go to stdout or stderr:
// they are written as JSON lines to a file in the config directory, and only
// when verbose mode or BLARRY_LOG_LEVEL asks for them.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/diogo/blarrychat/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name to a zerolog level; empty or unknown is info
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// NewWriterLogger builds a logger writing JSON to w at the given level
func NewWriterLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "blarrychat").
		Logger()
}

// New returns the logger for cfg and a closer for its file.
// Logging is disabled unless cfg.Verbose is set or cfg.LogLevel is not empty.
func New(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if !cfg.Verbose && cfg.LogLevel == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level := ParseLevel(cfg.LogLevel)
	if cfg.Verbose && cfg.LogLevel == "" {
		level = zerolog.DebugLevel
	}

	if _, err := config.EnsureConfigDir(); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	path, err := config.GetLogPath()
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return NewWriterLogger(f, level), f, nil
}
