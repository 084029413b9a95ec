// Package log builds the structured loggers used across costplan.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldPath      = "path"
	FieldProject   = "project"
	FieldError     = "err"
)

// Components defines standard component names
const (
	ComponentEngine = "engine"
	ComponentCLI    = "cli"
	ComponentTUI    = "tui"
	ComponentCache  = "cache"
)

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Writer    io.Writer
}

// DefaultConfig logs warnings and above to stderr, keeping stdout clean
// for tables and CSV.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelWarn,
		Component: ComponentCLI,
		Writer:    os.Stderr,
	}
}

// LevelFor maps the CLI verbosity flags to a level. quiet wins.
func LevelFor(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New creates a text logger tagged with the configured component.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level}))
	if cfg.Component != "" {
		logger = logger.With(FieldComponent, cfg.Component)
	}
	return logger
}

// Discard returns a logger that drops everything; the TUI uses it so log
// lines never tear the alternate screen.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
