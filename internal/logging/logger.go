package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// Output receives the console stream; nil means stderr. The terminal
	// front-end passes io.Discard so logs do not garble the screen.
	Output io.Writer
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stderr
	}
	return c.Output
}

// FileConfig enables the rotated log file next to the stderr output.
type FileConfig struct {
	Enabled    bool
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, cfg.output())
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	output := out
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues builds a logger from the raw config strings.
// Unknown levels fall back to info.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	if lvl, err := ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewWithFile creates a logger writing to stderr and, when enabled, to a rotated
// JSON log file. The returned closer releases the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, io.Closer, error) {
	if !fileCfg.Enabled || fileCfg.Dir == "" {
		return New(cfg), nopCloser{}, nil
	}

	if err := os.MkdirAll(fileCfg.Dir, 0o750); err != nil {
		return New(cfg), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}

	rotator, err := NewLogRotator(fileCfg.Dir, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
	if err != nil {
		return New(cfg), nopCloser{}, err
	}

	console := cfg.output()
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: cfg.TimeFormat}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(console, rotator)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return logger, rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewFromEnv creates a logger based on environment variables
// LOCKBREAK_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// LOCKBREAK_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("LOCKBREAK_LOG_LEVEL"), os.Getenv("LOCKBREAK_LOG_FORMAT"))
}
