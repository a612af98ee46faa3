// Package logging provides structured logging for the task registry.
// Supports JSON and text formats written to stderr or a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with registry-specific helpers.
type Logger struct {
	zl        zerolog.Logger
	component string
	file      *os.File
	mu        sync.Mutex
}

// Config holds logging configuration.
type Config struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // json, text
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`     // log file; empty writes to stderr
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

// New creates a new Logger instance.
func New(cfg Config) (*Logger, error) {
	var output io.Writer = os.Stderr
	var file *os.File
	if cfg.Path != "" {
		path := expandPath(cfg.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		file = f
		output = f
	}
	logger, err := NewWithWriter(cfg, output)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}
	logger.file = file
	return logger, nil
}

// NewWithWriter creates a Logger writing to w; cfg.Path is ignored.
func NewWithWriter(cfg Config, w io.Writer) (*Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	output := w
	switch strings.ToLower(cfg.Format) {
	case "", "json":
	case "text":
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	return &Logger{
		zl: zerolog.New(output).
			Level(level).
			With().
			Timestamp().
			Logger(),
	}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Default returns a JSON stderr logger at info level.
func Default() *Logger {
	return &Logger{zl: zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()}
}

// WithComponent returns a new Logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		zl:        l.zl.With().Str("component", component).Logger(),
		component: component,
		file:      l.file,
	}
}

// Zerolog exposes the underlying zerolog logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Debug starts a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

// Info starts an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

// Warn starts a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

// Err starts an error level event carrying err.
func (l *Logger) Err(err error) *zerolog.Event {
	return l.zl.Error().Err(err)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
