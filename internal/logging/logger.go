package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
)

var (
	defaultLogger *slog.Logger
	loggerMu      sync.Mutex
	initialized   bool
)

// LogLevel represents logging levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ParseLevel maps a level name to a LogLevel. Unrecognized names fall back
// to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds logging configuration
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSONFormat bool
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      LogLevelInfo,
		Output:     os.Stderr,
		JSONFormat: false,
	}
}

// Initialize sets up the process logger. A nil config selects the defaults.
// Logs go to stderr so command output on stdout stays machine-readable.
func Initialize(cfg *Config) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	initialize(cfg)
}

func initialize(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.Level.slogLevel()})
	} else {
		handler = tint.NewHandler(out, &tint.Options{Level: cfg.Level.slogLevel()})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	initialized = true
}

// GetLogger returns the process logger, initializing defaults on first use
func GetLogger() *slog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if !initialized {
		initialize(nil)
	}
	return defaultLogger
}

// Debug logs a message at debug level
func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

// Info logs a message at info level
func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

// Warn logs a message at warn level
func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

// Error logs a message at error level
func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// WithField returns a logger carrying an extra key-value pair
func WithField(key string, value any) *slog.Logger {
	return GetLogger().With(key, value)
}
