package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// setup configures the package logger from environment variables.
// DEBUG=1 forces debug level; otherwise LOG_LEVEL selects the level
// (debug, info, warn, error), defaulting to info.
func setup() {
	initOnce.Do(func() {
		logger = newLogger(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))
	})
}

func newLogger(debugEnv, levelEnv string) zerolog.Logger {
	level := parseLevel(debugEnv, levelEnv)

	out := zerolog.New(os.Stderr)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(level).With().Timestamp().Logger()
}

func parseLevel(debugEnv, levelEnv string) zerolog.Level {
	switch strings.ToLower(debugEnv) {
	case "1", "true", "yes", "on":
		return zerolog.DebugLevel
	}

	switch strings.ToLower(levelEnv) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the configured zerolog logger for callers that want
// structured fields instead of format strings.
func Logger() zerolog.Logger {
	setup()
	return logger
}

// GetLevel returns the current log level.
func GetLevel() zerolog.Level {
	setup()
	return logger.GetLevel()
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return GetLevel() <= zerolog.DebugLevel
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug).
func Debug(format string, args ...interface{}) {
	setup()
	logger.Debug().Msgf(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	setup()
	logger.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	setup()
	logger.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	setup()
	logger.Error().Msgf(format, args...)
}

// Fatal logs an error message and exits.
func Fatal(format string, args ...interface{}) {
	setup()
	logger.Fatal().Msgf(format, args...)
}
