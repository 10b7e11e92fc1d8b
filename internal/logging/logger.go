// Package logging configures charmbracelet/log loggers for the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const interactivePrefix = "adoclint"

//nolint:gochecknoglobals // Process-wide default logger.
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at the named level. Unknown or empty level
// names mean info; "warning" is accepted for warn.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns the logger used for command output such as init
// and rules. It is prefixed and follows the default logger into debug.
func NewInteractive() *log.Logger {
	level := log.InfoLevel
	if Default().GetLevel() == log.DebugLevel {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: interactivePrefix, Level: level})
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	if level, err := log.ParseLevel(name); err == nil && name != "" {
		return level
	}
	return log.InfoLevel
}

// Default returns the process-wide logger, creating an info logger on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
