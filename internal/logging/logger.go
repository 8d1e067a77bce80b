// Package logging provides the leveled, prefixed logger shared by the
// non-pure layers of editkit (state persistence, the FUSE mount, and
// the CLI). The core vfs and syntax packages stay silent.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls how much a logger emits.
type Level int

const (
	// LevelError only logs errors
	LevelError Level = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs general information, warnings and errors
	LevelInfo
	// LevelDebug logs detailed debug information and all above
	LevelDebug
	// LevelTrace logs very detailed trace information and all above
	LevelTrace
)

var levelNames = map[Level]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
	LevelTrace: "TRACE",
}

// ParseLevel maps a level name (case-insensitive) to a Level. Unknown
// names report false and leave the caller's default in place.
func ParseLevel(name string) (Level, bool) {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level, true
		}
	}
	return LevelInfo, false
}

// Logger is a leveled printf-style logger. Sub-loggers created with
// WithPrefix share the underlying sink and level with their parent.
type Logger struct {
	shared *shared
	prefix string
}

type shared struct {
	mu     sync.RWMutex
	level  Level
	logger *log.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the process-wide logger. Its initial level comes
// from the LOG_LEVEL environment variable and defaults to INFO.
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger("editkit")
		if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
			defaultLogger.SetLevel(level)
		}
	})
	return defaultLogger
}

// NewLogger creates a logger writing to stderr with the given prefix.
func NewLogger(prefix string) *Logger {
	return &Logger{
		shared: &shared{
			level:  LevelInfo,
			logger: log.New(os.Stderr, prefix+": ", log.Ldate|log.Ltime|log.Lmicroseconds|log.LUTC),
		},
	}
}

// WithPrefix returns a logger tagging every message with an additional
// component prefix. Level changes on any logger in the family apply to
// all of them.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{shared: l.shared, prefix: prefix}
}

// SetLevel sets the logging level for this logger and its family.
func (l *Logger) SetLevel(level Level) {
	l.shared.mu.Lock()
	defer l.shared.mu.Unlock()
	l.shared.level = level
}

func (l *Logger) enabled(level Level) bool {
	l.shared.mu.RLock()
	defer l.shared.mu.RUnlock()
	return level <= l.shared.level
}

func (l *Logger) output(level Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", levelNames[level], l.prefix, msg)
	} else {
		msg = fmt.Sprintf("[%s] %s", levelNames[level], msg)
	}
	if err := l.shared.logger.Output(3, msg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log message: %v\n", err)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.output(LevelError, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.output(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.output(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.output(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *Logger) Trace(format string, args ...interface{}) {
	l.output(LevelTrace, format, args...)
}
