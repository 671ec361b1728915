// Package debug provides the diagnostic side channel for the parameter
// engine. Logging is disabled by default and enabled through the
// PLUGCORE_DEBUG environment variable, so the realtime path only ever pays
// for a single atomic load when nothing is listening.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for recoverable protocol violations, e.g. an automation
	// event with an out-of-range sample offset.
	LevelWarn
	// LevelError is for errors.
	LevelError
	// LevelOff disables all logging.
	LevelOff
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled diagnostics. The enabled flag is an atomic so code
// on the audio thread can bail out without touching the mutex; actually
// emitting a message takes the mutex and is therefore only realtime-safe in
// the sense that it never happens while the logger is disabled.
type Logger struct {
	enabled atomic.Bool

	mu     sync.Mutex
	output io.Writer
	level  Level
	prefix string
}

// EnvVar selects the default logger's level: "debug", "info", "warn" or
// "error". Unset or unrecognized leaves logging off.
const EnvVar = "PLUGCORE_DEBUG"

var defaultLogger = fromEnv()

func fromEnv() *Logger {
	l := New(os.Stderr, "plugcore")
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case "debug":
		l.SetLevel(LevelDebug)
	case "info":
		l.SetLevel(LevelInfo)
	case "warn":
		l.SetLevel(LevelWarn)
	case "error":
		l.SetLevel(LevelError)
	default:
		l.SetLevel(LevelOff)
	}
	return l
}

// New creates a logger. It starts at LevelOff; call SetLevel to enable it.
func New(output io.Writer, prefix string) *Logger {
	l := &Logger{
		output: output,
		prefix: prefix,
		level:  LevelOff,
	}
	return l
}

// NewFileLogger creates a logger appending to a file, creating parent
// directories as needed.
func NewFileLogger(filename, prefix string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("debug: creating log directory: %w", err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("debug: opening log file: %w", err)
	}
	return New(file, prefix), nil
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum level. LevelOff disables the logger.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
	l.enabled.Store(level < LevelOff)
}

// Enabled reports whether any logging is active. Lock-free.
func (l *Logger) Enabled() bool {
	return l.enabled.Load()
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.enabled.Load() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	sb.WriteString("[" + level.String() + "] ")
	if l.prefix != "" {
		sb.WriteString("[" + l.prefix + "] ")
	}
	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteString("\n")
	}
	l.output.Write([]byte(sb.String()))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Default returns the process-wide logger configured from PLUGCORE_DEBUG.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum level for the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// Enabled reports whether the default logger is active. Lock-free.
func Enabled() bool {
	return defaultLogger.Enabled()
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...any) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...any) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...any) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...any) {
	defaultLogger.Error(format, args...)
}
