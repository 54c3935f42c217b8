// Package logger provides the structured, leveled application logger
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Level represents the severity level of a log message
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// ParseLevel maps a configuration string onto a Level, defaulting to InfoLevel
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel, "warning":
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) filter() level.Option {
	switch l {
	case DebugLevel:
		return level.AllowDebug()
	case WarnLevel:
		return level.AllowWarn()
	case ErrorLevel:
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// Logger defines the interface for the application logger
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// KitLogger writes one JSON object per entry through go-kit/log
type KitLogger struct {
	logger kitlog.Logger
	fields map[string]interface{}
}

// NewJSONLogger creates a logger writing JSON lines to output (stdout when nil)
// and dropping entries below lvl
func NewJSONLogger(output io.Writer, lvl Level) *KitLogger {
	if output == nil {
		output = os.Stdout
	}

	base := kitlog.NewJSONLogger(kitlog.NewSyncWriter(output))
	base = kitlog.With(base, "timestamp", kitlog.DefaultTimestampUTC)

	return &KitLogger{
		logger: level.NewFilter(base, lvl.filter()),
		fields: make(map[string]interface{}),
	}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *KitLogger {
	return &KitLogger{
		logger: kitlog.NewNopLogger(),
		fields: make(map[string]interface{}),
	}
}

// WithField returns a new logger with the field added to the log context
func (l *KitLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a new logger with the fields added to the log context
func (l *KitLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &KitLogger{logger: l.logger, fields: merged}
}

func (l *KitLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(level.Debug(l.logger), msg, fields)
}

func (l *KitLogger) Info(msg string, fields map[string]interface{}) {
	l.log(level.Info(l.logger), msg, fields)
}

func (l *KitLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(level.Warn(l.logger), msg, fields)
}

func (l *KitLogger) Error(msg string, fields map[string]interface{}) {
	l.log(level.Error(l.logger), msg, fields)
}

// Fatal logs at error level and terminates the process
func (l *KitLogger) Fatal(msg string, fields map[string]interface{}) {
	l.log(kitlog.With(level.Error(l.logger), "fatal", true), msg, fields)
	os.Exit(1)
}

func (l *KitLogger) log(leveled kitlog.Logger, msg string, fields map[string]interface{}) {
	_, file, line, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	keyvals := make([]interface{}, 0, 4+2*(len(l.fields)+len(fields)))
	keyvals = append(keyvals, "message", msg, "caller", caller)
	for k, v := range l.fields {
		keyvals = append(keyvals, k, v)
	}
	for k, v := range fields {
		keyvals = append(keyvals, k, v)
	}

	if err := leveled.Log(keyvals...); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log entry: %s\n", err)
	}
}

var defaultLogger Logger = NewJSONLogger(os.Stdout, InfoLevel)

// GetDefaultLogger returns the process-wide logger
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
