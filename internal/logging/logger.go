package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64-valued field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool-valued field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Dur creates a duration-valued field.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field carrying an error under the conventional "error"
// key. A nil error produces a field with a nil value.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used across the application. It
// keeps components independent of the logging backend; the production
// implementation is backed by zerolog.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)

	// Printf and Println provide drop-in compatibility with code
	// expecting the standard library logger.
	Printf(format string, v ...any)
	Println(v ...any)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a Logger writing human-readable output to
// stderr at the info level.
func NewDefaultLogger() Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	return &ZerologAdapter{logger: zl}
}

// NewLogger returns a Logger writing JSON lines to w, tagging every
// event with the given component name.
func NewLogger(w io.Writer, component string) Logger {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// Debug logs a message at the debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at the info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Warn logs a message at the warn level.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(a.logger.Warn(), fields).Msg(msg)
}

// Error logs a message at the error level with an optional cause.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at the info level.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, v...))
}

// Println logs its arguments at the info level, space separated.
func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// applyFields attaches typed fields to a zerolog event, preserving
// native types where zerolog supports them.
func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		case nil:
			e = e.Interface(f.Key, nil)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// StdLoggerAdapter implements Logger on top of the standard library
// logger, for environments where zerolog output is unwanted (tests,
// embedding).
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (a *StdLoggerAdapter) print(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	a.logger.Println(b.String())
}

// Debug logs a message at the debug level.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) { a.print("[DEBUG]", msg, fields) }

// Info logs a message at the info level.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) { a.print("[INFO]", msg, fields) }

// Warn logs a message at the warn level.
func (a *StdLoggerAdapter) Warn(msg string, fields ...Field) { a.print("[WARN]", msg, fields) }

// Error logs a message at the error level with an optional cause.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	a.print("[ERROR]", msg, fields)
}

// Printf logs a formatted message.
func (a *StdLoggerAdapter) Printf(format string, v ...any) { a.logger.Printf(format, v...) }

// Println logs its arguments, space separated.
func (a *StdLoggerAdapter) Println(v ...any) { a.logger.Println(v...) }
