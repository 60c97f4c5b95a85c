package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/rs/zerolog"
)

// Frames own stdout, so logs default to stderr.
var log = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the logger with the given level name and output.
// A nil output keeps stderr.
func Init(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	log = zerolog.New(consoleWriter(out)).With().Timestamp().Logger()

	SetLogLevel(ParseLevel(level))
}

// ParseLevel maps a configured level name onto a LogLevel. Unknown names
// fall back to WarnLevel.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "error":
		return ErrorLevel
	default:
		return WarnLevel
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Error(), err)}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with a specific error code and exits the program
func FatalWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Fatal(), err)}
}

func withCode(event *zerolog.Event, err errors.Error) *zerolog.Event {
	return event.
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())
}

type defaultLogger struct{}

// Default returns a Logger backed by the package-level logger, for
// components that take their logger as a dependency.
func Default() Logger {
	return defaultLogger{}
}

func (defaultLogger) Debug() *LogEvent { return Debug() }
func (defaultLogger) Info() *LogEvent  { return Info() }
func (defaultLogger) Warn() *LogEvent  { return Warn() }
func (defaultLogger) Error() *LogEvent { return Error() }

func (defaultLogger) ErrorWithCode(err errors.Error) *LogEvent { return ErrorWithCode(err) }
