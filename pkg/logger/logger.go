package logger

import (
	"fmt"
	"io"
	"strings"

	"pdf-edit-automation/internal/domain"

	"github.com/felixgeelhaar/bolt/v3"
)

// AppLogger implements the domain.Logger interface on top of bolt
type AppLogger struct {
	logger *bolt.Logger
}

// NewLoggerWithOutput creates a logger with an explicit format ("json" or "console") and destination
func NewLoggerWithOutput(levelStr, format string, out io.Writer) domain.Logger {
	var handler bolt.Handler
	if strings.EqualFold(format, "json") {
		handler = bolt.NewJSONHandler(out)
	} else {
		handler = bolt.NewConsoleHandler(out)
	}

	return &AppLogger{
		logger: bolt.New(handler).SetLevel(parseLogLevel(levelStr)),
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	event := l.logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	withFields(event, fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields applies alternating key/value pairs to the event; a trailing key without value is dropped
func withFields(event *bolt.Event, fields []interface{}) *bolt.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case bool:
			event = event.Bool(key, v)
		case error:
			event = event.Str(key, v.Error())
		default:
			event = event.Str(key, fmt.Sprintf("%v", v))
		}
	}
	return event
}

// parseLogLevel converts string log level to bolt.Level
func parseLogLevel(levelStr string) bolt.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "info":
		return bolt.INFO
	case "warn", "warning":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}
