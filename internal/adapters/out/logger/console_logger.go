package logger

import (
	"io"
	"os"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/rs/zerolog"
)

type Options struct {
	Timezone string
	Level    string
	// Цветной вывод для локальной разработки, иначе JSON построчно
	Pretty bool
}

type ConsoleLogger struct {
	base          zerolog.Logger
	defaultFields out.LogFields
	module        string
	location      *time.Location
}

func NewConsoleLogger(opts Options) (*ConsoleLogger, error) {
	return NewConsoleLoggerWithWriter(os.Stdout, opts)
}

func NewConsoleLoggerWithWriter(w io.Writer, opts Options) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		loc = time.UTC
	}

	level, err := out.ParseLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	output := w
	if opts.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05.000",
		}
	}

	return &ConsoleLogger{
		base:          zerolog.New(output).Level(zerologLevel(level)),
		defaultFields: make(out.LogFields),
		location:      loc,
	}, nil
}

// NewNopLogger ничего не пишет, используется в тестах
func NewNopLogger() *ConsoleLogger {
	return &ConsoleLogger{
		base:          zerolog.Nop(),
		defaultFields: make(out.LogFields),
		location:      time.UTC,
	}
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ConsoleLogger{
		base:          l.base,
		defaultFields: make(out.LogFields, len(l.defaultFields)+len(fields)),
		module:        l.module,
		location:      l.location,
	}

	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	return &ConsoleLogger{
		base:          l.base,
		defaultFields: l.defaultFields,
		module:        module,
		location:      l.location,
	}
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(l.base.Debug(), event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(l.base.Info(), event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(l.base.Warn(), event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(l.base.Error(), event, fields)
}

func (l *ConsoleLogger) log(entry *zerolog.Event, event string, fields out.LogFields) {
	// nil, если уровень отключен
	if entry == nil {
		return
	}

	module := l.module
	if module == "" {
		module = "unknown"
	}

	mergedFields := make(map[string]interface{}, len(l.defaultFields)+len(fields))
	for k, v := range l.defaultFields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}

	entry.
		Time(zerolog.TimestampFieldName, time.Now().In(l.location)).
		Str("module", module).
		Str("event", event).
		Fields(mergedFields).
		Msg(event)
}

func zerologLevel(level out.LogLevel) zerolog.Level {
	switch level {
	case out.LogLevelInfo:
		return zerolog.InfoLevel
	case out.LogLevelWarn:
		return zerolog.WarnLevel
	case out.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}
