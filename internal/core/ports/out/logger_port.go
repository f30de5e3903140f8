package out

import (
	"fmt"
	"strings"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// ParseLogLevel принимает уровень в любом регистре, пустая строка означает DEBUG
func ParseLogLevel(value string) (LogLevel, error) {
	switch level := LogLevel(strings.ToUpper(strings.TrimSpace(value))); level {
	case "":
		return LogLevelDebug, nil
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q", value)
	}
}

// LogFields — дополнительные поля события
type LogFields map[string]interface{}

// LoggerPort — структурированный журнал событий. event задается в виде
// "booking.admit.rejected", поля сливаются с полями WithFields.
type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
}
