// logger/logger.go
/* The logger package builds the zap sugared logger shared by every package in this
module. Output encoding (console or JSON), level and an optional export path for
shipping logs to a file are all driven by the client configuration. */
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the level of logging. Higher values denote more severe log messages.
type LogLevel int

const (
	// LogLevelDebug is for messages that are useful during software debugging.
	LogLevelDebug LogLevel = -1
	// LogLevelInfo is for informational messages, indicating normal operation.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is for messages that highlight potential issues in the system.
	LogLevelWarn LogLevel = 1
	// LogLevelError is for messages that highlight errors in the application's execution.
	LogLevelError LogLevel = 2
)

// ParseLogLevelFromString takes a string representation of the log level and returns
// the corresponding LogLevel. Unrecognized values fall back to info, which keeps a
// misconfigured client talking rather than silent.
func ParseLogLevelFromString(levelStr string) LogLevel {
	switch levelStr {
	case "LogLevelDebug", "debug":
		return LogLevelDebug
	case "LogLevelInfo", "info":
		return LogLevelInfo
	case "LogLevelWarn", "warn":
		return LogLevelWarn
	case "LogLevelError", "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// BuildLogger creates a new sugared zap logger with the given log level, output
// format ("console" or "JSON") and optional export path. When an export path is
// set, logs are written both to stderr and to the file at that path.
func BuildLogger(logLevel LogLevel, encoding string, exportPath string) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch encoding {
	case "JSON", "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	writeSyncer := zapcore.AddSync(os.Stderr)
	if exportPath != "" {
		if file, err := os.OpenFile(exportPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			writeSyncer = zapcore.NewMultiWriteSyncer(writeSyncer, zapcore.AddSync(file))
		}
	}

	core := zapcore.NewCore(encoder, writeSyncer, convertToZapLevel(logLevel))

	return zap.New(core, zap.AddCaller()).Sugar()
}

// convertToZapLevel maps the package's LogLevel to zap's internal levels.
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
