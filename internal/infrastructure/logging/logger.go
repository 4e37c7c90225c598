package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/config"
)

// ServiceName is attached to every log entry as the "service" attribute.
const ServiceName = "graylogic-props"

// Logger is the structured logger shared by the property service and its
// collaborators. It satisfies the small Logger interfaces of propsync and
// mqtt, so one instance is handed to each of them at startup.
//
// Every entry carries service=graylogic-props and the build version.
// Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds the logger described by the logging section of config.yaml.
// Entries go to output; choosing it from cfg.Output is left to the caller,
// which owns the process streams.
//
// Parameters:
//   - cfg: level (debug, info, warn, error) and format (json, text)
//   - version: build version attached to every entry
//   - output: destination for log entries
//
// Returns:
//   - *Logger: Configured logger ready for use
func New(cfg config.LoggingConfig, version string, output io.Writer) *Logger {
	level := parseLevel(cfg.Level)

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", ServiceName),
		slog.String("version", version),
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// parseLevel converts a string log level to slog.Level.
//
// Supported levels: debug, info, warn, error
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new Logger with additional default attributes.
//
// Example:
//
//	syncLogger := logger.With("device_id", cfg.Device.ID)
//	syncLogger.Info("snapshot restored") // Includes device_id=...
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}
