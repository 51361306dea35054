package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger emits structured JSON log lines tagged with the service name and
// hostname, so the customer and staff deployments can share one log stream.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) Info(action, message string) {
	l.log(slog.LevelInfo, action, message)
}

func (l *Logger) Debug(action, message string) {
	l.log(slog.LevelDebug, action, message)
}

func (l *Logger) Warn(action, message string, err error) {
	l.logErr(slog.LevelWarn, action, message, err)
}

func (l *Logger) Error(action, message string, err error) {
	l.logErr(slog.LevelError, action, message, err)
}

func (l *Logger) log(level slog.Level, action, message string) {
	l.handler.LogAttrs(
		context.TODO(),
		level,
		message,
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	)
}

func (l *Logger) logErr(level slog.Level, action, message string, err error) {
	attrs := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
