package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured JSON log lines tagged with the service and host they came from
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the given service writing to stdout at the given level
func New(service, level string) *Logger {
	return NewWithWriter(service, level, os.Stdout)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(service, level string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithWriter("nop", "error", io.Discard)
}

// GenerateRequestID returns a fresh id for correlating log lines of one request
func GenerateRequestID() string {
	return uuid.NewString()
}

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

func (l *Logger) attrs(action, requestID string, extra []slog.Attr) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	return append(attrs, extra...)
}

func (l *Logger) Info(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelInfo, message, l.attrs(action, requestID, extra)...)
}

func (l *Logger) Debug(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelDebug, message, l.attrs(action, requestID, extra)...)
}

func (l *Logger) Warn(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelWarn, message, l.attrs(action, requestID, extra)...)
}

func (l *Logger) Error(action, requestID, message string, err error, extra ...slog.Attr) {
	attrs := l.attrs(action, requestID, extra)
	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}
