// Package logger
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"hostsnap/internal/config"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type SlogLogger struct {
	internalLogger *slog.Logger
}

func New(cfg *config.Config) Logger {
	return NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

func NewWithWriter(w io.Writer, level, format string) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{internalLogger: slog.New(handler)}
}

// Discard drops every record.
func Discard() Logger {
	return &SlogLogger{internalLogger: slog.New(slog.DiscardHandler)}
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

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.internalLogger.Debug(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.internalLogger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.internalLogger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.internalLogger.Error(msg, args...)
}
