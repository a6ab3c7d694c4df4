package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Notifier delivers log records to an external chat, used for mirroring
// warnings to the admin Telegram channel.
type Notifier interface {
	SendMessage(msg string)
}

// SetupLogger builds the service logger for the given environment. Local
// logs go to stdout as text with debug level; dev and prod log JSON to a
// file under logDir.
func SetupLogger(env, logDir string) *slog.Logger {
	switch env {
	case envDev, envProd:
		level := slog.LevelInfo
		if env == envDev {
			level = slog.LevelDebug
		}
		path := filepath.Join(logDir, "asmidesk.log")
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			log.Error("failed to open log file, falling back to stdout", slog.String("path", path))
			return log
		}
		return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// SetupTelegramHandler fans out records at or above level to the notifier
// while keeping the original handler untouched.
func SetupTelegramHandler(log *slog.Logger, notifier Notifier, level slog.Level) *slog.Logger {
	return slog.New(&notifyHandler{
		next:     log.Handler(),
		notifier: notifier,
		level:    level,
	})
}

type notifyHandler struct {
	next     slog.Handler
	notifier Notifier
	level    slog.Level
	attrs    []slog.Attr
}

func (h *notifyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *notifyHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.level && h.notifier != nil {
		text := fmt.Sprintf("[%s] %s", record.Level, record.Message)
		for _, attr := range h.attrs {
			text += fmt.Sprintf("\n%s: %s", attr.Key, attr.Value)
		}
		record.Attrs(func(attr slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %s", attr.Key, attr.Value)
			return true
		})
		go h.notifier.SendMessage(text)
	}
	return h.next.Handle(ctx, record)
}

func (h *notifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &notifyHandler{
		next:     h.next.WithAttrs(attrs),
		notifier: h.notifier,
		level:    h.level,
		attrs:    merged,
	}
}

func (h *notifyHandler) WithGroup(name string) slog.Handler {
	return &notifyHandler{
		next:     h.next.WithGroup(name),
		notifier: h.notifier,
		level:    h.level,
		attrs:    h.attrs,
	}
}
