package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root slog logger for the given environment.
// Local runs log human-readable debug output to stdout; dev and prod
// log JSON, prod additionally mirrors records into a file under
// logPath when the directory is writable.
func SetupLogger(env, logPath string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case envProd:
		out := io.Writer(os.Stdout)
		file, err := os.OpenFile(filepath.Join(logPath, "crm.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = io.MultiWriter(os.Stdout, file)
		}
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	case envDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler)
}

// AlertSender delivers out-of-band alerts for important log records.
// *bot.TgBot satisfies it.
type AlertSender interface {
	SendMessage(msg string)
}

// SetupTelegramHandler wraps the logger so records at or above level
// are also pushed to the alert channel. The original handler keeps
// receiving everything.
func SetupTelegramHandler(log *slog.Logger, sender AlertSender, level slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:   log.Handler(),
		sender: sender,
		level:  level,
	})
}

type telegramHandler struct {
	next   slog.Handler
	sender AlertSender
	level  slog.Level
	attrs  []slog.Attr
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.level && h.sender != nil {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("[%s] %s", record.Level.String(), record.Message))
		for _, attr := range h.attrs {
			sb.WriteString(fmt.Sprintf("\n%s: %v", attr.Key, attr.Value))
		}
		record.Attrs(func(attr slog.Attr) bool {
			sb.WriteString(fmt.Sprintf("\n%s: %v", attr.Key, attr.Value))
			return true
		})
		// Alert delivery must never block or break logging.
		go h.sender.SendMessage(sb.String())
	}
	return h.next.Handle(ctx, record)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &telegramHandler{
		next:   h.next.WithAttrs(attrs),
		sender: h.sender,
		level:  h.level,
		attrs:  merged,
	}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{
		next:   h.next.WithGroup(name),
		sender: h.sender,
		level:  h.level,
		attrs:  h.attrs,
	}
}
