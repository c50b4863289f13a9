package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root logger for the given environment. Local runs
// log human-readable text to stdout at debug level; dev and prod log JSON,
// prod additionally into a file under logPath.
func SetupLogger(env, logPath string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		lg = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		out := prodWriter(logPath)
		lg = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		lg = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return lg.With(slog.String("env", env))
}

func prodWriter(logPath string) io.Writer {
	file := filepath.Join(logPath, "medpet.log")
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("cannot open log file %s, falling back to stdout: %v", file, err)
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, f)
}

// AlertSender delivers log alerts to an out-of-band channel (Telegram admin chat).
type AlertSender interface {
	SendMessage(msg string)
}

// SetupTelegramHandler wraps the logger so that records at or above level
// are additionally forwarded to the alert sender.
func SetupTelegramHandler(lg *slog.Logger, sender AlertSender, level slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:   lg.Handler(),
		sender: sender,
		level:  level,
	})
}

type telegramHandler struct {
	next   slog.Handler
	sender AlertSender
	level  slog.Level
	attrs  string
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError && r.Level >= h.level && h.sender != nil {
		msg := r.Level.String() + ": " + r.Message
		r.Attrs(func(a slog.Attr) bool {
			msg += "\n" + a.Key + ": " + a.Value.String()
			return true
		})
		if h.attrs != "" {
			msg += h.attrs
		}
		go h.sender.SendMessage(msg)
	}
	return h.next.Handle(ctx, r)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	extra := h.attrs
	for _, a := range attrs {
		extra += "\n" + a.Key + ": " + a.Value.String()
	}
	return &telegramHandler{
		next:   h.next.WithAttrs(attrs),
		sender: h.sender,
		level:  h.level,
		attrs:  extra,
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
