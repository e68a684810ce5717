// Package logger configures the process-wide slog logger with a compact
// console format suited to watching a simulation tick by tick.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	File   string // optional log file, duplicated alongside stdout
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

// Init installs the default logger. Repeated calls are no-ops so tests and
// the sandbox cannot fight over the global.
func Init(cfg Config) {
	once.Do(func() {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		if cfg.File != "" {
			if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = io.MultiWriter(out, f)
			} else {
				fmt.Fprintf(os.Stderr, "logger: cannot open %s: %v\n", cfg.File, err)
			}
		}

		level := parseLevel(cfg.Level)
		var handler slog.Handler
		switch cfg.Format {
		case "json":
			handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
		case "text":
			handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
		default:
			handler = &tickHandler{w: out, level: level}
		}
		lg = slog.New(handler)
		slog.SetDefault(lg)
	})
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "debug"})
	}
	return lg
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// tickHandler prints one short line per record:
//
//	12:00:00.016 INFO  vault started  landing=[0 0 2]  duration=0.5
//
// The millisecond timestamp matters here; several records per 16ms tick are
// normal and plain seconds would collapse them.
type tickHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *tickHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *tickHandler) Handle(_ context.Context, r slog.Record) error {
	line := fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05.000"), levelTag(r.Level), r.Message)

	for _, a := range h.attrs {
		line += formatAttr(h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += formatAttr(h.group, a)
		return true
	})

	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *tickHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tickHandler{
		w:     h.w,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *tickHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &tickHandler{
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: prefix,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
