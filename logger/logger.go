// Package logger wraps log/slog with a handler that fans every record
// out to an optional log file and, for warnings and above (or
// everything, in debug mode), to stderr as well.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler that writes a fixed text layout to a file
// and conditionally echoes it to stderr.
type Handler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu, debug: h.debug}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu, debug: h.debug}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")
	strs := []string{formattedTime, r.Level.String() + ":", r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
	}
	line := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(line)
	}
	if h.debug || r.Level >= slog.LevelWarn {
		_, err = os.Stderr.Write(line)
	}
	return err
}

// NewHandler builds a Handler writing to file (nil means file logging
// is off) at the given level. debug also echoes every record to
// stderr, not just warnings and above.
func NewHandler(file io.Writer, level slog.Level, debug bool) *Handler {
	var th slog.Handler
	if file != nil {
		th = slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	} else {
		th = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
	}
	return &Handler{out: file, h: th, mu: &sync.Mutex{}, debug: debug}
}

// ParseLevel maps the config file's logLevel directive onto a
// slog.Level, defaulting to Info for anything unrecognized.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// New opens logPath (if non-empty) and returns a ready-to-use logger.
// Callers must close the returned file handle (if any) on shutdown.
func New(logPath string, level slog.Level) (*slog.Logger, *os.File, error) {
	var file *os.File
	var err error
	if logPath != "" {
		file, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
	}
	debug := level <= slog.LevelDebug
	h := NewHandler(file, level, debug)
	return slog.New(h), file, nil
}
