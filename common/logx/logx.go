package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// holder keeps atomic.Value storing a single concrete type.
type holder struct {
	l Logger
}

var current atomic.Value

func init() {
	current.Store(holder{l: slog.Default()})
}

func L() Logger {
	return current.Load().(holder).l
}

// SetLogger replaces the process logger. A nil logger silences all output.
func SetLogger(l Logger) {
	if l == nil {
		l = nop{}
	}
	current.Store(holder{l: l})
}

// New returns a text logger writing records at or above level to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
