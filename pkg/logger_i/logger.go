package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"time"
)

// Logger resolves the default slog handler on every call, so package-level
// loggers created before Init still follow it.
type Logger struct {
	attrs []any
}

// Init installs the process-wide handler. Production logs are JSON at info level.
func Init(prod bool) {
	InitWriter(os.Stdout, prod)
}

// InitWriter is Init with a caller-chosen sink; the mcp command logs to stderr
// because stdout carries the protocol.
func InitWriter(w io.Writer, prod bool) {
	options := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}

	var handler slog.Handler
	if prod {
		options.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{attrs: []any{"component", section}}
}

func (l *Logger) inner() *slog.Logger {
	return slog.Default().With(l.attrs...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.logWithSource(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	inner := l.inner()
	if !inner.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// Skip 3 levels: runtime.Callers, logWithSource, and the Info/Err/Dbg wrapper
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = inner.Handler().Handle(ctx, r)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{attrs: append(slices.Clip(l.attrs), args...)}
}

// WithContext attaches the trace and session ids carried by ctx, if any.
func (l *Logger) WithContext(ctx context.Context, keys ...string) *Logger {
	var args []any
	for _, k := range keys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			args = append(args, k, v)
		}
	}
	if len(args) == 0 {
		return l
	}
	return l.With(args...)
}
