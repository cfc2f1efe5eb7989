// Package logger wraps log/slog behind a small context-first interface with
// one process-wide instance.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// Logger is what components depend on; Named scopes fields under a group.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field is one structured key/value.
type Field struct {
	Key   string
	Value any
}

func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Int64(key string, val int64) Field            { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field              { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Any(key string, val any) Field                { return Field{Key: key, Value: val} }
func Error(err error) Field                        { return Field{Key: "error", Value: err} }

type slogLogger struct {
	base *slog.Logger
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{base: l.base.WithGroup(name)}
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelWarn, msg, fields)
}

// emit must be called directly from a level method so the recorded source
// is the caller of that method.
func (l *slogLogger) emit(ctx context.Context, level slog.Level, msg string, fields []Field) {
	h := l.base.Handler()
	if !h.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	rec := slog.NewRecord(time.Now(), level, msg, pcs[0])
	for _, f := range fields {
		rec.AddAttrs(slog.Any(f.Key, f.Value))
	}
	_ = h.Handle(ctx, rec)
}

var (
	global   Logger
	levelVar slog.LevelVar
)

// Output formats accepted by WithFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type options struct {
	format string
	output io.Writer
	level  string
}

// Option configures Init.
type Option func(*options)

// WithFormat picks FormatText (default) or FormatJSON.
func WithFormat(format string) Option {
	return func(o *options) { o.format = strings.ToLower(strings.TrimSpace(format)) }
}

// WithOutput replaces stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithLevel takes the names SetLevelString accepts.
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// Init (re)builds the process logger. Every entry carries its call site.
func Init(opts ...Option) error {
	o := options{format: FormatText, output: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := SetLevelString(o.level); err != nil {
		return err
	}
	ho := &slog.HandlerOptions{Level: &levelVar, AddSource: true}
	var h slog.Handler
	switch o.format {
	case "", FormatText:
		h = slog.NewTextHandler(o.output, ho)
	case FormatJSON:
		h = slog.NewJSONHandler(o.output, ho)
	default:
		return fmt.Errorf("unknown log format: %s", o.format)
	}
	global = &slogLogger{base: slog.New(h)}
	return nil
}

// Get panics before Init; binaries call Init first thing in main.
func Get() Logger {
	if global == nil {
		panic("logger: Init has not been called")
	}
	return global
}

func Named(name string) Logger { return Get().Named(name) }

// Sync is a no-op kept for main's shutdown sequence; slog writes through.
func Sync() error { return nil }

// SetLevelString switches the level at runtime: debug, info (or empty),
// warn/warning, error.
func SetLevelString(level string) error {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "", "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	levelVar.Set(l)
	return nil
}
