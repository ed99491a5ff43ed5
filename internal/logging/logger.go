package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFileName is the file NewLogger writes to inside its directory.
const LogFileName = "arbiter.log"

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Logger writes JSON records through slog. Child loggers created with With,
// WithMatch, WithTeam or WithComponent share the parent's output.
// It is safe for concurrent use.
type Logger struct {
	slog *slog.Logger
	out  *output
}

// output is the file shared by a logger and all of its children.
type output struct {
	mu   sync.Mutex
	file *os.File
}

// NewLogger opens {dir}/arbiter.log for appending and logs to it at level
// ("debug", "info", "warn" or "error", case-insensitive; anything else means
// info). An empty dir logs to stderr.
func NewLogger(dir string, level string) (*Logger, error) {
	if dir == "" {
		return NewWriterLogger(os.Stderr, level), nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriterLogger(file, level)
	l.out.file = file
	return l, nil
}

// NewWriterLogger creates a Logger writing JSON records to w. Close does not
// close w.
func NewWriterLogger(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelOf(level)})
	return &Logger{slog: slog.New(handler), out: &output{}}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return &Logger{slog: slog.New(slog.DiscardHandler), out: &output{}}
}

func levelOf(name string) slog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// WithMatch tags every record with the match (scenario) name.
func (l *Logger) WithMatch(name string) *Logger {
	return l.With("match", name)
}

// WithTeam tags every record with a team index.
func (l *Logger) WithTeam(index int) *Logger {
	return l.With("team", index)
}

// WithComponent tags every record with the emitting component, e.g. "team".
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// With returns a child logger carrying alternating key/value attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{slog: l.slog.With(args...), out: l.out}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Close syncs and closes the log file opened by NewLogger. It is a no-op for
// other loggers and on repeated calls.
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file == nil {
		return nil
	}
	f := l.out.file
	l.out.file = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
