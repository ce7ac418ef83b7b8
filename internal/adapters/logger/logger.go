// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.alchm.dev/scullery/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
// If zerr's API changes, errors gracefully fall back to standard error handling.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	level    slog.Level
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{
		logger: slog.New(handler),
		output: os.Stderr,
		level:  slog.LevelInfo,
	}
}

// NewVerbose creates a Logger that also emits debug records.
func NewVerbose() ports.Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &Logger{
		logger: slog.New(handler),
		output: os.Stderr,
		level:  slog.LevelDebug,
	}
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode setting. A nil writer resets to stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuildLocked()
}

// SetJSON switches between JSON and pretty logging.
// The output destination is preserved from SetOutput calls.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuildLocked()
}

// rebuildLocked reinstalls the slog handler after a mode or output change.
// Callers must hold l.mu.
func (l *Logger) rebuildLocked() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.level})
	} else {
		handler = NewPrettyHandler(w, &slog.HandlerOptions{Level: l.level})
	}
	l.logger = slog.New(handler)
}

// Debug logs a verbose diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error, rendering zerr chains hierarchically in pretty mode.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	entries := collectErrorEntries(err)
	l.logger.Error(formatErrorEntries(entries))
}

// collectErrorEntries traverses the error chain and collects one message per
// link. zerr errors report their own message without the chain; a standard
// error terminates the walk with its full Error() text.
func collectErrorEntries(err error) []string {
	var messages []string
	current := err

	for current != nil {
		if m, ok := current.(messager); ok {
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
		} else {
			messages = append(messages, current.Error())
			break
		}
	}

	return messages
}

// formatErrorEntries renders collected chain messages hierarchically:
// the main error first, then an indented "Caused by:" list.
func formatErrorEntries(messages []string) string {
	var formatted []string

	for i, msg := range messages {
		lines := strings.Split(msg, "\n")

		if i == 0 {
			formatted = append(formatted, "Error: "+lines[0])
			for _, line := range lines[1:] {
				formatted = append(formatted, "       "+line)
			}
			continue
		}

		if i == 1 {
			formatted = append(formatted, "", "  Caused by:")
		}
		formatted = append(formatted, "    → "+lines[0])
		for _, line := range lines[1:] {
			formatted = append(formatted, "      "+line)
		}
	}

	return strings.Join(formatted, "\n")
}
