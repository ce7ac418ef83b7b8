package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.alchm.dev/scullery/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info level",
			level:      slog.LevelInfo,
			msg:        "analyzing 42 files",
			goldenName: "handler_info",
		},
		{
			name:       "warn level",
			level:      slog.LevelWarn,
			msg:        "checkpoint corrupt, starting fresh",
			goldenName: "handler_warn",
		},
		{
			name:       "error level",
			level:      slog.LevelError,
			msg:        "campaign aborted",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			level:      slog.LevelDebug,
			msg:        "cache probe",
			goldenName: "handler_debug_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_DebugGlyph(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.New(handler).Debug("cache probe")

	g := goldie.New(t)
	g.Assert(t, "handler_debug", buf.Bytes())
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single attribute",
			attrs:      []slog.Attr{slog.String("category", "type-safety")},
			msg:        "campaign planned",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple attributes",
			attrs:      []slog.Attr{slog.String("file", "src/a.ts"), slog.Int("issues", 7)},
			msg:        "batch queued",
			goldenName: "handler_attrs_multi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}).WithAttrs(tt.attrs)
			lg := slog.New(handler)

			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}).WithGroup("gate").WithAttrs([]slog.Attr{slog.String("name", "typescript")})
	lg := slog.New(handler)

	lg.Info("gate evaluated")

	g := goldie.New(t)
	g.Assert(t, "handler_group", buf.Bytes())
}
