package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger.Info("processed file", String(FieldFile, "movie.srt"), Int(FieldBlocks, 42))

	line := buf.String()
	if !strings.Contains(line, "INFO processed file") {
		t.Errorf("missing level and message: %q", line)
	}
	if !strings.Contains(line, "file=movie.srt") || !strings.Contains(line, "blocks=42") {
		t.Errorf("missing attributes: %q", line)
	}
}

func TestPrettyHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger.Info("msg", String("path", "with space.srt"))
	if !strings.Contains(buf.String(), `path="with space.srt"`) {
		t.Errorf("value not quoted: %q", buf.String())
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record leaked through warn level: %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "WARN kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("New accepted unknown format")
	}
}

func TestNoopHandler(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop handler reports enabled")
	}
}
