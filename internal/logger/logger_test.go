package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Writer: &buf, Environment: tt.env, Level: slog.LevelInfo})
			log.Info("hello", "k", "v")

			var decoded map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
		})
	}
}

func TestNew_ExplicitFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Format: formatJSON})
	log.Info("hello")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "hello", decoded["msg"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelWarn})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "ERR")
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(h).With("service", "gallery")

	log.Info("listed", "variant", "website", "took", 15*time.Millisecond, "title", "two words")

	out := buf.String()
	assert.Contains(t, out, "service=gallery")
	assert.Contains(t, out, "variant=website")
	assert.Contains(t, out, "took=15ms")
	assert.Contains(t, out, `title="two words"`)
}

func TestPrettyHandler_GroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).WithGroup("http").With("method", "GET").WithGroup("req")

	log.Info("request", "path", "/health")

	out := buf.String()
	assert.Contains(t, out, "http.method=GET")
	assert.Contains(t, out, "http.req.path=/health")
}

func TestRedaction(t *testing.T) {
	for _, format := range []string{formatJSON, formatPretty} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Writer: &buf, Format: format})
			log.Info("login", "email", "a@example.com", "password", "hunter22", "Authorization", "Bearer v4.local.xyz")

			out := buf.String()
			assert.NotContains(t, out, "hunter22")
			assert.NotContains(t, out, "v4.local.xyz")
			assert.Contains(t, out, redacted)
			assert.Contains(t, out, "a@example.com")
		})
	}
}

func TestContextLogger(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	scoped := fallback.With("request_id", "abc")

	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.Same(t, scoped, FromContext(WithContext(context.Background(), scoped), fallback))
}

func TestFormatLevel(t *testing.T) {
	str, color := formatLevel(slog.LevelError)
	assert.Equal(t, "ERR", str)
	assert.Equal(t, colorRed, color)

	str, _ = formatLevel(slog.Level(12))
	assert.Equal(t, slog.Level(12).String(), str)
}
