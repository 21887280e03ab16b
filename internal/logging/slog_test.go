package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestSlogLogger_InfoWritesMessageAndAttrs(t *testing.T) {
	log, buf := newBufferLogger(t)

	log.Info(context.Background(), "signed in", "user_id", 42)

	m := decodeLine(t, buf)
	assert.Equal(t, "signed in", m["msg"])
	assert.Equal(t, float64(42), m["user_id"])
	assert.Equal(t, "INFO", m["level"])
}

func TestSlogLogger_WithAddsPersistentAttrs(t *testing.T) {
	log, buf := newBufferLogger(t)

	child := log.With("module", "rest")
	child.Warn(context.Background(), "token rejected")

	m := decodeLine(t, buf)
	assert.Equal(t, "rest", m["module"])
	assert.Equal(t, "WARN", m["level"])
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufferLogger(t)

	log.Debug(context.Background(), "probe")
	m := decodeLine(t, buf)
	assert.Equal(t, "DEBUG", m["level"])

	buf.Reset()
	log.Error(context.Background(), "boom")
	m = decodeLine(t, buf)
	assert.Equal(t, "ERROR", m["level"])
}
