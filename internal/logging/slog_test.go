package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "path", "CheckList/MC")
	log.Info(ctx, "inf", "seq", 2)
	log.Warn(ctx, "wrn", "status", "OFFLINE")
	log.Error(ctx, "err", "verb", "POST")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "path=CheckList/MC",
		"level=INFO", "seq=2",
		"level=WARN", "status=OFFLINE",
		"level=ERROR", "verb=POST",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "warn")

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden too")
	log.Warn(context.Background(), "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "info")

	child := log.With("component", "fetcher")
	child.Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	require.True(t, strings.Contains(out, "component=fetcher"), out)
	require.True(t, strings.Contains(out, "k=v"), out)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	log := NewNopLogger()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.With("a", 1).Error(ctx, "x")
}
