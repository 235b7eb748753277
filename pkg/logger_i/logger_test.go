package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_FollowsInitAndCarriesContext(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	// created before the handler is installed, like package-level loggers
	logger := NewLogger("test_component")

	var buf bytes.Buffer
	InitWriter(&buf, true)

	ctx := context.WithValue(context.Background(), "traceId", "t-1")
	logger.WithContext(ctx, "traceId", "sessionId").Info("hello", "n", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "test_component", line["component"])
	assert.Equal(t, "t-1", line["traceId"])
	assert.NotContains(t, line, "sessionId")
	assert.EqualValues(t, 3, line["n"])
}

func TestLogger_ProdDropsDebug(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	InitWriter(&buf, true)
	NewLogger("quiet").Debug("not shown")
	assert.Zero(t, buf.Len())
}

func TestLogger_WithDoesNotAlias(t *testing.T) {
	base := NewLogger("base")
	a := base.With("k", "a")
	b := base.With("k", "b")
	assert.Equal(t, []any{"component", "base", "k", "a"}, a.attrs)
	assert.Equal(t, []any{"component", "base", "k", "b"}, b.attrs)
}
