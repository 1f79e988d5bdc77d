package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZapJSONLogger("debug", &buf)
	require.NoError(t, err)

	l.With("module", "replication").Warn(context.Background(), "member timed out", "member", "r1")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "member timed out", entry["msg"])
	assert.Equal(t, "replication", entry["module"])
	assert.Equal(t, "r1", entry["member"])
}

func TestZapLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZapJSONLogger("error", &buf)
	require.NoError(t, err)

	l.Info(context.Background(), "hidden")
	l.Error(context.Background(), "shown")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("slog", "info", &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "via slog")
	assert.True(t, strings.Contains(buf.String(), `"msg":"via slog"`))

	buf.Reset()
	l, err = New("zap", "info", &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "via zap")
	require.NoError(t, l.(*ZapLogger).Sync())
	assert.Contains(t, buf.String(), `"msg":"via zap"`)

	_, err = New("logrus", "info", &buf)
	require.Error(t, err)

	_, err = New("slog", "loud", &buf)
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop().With("a", 1)
	require.NotPanics(t, func() {
		l.Debug(context.Background(), "x")
		l.Error(context.Background(), "y")
	})
}
