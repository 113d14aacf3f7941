package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerIsNoop(t *testing.T) {
	var l Logger
	assert.True(t, l.IsZero())
	assert.NotPanics(t, func() {
		l.Info("nothing", Int("n", 1))
		l.With(String("k", "v")).Error("still nothing")
	})
}

func TestFromWriterFields(t *testing.T) {
	var buf bytes.Buffer
	l := FromWriter(&buf, "debug").With(String("session", "abc"))
	l.Debug("dispatch",
		Int("id", 4),
		Int64("n", 9),
		Bool("ok", true),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
		Err(nil),
	)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "dispatch", m["message"])
	assert.Equal(t, "debug", m["level"])
	assert.Equal(t, "abc", m["session"])
	assert.Equal(t, float64(4), m["id"])
	assert.Equal(t, true, m["ok"])
	assert.Equal(t, "boom", m["err"])
	assert.Contains(t, m["caller"], "logging_test.go:")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := FromWriter(&buf, "warn")
	assert.False(t, l.Enabled(LevelInfo))
	assert.True(t, l.Enabled(LevelError))

	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.log")
	l, closer := New(Config{Level: "info", File: FileConfig{Enabled: true, Path: path}, Console: true})
	l.Info("to file", String("k", "v"))
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, parseLevel(" trace ", LevelInfo))
	assert.Equal(t, LevelWarn, parseLevel("WARNING", LevelInfo))
	assert.Equal(t, LevelInfo, parseLevel("bogus", LevelInfo))
}
