package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_Formats(t *testing.T) {
	var text, js bytes.Buffer

	h, err := NewHandler(&text, "", slog.LevelInfo)
	require.NoError(t, err)
	slog.New(h).Info("Tool called", "tool", "get_weather")
	assert.Contains(t, text.String(), "tool=get_weather")

	h, err = NewHandler(&js, "JSON", slog.LevelInfo)
	require.NoError(t, err)
	slog.New(h).Info("Tool called", "tool", "get_joke")

	var record map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &record))
	assert.Equal(t, "get_joke", record["tool"])
}

func TestNewHandler_UnknownFormat(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, "xml", slog.LevelInfo)
	require.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestSetup_DebugWritesFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "logs", "multiagent.debug.log")
	closer, err := Setup(true, path, FormatText)
	require.NoError(t, err)

	slog.Debug("hello from the test")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
}

func TestSetup_NoDebugCreatesNothing(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "never.log")
	closer, err := Setup(false, path, FormatText)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
