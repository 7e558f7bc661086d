package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat_Fields(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)
	entry := format(ts, LevelInfo, CatDropdown, "selection mediated", "id", "wave", "value", "2")
	require.Equal(t, "2025-12-06T10:45:00 [INFO] [dropdown] selection mediated id=wave value=2\n", entry)
}

func TestFormat_OddFields(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)
	entry := format(ts, LevelWarn, CatConfig, "odd", "orphan")
	require.True(t, strings.HasSuffix(entry, " orphan=<missing>\n"), "got %q", entry)
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestWriter_MinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatApp, "hidden")
	Warn(CatApp, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [app] shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatApp, "muted")
	require.Empty(t, buf.String())
}

func TestErrorErr_AppendsError(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatWatcher, "watch failed", errors.New("boom"), "path", "/tmp/x")
	require.Contains(t, buf.String(), "path=/tmp/x error=boom")

	buf.Reset()
	ErrorErr(CatWatcher, "nil error", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestNoLogger_NoPanic(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatApp, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatConfig, "hello", "k", 1)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] hello k=1")
}
