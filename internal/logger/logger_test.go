package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/dungeon/internal/config"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expect      string
	}{
		{name: "production is json", environment: "production", expect: `"msg":"hello"`},
		{name: "development is text", environment: "development", expect: `msg=hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewHandler(&buf, &config.Config{Environment: tt.environment, LogLevel: slog.LevelInfo}))
			l.Info("hello")
			l.Debug("hidden")
			assert.Contains(t, buf.String(), tt.expect)
			assert.NotContains(t, buf.String(), "hidden")
		})
	}
}

func TestSetup_LogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "dungeon.log")
	l, closeFn, err := Setup(&config.Config{LogFile: path, LogLevel: slog.LevelDebug})
	require.NoError(t, err)

	WithError(l.With("session_id", "abc"), errors.New("boom")).Debug("turn failed")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session_id=abc")
	assert.Contains(t, string(data), "error=boom")
}

func TestSetup_Discard(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l, closeFn, err := Setup(&config.Config{})
	require.NoError(t, err)
	l.Error("nobody hears this")
	assert.NoError(t, closeFn())
}

func TestSetup_BadPath(t *testing.T) {
	_, _, err := Setup(&config.Config{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
