package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
mode: collect
log:
  level: debug
  sections: [check.unify, cli]
color: false
`), FileName)
	require.NoError(t, err)
	assert.Equal(t, "collect", cfg.Mode)
	assert.Equal(t, []string{"check.unify", "cli"}, cfg.Log.Sections)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`color: true`), FileName)
	require.NoError(t, err)
	assert.Equal(t, "fail-fast", cfg.Mode)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown mode", `mode: lenient`, "mode must be fail-fast or collect"},
		{"unknown level", "log:\n  level: loud", "invalid log level"},
		{"not yaml", `mode: [`, "parsing"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), FileName)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("mode: collect\n"), 0o644))

	path, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)

	cfg, err := LoadFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, "collect", cfg.Mode)
}
