package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mxr.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	d, err := cfg.LoaderDelay()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
theme: neon
color: never
log:
  level: debug
loader:
  delay: 10ms
  source: seed.yaml
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "seed.yaml", cfg.Loader.Source)
	assert.Equal(t, "New Todo", cfg.Todo.DefaultName)

	d, err := cfg.LoaderDelay()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, d)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "theme: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, err := Load(writeFile(t, "theme: disco\n"))
		assert.ErrorContains(t, err, "unknown theme")
	})

	t.Run("unknown color mode", func(t *testing.T) {
		_, err := Load(writeFile(t, "color: rainbow\n"))
		assert.ErrorContains(t, err, "unknown color mode")
	})

	t.Run("bad delay", func(t *testing.T) {
		_, err := Load(writeFile(t, "loader:\n  delay: soon\n"))
		assert.ErrorContains(t, err, "loader delay")
	})
}
