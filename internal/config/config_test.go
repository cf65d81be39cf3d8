package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wari-market/wari/internal/viewport"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "es-PE", cfg.Locale)
	assert.Equal(t, viewport.DefaultConfig(), cfg.Viewport())
}

func TestLoadDefaults(t *testing.T) {
	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wari.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
map:
  max_scale: 6
  step: 1
  transition_ms: 150
logging:
  level: debug
`), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 6.0, cfg.Map.MaxScale)
	assert.Equal(t, 1.0, cfg.Map.MinScale)
	assert.Equal(t, 150*time.Millisecond, cfg.Viewport().TransitionDuration)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WARI_MAP_STEP", "0.25")
	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Map.Step)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"min below one", func(c *Config) { c.Map.MinScale = 0.5 }},
		{"max below min", func(c *Config) { c.Map.MaxScale = 0.9 }},
		{"zero step", func(c *Config) { c.Map.Step = 0 }},
		{"negative sensitivity", func(c *Config) { c.Map.PinchSensitivity = -1 }},
		{"negative transition", func(c *Config) { c.Map.TransitionMs = -5 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
