package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 800.0, cfg.Layout.Width)
	assert.Equal(t, 600.0, cfg.Layout.Height)
	assert.Equal(t, 13.0, cfg.Layout.HStep)
	assert.Equal(t, 18.0, cfg.Layout.VStep)
	assert.Equal(t, 200.0, cfg.Layout.InputWidth)
	assert.Equal(t, 100.0, cfg.Render.ScrollStep)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Empty(t, cfg.Fonts.Regular)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"narrow viewport", func(c *Config) { c.Layout.Width = 20 }, "layout.width"},
		{"zero height", func(c *Config) { c.Layout.Height = 0 }, "layout.height"},
		{"negative step", func(c *Config) { c.Layout.VStep = -1 }, "layout.hstep"},
		{"zero input width", func(c *Config) { c.Layout.InputWidth = 0 }, "layout.input_width"},
		{"zero scroll step", func(c *Config) { c.Render.ScrollStep = 0 }, "render.scroll_step"},
		{"unknown log format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toyengine.yaml")
	content := []byte("layout:\n  width: 1024\n  input_width: 150\nlogger:\n  level: debug\n  format: json\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, cfg.Layout.Width)
	assert.Equal(t, 150.0, cfg.Layout.InputWidth)
	assert.Equal(t, 600.0, cfg.Layout.Height, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  width: 10\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("TOYENGINE_LAYOUT_WIDTH", "640")
	t.Setenv("TOYENGINE_LOGGER_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Layout.Width)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestNewConfigFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("fonts.bold", "/fonts/bold.ttf")
	v.Set("render.scroll_step", 40)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "/fonts/bold.ttf", cfg.Fonts.Bold)
	assert.Equal(t, 40.0, cfg.Render.ScrollStep)
}
