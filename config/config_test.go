package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFileOrKey(t *testing.T) {
	// A missing credential must not fail startup; backend calls fail later
	// instead.
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai/", cfg.Gemini.BaseURL)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 0.001)
	assert.Equal(t, 3500, cfg.Gemini.HistoryTokenLimit)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gemini:\n  model: from-file\nserver:\n  port: \"9000\"\n"), 0o600))

	t.Setenv("GEMINI_MODEL", "from-env")

	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Gemini.Model)
	assert.Equal(t, "9000", cfg.Server.Port)
}
