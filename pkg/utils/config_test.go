package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.Images.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.UI.CarouselInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.RemovalDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.ScrollSettleDelay)
	assert.Equal(t, 400.0, cfg.UI.ScrollStep)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flicksy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://flicksy.example.com/
  timeout: 3s
ui:
  carousel_interval: 8s
log:
  level: debug
`), 0o600))

	t.Setenv("FLICKSY_LOG_FORMAT", "json")
	t.Setenv("FLICKSY_UI_REMOVAL_DELAY", "1s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://flicksy.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8*time.Second, cfg.UI.CarouselInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, time.Second, cfg.UI.RemovalDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.ScrollSettleDelay)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("FLICKSY_API_BASE_URL", "localhost")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "api.base_url", envKey("FLICKSY_API_BASE_URL"))
	assert.Equal(t, "ui.scroll_settle_delay", envKey("FLICKSY_UI_SCROLL_SETTLE_DELAY"))
	assert.Equal(t, "log.level", envKey("FLICKSY_LOG_LEVEL"))
}
