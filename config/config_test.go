package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "PRESET_FILE", "ENCODER_URL", "TRANSLATE_ENDPOINT", "TRANSLATE_RATE_INTERVAL", "HISTORY_TTL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "json/Strong_Prompt.json", cfg.PresetFile)
	assert.Equal(t, "https://transmart.qq.com/api/imt", cfg.Translate.Endpoint)
	assert.Zero(t, cfg.Translate.RateInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
preset_file: /srv/presets.json
encoder_url: http://clip:7860
translate:
  rate_interval: 500ms
history_ttl: 10m
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/srv/presets.json", cfg.PresetFile)
	assert.Equal(t, "http://clip:7860", cfg.EncoderURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Translate.RateInterval)
	assert.Equal(t, "https://transmart.qq.com/api/imt", cfg.Translate.Endpoint, "unset keys keep defaults")
	assert.Equal(t, 10*time.Minute, cfg.HistoryTTL)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("PRESET_FILE", "/data/styles.json")
	t.Setenv("TRANSLATE_ENDPOINT", "http://localhost:1234/imt")
	t.Setenv("TRANSLATE_RATE_INTERVAL", "2s")
	t.Setenv("HISTORY_TTL", "0s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "/data/styles.json", cfg.PresetFile)
	assert.Equal(t, "http://localhost:1234/imt", cfg.Translate.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Translate.RateInterval)
	assert.Zero(t, cfg.HistoryTTL)
}

func TestEnvOverrideBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_TTL", "forever")
	_, err := Load("")
	assert.ErrorContains(t, err, "HISTORY_TTL")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Translate.Endpoint = "ftp://example.com"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.EncoderURL = "clip:7860"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PresetFile = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Translate.RateInterval = -time.Second
	assert.Error(t, cfg.Validate())
}
