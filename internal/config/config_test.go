package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
dsn: "user:pass@tcp(localhost:3306)/saarthi"
redis_url: "redis://localhost:6379/0"
content:
  catalog_url: "https://cdn.example.com/catalog.json"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "tts-1", cfg.Audio.TTSModel)
	assert.Equal(t, "nova", cfg.Audio.Voice)
	assert.Equal(t, "mp3", cfg.Audio.Format)
	assert.Equal(t, 4090, cfg.Audio.MaxInputChars)
	assert.Equal(t, 24*60, cfg.Audio.SignedURLTTLMinutes)
	assert.Equal(t, 20, cfg.AI.ChatHistoryWindow)
	assert.False(t, cfg.AudioConfigured())
}

func TestLoadRequiresDSN(t *testing.T) {
	_, err := Load(writeConfig(t, `
redis_url: "redis://localhost:6379/0"
content:
  catalog_url: "https://cdn.example.com/catalog.json"
`))
	require.ErrorContains(t, err, "dsn")
}

func TestLoadRejectsRelativeCatalogURL(t *testing.T) {
	_, err := Load(writeConfig(t, `
dsn: "user:pass@tcp(localhost:3306)/saarthi"
redis_url: "redis://localhost:6379/0"
content:
  catalog_url: "catalog.json"
`))
	require.ErrorContains(t, err, "catalog_url")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("SAARTHI_AI_API_KEY", "sk-env")

	cfg, err := Load(writeConfig(t, minimalConfig+`
ai:
  providers:
    - id: "openai"
      type: "openai"
      enabled: true
`))
	require.NoError(t, err)
	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "sk-env", cfg.AI.Providers[0].APIKey)
}

func TestAudioConfigured(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
s3:
  bucket: "saarthi-audio"
  region: "ap-south-1"
`))
	require.NoError(t, err)
	assert.True(t, cfg.AudioConfigured())
}
