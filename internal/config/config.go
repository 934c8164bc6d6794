package config

import (
	"fmt"
	neturl "net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort              = 2333
	defaultEnv               = "development"
	defaultFetchTimeout      = 15
	defaultTTSModel          = "tts-1"
	defaultVoice             = "nova"
	defaultAudioFormat       = "mp3"
	defaultMaxInputChars     = 4090
	defaultSignedURLTTL      = 24 * 60
	defaultChatHistoryWindow = 20
)

// Load reads and validates the YAML config at path.
func Load(path string) (*AppConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Content.FetchTimeoutSeconds <= 0 {
		c.Content.FetchTimeoutSeconds = defaultFetchTimeout
	}
	if c.Audio.TTSModel == "" {
		c.Audio.TTSModel = defaultTTSModel
	}
	if c.Audio.Voice == "" {
		c.Audio.Voice = defaultVoice
	}
	if c.Audio.Format == "" {
		c.Audio.Format = defaultAudioFormat
	}
	if c.Audio.MaxInputChars <= 0 {
		c.Audio.MaxInputChars = defaultMaxInputChars
	}
	if c.Audio.SignedURLTTLMinutes <= 0 {
		c.Audio.SignedURLTTLMinutes = defaultSignedURLTTL
	}
	if c.AI.ChatHistoryWindow <= 0 {
		c.AI.ChatHistoryWindow = defaultChatHistoryWindow
	}

	// Secrets may arrive via environment instead of the config file.
	for i := range c.AI.Providers {
		if strings.TrimSpace(c.AI.Providers[i].APIKey) == "" {
			c.AI.Providers[i].APIKey = os.Getenv("SAARTHI_AI_API_KEY")
		}
	}
	if strings.TrimSpace(c.S3.AccessKeyID) == "" {
		c.S3.AccessKeyID = os.Getenv("SAARTHI_S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.S3.SecretAccessKey) == "" {
		c.S3.SecretAccessKey = os.Getenv("SAARTHI_S3_SECRET_ACCESS_KEY")
	}
}

func (c *AppConfig) validate() error {
	if c.DSN == "" {
		return fmt.Errorf("config: dsn is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("config: redis_url is required")
	}
	if c.Content.CatalogURL == "" {
		return fmt.Errorf("config: content.catalog_url is required")
	}
	if u, err := neturl.Parse(c.Content.CatalogURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: content.catalog_url must be an absolute URL")
	}
	// An unset S3 bucket only disables the audio feature; it is checked at
	// request time so the rest of the service still starts.
	return nil
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

// AudioConfigured reports whether the object storage bucket is set.
func (c *AppConfig) AudioConfigured() bool {
	return strings.TrimSpace(c.S3.Bucket) != ""
}
