package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	DSN            string        `yaml:"dsn"` // MySQL DSN
	RedisURL       string        `yaml:"redis_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Content        ContentConfig `yaml:"content"`
	AI             AIConfig      `yaml:"ai"`
	Audio          AudioConfig   `yaml:"audio"`
	S3             S3Options     `yaml:"s3"`
}

// ContentConfig locates the static summary catalog document.
type ContentConfig struct {
	CatalogURL          string `yaml:"catalog_url"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
}

// AIConfig configures model providers and flow behavior.
type AIConfig struct {
	Providers         []AIProvider `yaml:"providers"`
	ImageModel        string       `yaml:"image_model"`
	ChatHistoryWindow int          `yaml:"chat_history_window"`
}

// AIProvider describes one configured model provider.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// AudioConfig configures text-to-speech synthesis and signed URL issuance.
type AudioConfig struct {
	TTSModel            string `yaml:"tts_model"`
	Voice               string `yaml:"voice"`
	Format              string `yaml:"format"`
	MaxInputChars       int    `yaml:"max_input_chars"`
	SignedURLTTLMinutes int    `yaml:"signed_url_ttl_minutes"`
}

// S3Options configures the object storage bucket backing the audio cache.
type S3Options struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}
