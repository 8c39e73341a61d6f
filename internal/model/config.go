package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the shared fetcher
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the URL-keyed result cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// SourcesConfig holds the base URLs of the external hadith sites.
// Overridable so tests can point adapters at a local fixture server.
type SourcesConfig struct {
	DorarBaseURL  string `yaml:"dorar_base_url" mapstructure:"dorar_base_url"`
	SunnahBaseURL string `yaml:"sunnah_base_url" mapstructure:"sunnah_base_url"`
}

// LLMConfig controls the optional verdict commentary generator
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			// Dorar search pages run large; 4 MB covers the worst observed
			MaxBodyBytes:      4_000_000,
			RequestsPerSecond: 2,
			Burst:             4,
			RespectRobots:     false,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Sources: SourcesConfig{
			DorarBaseURL:  "https://dorar.net",
			SunnahBaseURL: "https://sunnah.com",
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
			Timeout:   30,
		},
		Output: OutputConfig{},
	}
}
