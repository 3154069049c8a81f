package model

import "time"

// Config is the complete runtime configuration. Values are resolved by the
// CLI layer: flags > environment (VERISTREAM_*) > config file > defaults.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	FactCheck FactCheckConfig `yaml:"factcheck" mapstructure:"factcheck"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port         int      `yaml:"port" mapstructure:"port"`
	MaxBodyBytes int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LLMConfig configures the generative backend. The backend speaks the
// OpenAI chat-completions wire format; BaseURL selects the actual vendor.
type LLMConfig struct {
	APIKey          string        `yaml:"-" mapstructure:"-"` // env only, never persisted
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	Model           string        `yaml:"model" mapstructure:"model"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens       int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestInterval time.Duration `yaml:"request_interval" mapstructure:"request_interval"`
}

// FactCheckConfig configures the structured fact-check lookup service.
type FactCheckConfig struct {
	APIKey  string        `yaml:"-" mapstructure:"-"` // env only, never persisted
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig controls the in-memory lookup cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// PipelineConfig holds the claim-extraction and validation thresholds.
type PipelineConfig struct {
	MinArticleChars int `yaml:"min_article_chars" mapstructure:"min_article_chars"`
	MinClaimChars   int `yaml:"min_claim_chars" mapstructure:"min_claim_chars"`
	ClaimsMin       int `yaml:"claims_min" mapstructure:"claims_min"`
	ClaimsMax       int `yaml:"claims_max" mapstructure:"claims_max"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         3001,
			MaxBodyBytes: 2_000_000,
			CORSOrigins:  []string{"*"},
		},
		LLM: LLMConfig{
			BaseURL:         "https://api.perplexity.ai",
			Model:           "sonar-pro",
			Timeout:         60 * time.Second,
			MaxTokens:       2048,
			RequestInterval: 1200 * time.Millisecond,
		},
		FactCheck: FactCheckConfig{
			BaseURL: "https://factchecktools.googleapis.com/v1alpha1",
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             6 * time.Hour,
			CleanupInterval: 30 * time.Minute,
		},
		Pipeline: PipelineConfig{
			MinArticleChars: 100,
			MinClaimChars:   10,
			ClaimsMin:       5,
			ClaimsMax:       7,
		},
	}
}
