package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service. Values are read
// from AURACX_-prefixed environment variables with sensible defaults.
type Config struct {
	Environment string
	Port        int
	LogLevel    string

	// LLM backend (OpenAI-compatible chat completions).
	LLMModel      string
	LLMAPIKey     string
	LLMBaseURL    string
	LLMTimeoutSec int
	LLMMaxRetries int
	Temperature   float64
	MaxTokens     int

	// Orchestration.
	ConfidenceThreshold float64

	// Retrieval.
	CorpusPath string
	TopK       int

	// HTTP.
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AURACX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("llm_model", "gpt-4-turbo-preview")
	v.SetDefault("llm_api_key", "")
	v.SetDefault("llm_base_url", "https://api.openai.com/v1")
	v.SetDefault("llm_timeout_sec", 120)
	v.SetDefault("llm_max_retries", 3)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 2048)
	v.SetDefault("confidence_threshold", 0.7)
	v.SetDefault("corpus_path", "data/corpus.json")
	v.SetDefault("top_k", 5)
	v.SetDefault("allowed_origins", "*")

	cfg := &Config{
		Environment:         v.GetString("environment"),
		Port:                v.GetInt("port"),
		LogLevel:            v.GetString("log_level"),
		LLMModel:            v.GetString("llm_model"),
		LLMAPIKey:           v.GetString("llm_api_key"),
		LLMBaseURL:          v.GetString("llm_base_url"),
		LLMTimeoutSec:       v.GetInt("llm_timeout_sec"),
		LLMMaxRetries:       v.GetInt("llm_max_retries"),
		Temperature:         v.GetFloat64("temperature"),
		MaxTokens:           v.GetInt("max_tokens"),
		ConfidenceThreshold: v.GetFloat64("confidence_threshold"),
		CorpusPath:          v.GetString("corpus_path"),
		TopK:                v.GetInt("top_k"),
		AllowedOrigins:      splitOrigins(v.GetString("allowed_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", c.ConfidenceThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
