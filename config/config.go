// Package config loads vecdb configuration from YAML with sensible defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the vecdb tool.
type Config struct {
	DB        DBConfig        `yaml:"db"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Query     QueryConfig     `yaml:"query"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DBConfig holds storage configuration.
type DBConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "local" or "openai"
	Model     string `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable for the API key
	BaseURL   string `yaml:"base_url"`    // override for OpenAI-compatible servers
	Dimension int    `yaml:"dimension"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	TopK int `yaml:"top_k"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional log file, in addition to stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Path: "vector_db.sqlite",
		},
		Embedding: EmbeddingConfig{
			Provider:  "local",
			Dimension: 256,
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Query: QueryConfig{
			TopK: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, layered over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
