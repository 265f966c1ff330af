package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DB.Path != "vector_db.sqlite" {
		t.Errorf("DB.Path = %q, want vector_db.sqlite", cfg.DB.Path)
	}
	if cfg.Embedding.Provider != "local" {
		t.Errorf("Embedding.Provider = %q, want local", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension != 256 {
		t.Errorf("Embedding.Dimension = %d, want 256", cfg.Embedding.Dimension)
	}
	if cfg.Query.TopK != 5 {
		t.Errorf("Query.TopK = %d, want 5", cfg.Query.TopK)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DB.Path != DefaultConfig().DB.Path {
		t.Errorf("DB.Path = %q, want default", cfg.DB.Path)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecdb.yaml")
	content := `
db:
  path: /tmp/custom.sqlite
embedding:
  provider: openai
  model: text-embedding-3-small
query:
  top_k: 10
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DB.Path != "/tmp/custom.sqlite" {
		t.Errorf("DB.Path = %q, want /tmp/custom.sqlite", cfg.DB.Path)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("Embedding.Provider = %q, want openai", cfg.Embedding.Provider)
	}
	if cfg.Query.TopK != 10 {
		t.Errorf("Query.TopK = %d, want 10", cfg.Query.TopK)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Embedding.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Embedding.APIKeyEnv = %q, want OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecdb.yaml")
	if err := os.WriteFile(path, []byte("db: [not a mapping"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
