// Package embedding provides the text-to-vector providers behind the
// core.Embedder contract.
package embedding

import (
	"fmt"

	"github.com/agenttools/vecdb/config"
	"github.com/agenttools/vecdb/pkg/core"
)

// New builds the embedder selected by the configuration. Mixing providers or
// models against one store is undefined behavior for similarity scoring, so
// the configured provider should stay fixed for the lifetime of a database.
func New(cfg config.EmbeddingConfig) (core.Embedder, error) {
	switch cfg.Provider {
	case "", "local":
		dim := cfg.Dimension
		if dim <= 0 {
			dim = 256
		}
		return NewHashEmbedder(dim)
	case "openai":
		return NewOpenAIEmbedder(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL, cfg.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}
