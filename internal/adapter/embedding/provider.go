package embedding

import (
	"fmt"

	"docqa/config"
	"docqa/internal/port"
)

const defaultHashDimension = 256

// FromConfig creates the embedder named by cfg.Provider.
func FromConfig(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIEmbedder(cfg.APIKeyEnv, cfg.Model, cfg.Dimension, cfg.BatchSize)
	case "openai-compatible":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("embedding.base_url is required for provider %q", cfg.Provider)
		}
		return NewOpenAICompatibleEmbedder(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL, cfg.Dimension, cfg.BatchSize)
	case "ollama":
		return NewOllamaEmbedder(cfg.Model, cfg.BaseURL, cfg.Dimension, cfg.BatchSize)
	case "hash":
		dim := cfg.Dimension
		if dim <= 0 {
			dim = defaultHashDimension
		}
		return NewHashEmbedder(dim), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
