package embedding

import (
	"testing"

	"docqa/config"
)

func TestFromConfigHash(t *testing.T) {
	e, err := FromConfig(config.EmbeddingConfig{Provider: "hash"})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if e.Dimension() != defaultHashDimension {
		t.Errorf("expected dimension %d, got %d", defaultHashDimension, e.Dimension())
	}

	e, err = FromConfig(config.EmbeddingConfig{Provider: "hash", Dimension: 32})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if e.Dimension() != 32 {
		t.Errorf("expected dimension 32, got %d", e.Dimension())
	}
}

func TestFromConfigOpenAIRequiresKey(t *testing.T) {
	t.Setenv("DOCQA_TEST_MISSING_KEY", "")
	_, err := FromConfig(config.EmbeddingConfig{Provider: "openai", APIKeyEnv: "DOCQA_TEST_MISSING_KEY"})
	if err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestFromConfigOllama(t *testing.T) {
	e, err := FromConfig(config.EmbeddingConfig{Provider: "ollama", Model: "nomic-embed-text"})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if e.Dimension() != 768 {
		t.Errorf("expected dimension 768, got %d", e.Dimension())
	}
}

func TestFromConfigErrors(t *testing.T) {
	if _, err := FromConfig(config.EmbeddingConfig{Provider: "openai-compatible", APIKeyEnv: "X"}); err == nil {
		t.Error("expected error without base_url")
	}
	if _, err := FromConfig(config.EmbeddingConfig{Provider: "word2vec"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
