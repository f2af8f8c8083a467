package retriever

import (
	"context"
	"fmt"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	DefaultMaxFetch   = 20
	DefaultPreviewLen = 300
)

// Result holds the cited sources and the contexts chosen for synthesis.
type Result struct {
	Sources  []domain.Source
	Contexts []string
}

// Retriever runs nearest-neighbour search over one document's index and
// narrows the hits to deduplicated, diversified contexts.
type Retriever struct {
	embedder    port.Embedder
	loader      port.IndexLoader
	diversifier port.Diversifier
	maxFetch    int
	previewLen  int
}

func NewRetriever(embedder port.Embedder, loader port.IndexLoader, diversifier port.Diversifier, maxFetch, previewLen int) *Retriever {
	if maxFetch <= 0 {
		maxFetch = DefaultMaxFetch
	}
	if previewLen <= 0 {
		previewLen = DefaultPreviewLen
	}
	if diversifier == nil {
		diversifier = NewKeywordDiversifier()
	}
	return &Retriever{
		embedder:    embedder,
		loader:      loader,
		diversifier: diversifier,
		maxFetch:    maxFetch,
		previewLen:  previewLen,
	}
}

// FetchK is the number of raw hits requested for topK answers.
func (r *Retriever) FetchK(topK int) int {
	return min(max(topK*4, topK), r.maxFetch)
}

// Retrieve embeds the question, searches the document index and returns up
// to topK sources and topK diversified contexts. topK must already be
// clamped by the caller.
func (r *Retriever) Retrieve(ctx context.Context, docID, question string, topK int) (*Result, error) {
	chunks, index, err := r.loader.Load(ctx, docID)
	if err != nil {
		return nil, err
	}

	embeddings, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	fetchK := r.FetchK(topK)
	hits, err := index.Search(embeddings[0], fetchK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	sources := make([]domain.Source, 0, fetchK)
	contexts := make([]string, 0, fetchK)
	seen := make(analyzer.Seen)

	for _, hit := range hits {
		if hit.ID < 0 || hit.ID >= len(chunks) {
			continue
		}

		text := chunks[hit.ID]
		if !seen.Add(text) {
			continue
		}

		sources = append(sources, domain.Source{
			Rank:       len(sources) + 1,
			ChunkIndex: hit.ID,
			Distance:   hit.Distance,
			Text:       Preview(text, r.previewLen),
		})
		contexts = append(contexts, text)

		if len(contexts) >= fetchK {
			break
		}
	}

	if len(sources) > topK {
		sources = sources[:topK]
	}

	return &Result{
		Sources:  sources,
		Contexts: r.diversifier.Diversify(question, contexts, topK),
	}, nil
}

// Preview returns the first n characters of text, with "..." appended when
// text is longer.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
