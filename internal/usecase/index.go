package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"docqa/internal/adapter/vectorindex"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// Invalidator drops derived state kept for a document.
type Invalidator interface {
	Invalidate(docID string)
}

// IndexManager builds and loads per-document chunk lists and vector indexes.
type IndexManager struct {
	store       port.ArtifactStore
	chunker     port.Chunker
	embedder    port.Embedder
	metric      vectorindex.Metric
	invalidator Invalidator
	logger      *zap.Logger
	group       singleflight.Group
}

var _ port.IndexLoader = (*IndexManager)(nil)

// NewIndexManager creates a new index manager. invalidator may be nil.
func NewIndexManager(
	store port.ArtifactStore,
	chunker port.Chunker,
	embedder port.Embedder,
	metric vectorindex.Metric,
	invalidator Invalidator,
	logger *zap.Logger,
) *IndexManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexManager{
		store:       store,
		chunker:     chunker,
		embedder:    embedder,
		metric:      metric,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Build chunks the stored text of docID, embeds the chunks and replaces the
// document's chunk list and index in one write. Stage failures are reported
// in the result; the error is reserved for storage and embedding failures.
// Concurrent builds of the same document share one run.
func (m *IndexManager) Build(ctx context.Context, docID string) (domain.IndexResult, error) {
	v, err, _ := m.group.Do(docID, func() (any, error) {
		return m.build(ctx, docID)
	})
	if err != nil {
		return domain.IndexResult{}, err
	}
	return v.(domain.IndexResult), nil
}

func (m *IndexManager) build(ctx context.Context, docID string) (domain.IndexResult, error) {
	start := time.Now()

	raw, err := m.store.Get(docID, domain.ArtifactText)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return domain.IndexResult{Error: domain.ReasonTextMissing}, nil
	}
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to read text: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return domain.IndexResult{Error: domain.ReasonEmptyText}, nil
	}

	chunks := m.chunker.Chunk(text)
	if len(chunks) == 0 {
		return domain.IndexResult{Error: domain.ReasonNoChunks}, nil
	}

	vectors, err := m.embedder.Embed(ctx, chunks)
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to embed chunks: %w", err)
	}

	index, err := vectorindex.Build(m.metric, vectors)
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to build index: %w", err)
	}

	indexData, err := index.MarshalBinary()
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to encode index: %w", err)
	}
	chunkData, err := json.Marshal(chunks)
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to encode chunks: %w", err)
	}

	// A document deleted while embedding ran must stay deleted.
	doc, err := m.store.GetDoc(docID)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return domain.IndexResult{Error: domain.ReasonTextMissing}, nil
	}
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	doc.Indexed = true
	doc.Chunks = len(chunks)
	doc.EmbeddingDim = index.Dimension()
	doc.IndexedAt = time.Now().UTC()

	err = m.store.PutIndexBundle(doc, chunkData, indexData)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return domain.IndexResult{Error: domain.ReasonTextMissing}, nil
	}
	if err != nil {
		return domain.IndexResult{}, fmt.Errorf("failed to store index: %w", err)
	}
	m.invalidate(docID)

	m.logger.Info("document indexed",
		zap.String("doc_id", docID),
		zap.Int("chunks", len(chunks)),
		zap.Int("embedding_dim", index.Dimension()),
		zap.String("model", m.embedder.ModelName()),
		zap.Duration("took", time.Since(start)),
	)

	return domain.IndexResult{
		OK:           true,
		Chunks:       len(chunks),
		EmbeddingDim: index.Dimension(),
	}, nil
}

// Load returns the chunk list and vector index of docID, or
// domain.ErrIndexNotFound unless both exist. An index whose dimension or
// metric differs from the current settings yields domain.ErrIndexStale.
func (m *IndexManager) Load(_ context.Context, docID string) ([]string, port.VectorIndex, error) {
	chunkData, indexData, err := m.store.GetIndexBundle(docID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read index: %w", err)
	}
	if chunkData == nil || indexData == nil {
		return nil, nil, domain.ErrIndexNotFound
	}

	var chunks []string
	if err := json.Unmarshal(chunkData, &chunks); err != nil {
		return nil, nil, fmt.Errorf("failed to decode chunks: %w", err)
	}

	index, err := vectorindex.Decode(indexData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode index: %w", err)
	}

	if index.Dimension() != m.embedder.Dimension() || index.Metric() != m.metric {
		return nil, nil, fmt.Errorf("%s: %w", docID, domain.ErrIndexStale)
	}

	if index.Size() != len(chunks) {
		return nil, nil, fmt.Errorf("index for %s has %d rows but %d chunks", docID, index.Size(), len(chunks))
	}

	return chunks, index, nil
}

func (m *IndexManager) invalidate(docID string) {
	if m.invalidator != nil {
		m.invalidator.Invalidate(docID)
	}
}
