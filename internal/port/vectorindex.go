package port

import (
	"context"

	"docqa/internal/domain"
)

// VectorIndex is a similarity-search structure over one document's chunk
// embeddings. Row i corresponds to chunk i.
type VectorIndex interface {
	// Search returns k hits in ascending distance order. When the index has
	// fewer than k rows the tail is padded with ID -1.
	Search(query []float32, k int) ([]domain.Hit, error)

	// Size returns the number of indexed rows.
	Size() int

	// Dimension returns the vector dimension.
	Dimension() int

	// MarshalBinary serializes the index for storage.
	MarshalBinary() ([]byte, error)
}

// IndexLoader returns the chunk list and vector index of a document from one
// consistent snapshot.
type IndexLoader interface {
	Load(ctx context.Context, docID string) ([]string, VectorIndex, error)
}
