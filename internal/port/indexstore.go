package port

import "docqa/internal/domain"

// ArtifactStore persists the per-document artifacts keyed by doc_id and kind.
type ArtifactStore interface {
	Get(docID string, kind domain.ArtifactKind) ([]byte, error)

	Put(docID string, kind domain.ArtifactKind, data []byte) error

	Exists(docID string, kind domain.ArtifactKind) (bool, error)

	// PutSource stores the raw upload, its extracted text and the metadata
	// record of a new document in one write. When maxDocuments > 0 and that
	// many documents already exist it stores nothing and returns
	// domain.ErrCapacityReached.
	PutSource(doc domain.Document, upload, text []byte, maxDocuments int) error

	// PutIndexBundle replaces the chunk list and vector index of a document
	// and updates its metadata in one atomic write. It returns
	// domain.ErrDocumentNotFound when the metadata record or extracted text
	// is gone, so a deleted document is never recreated.
	PutIndexBundle(doc domain.Document, chunks, index []byte) error

	// GetIndexBundle reads the chunk list and vector index from one
	// consistent snapshot. Either value is nil when absent.
	GetIndexBundle(docID string) (chunks, index []byte, err error)

	PutDoc(doc domain.Document) error

	GetDoc(id string) (domain.Document, error)

	ListDocs() ([]domain.Document, error)

	CountDocs() (int, error)

	// DeleteDoc removes the metadata record and all artifacts of a document.
	DeleteDoc(id string) error

	Close() error
}
