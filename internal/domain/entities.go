package domain

import "time"

// Document is the metadata record for one uploaded file.
type Document struct {
	ID           string    `json:"doc_id"`
	Filename     string    `json:"filename"`
	FileType     string    `json:"file_type"`
	TextLength   int       `json:"text_length"`
	Indexed      bool      `json:"indexed"`
	Chunks       int       `json:"chunks,omitempty"`
	EmbeddingDim int       `json:"embedding_dim,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	IndexedAt    time.Time `json:"indexed_at,omitempty"`
}

// ArtifactKind names one of the four per-document artifacts.
type ArtifactKind string

const (
	ArtifactUpload ArtifactKind = "uploads"
	ArtifactText   ArtifactKind = "texts"
	ArtifactChunks ArtifactKind = "chunks"
	ArtifactIndex  ArtifactKind = "indexes"
)

// IndexResult reports the outcome of building a document index.
// A failed stage sets OK=false and Error to a user-visible reason.
type IndexResult struct {
	OK           bool   `json:"ok"`
	Chunks       int    `json:"chunks,omitempty"`
	EmbeddingDim int    `json:"embedding_dim,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Index stage failure reasons, checked in this order.
const (
	ReasonTextMissing = "Text file missing"
	ReasonEmptyText   = "Empty extracted text"
	ReasonNoChunks    = "No chunks created"
	ReasonIndexFailed = "Indexing failed. Call /index/{doc_id} to retry."
)

// IngestResult is returned after an upload has been stored and indexed.
type IngestResult struct {
	Message      string  `json:"message"`
	DocID        string  `json:"doc_id"`
	FileType     string  `json:"file_type"`
	TextLength   int     `json:"text_length"`
	Indexed      bool    `json:"indexed"`
	Chunks       *int    `json:"chunks"`
	EmbeddingDim *int    `json:"embedding_dim"`
	IndexError   *string `json:"index_error"`
}

// Source is one cited chunk in an answer.
type Source struct {
	Rank       int     `json:"rank"`
	ChunkIndex int     `json:"chunk_index"`
	Distance   float64 `json:"distance"`
	Text       string  `json:"text"`
}

// Answer is the response to a question about a document.
type Answer struct {
	DocID    string   `json:"doc_id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources"`
}

// Hit is one raw nearest-neighbour result. ID is -1 when the index had
// fewer rows than requested.
type Hit struct {
	ID       int
	Distance float64
}
