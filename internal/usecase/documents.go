package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docqa/internal/adapter/extractor"
	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	MessageIngested = "uploaded, extracted, and indexed"
	MessageIndexed  = "indexed successfully"
)

// DocumentService handles upload, reindex, listing and deletion.
type DocumentService struct {
	store        port.ArtifactStore
	extractor    port.TextExtractor
	index        *IndexManager
	maxDocuments int
	logger       *zap.Logger
	newID        func() string
}

// NewDocumentService creates a document service. maxDocuments <= 0 means no
// limit.
func NewDocumentService(
	store port.ArtifactStore,
	extractor port.TextExtractor,
	index *IndexManager,
	maxDocuments int,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		store:        store,
		extractor:    extractor,
		index:        index,
		maxDocuments: maxDocuments,
		logger:       logger,
		newID:        func() string { return uuid.New().String() },
	}
}

// ReindexResult is returned by a successful reindex.
type ReindexResult struct {
	Message      string `json:"message"`
	DocID        string `json:"doc_id"`
	Chunks       int    `json:"chunks"`
	EmbeddingDim int    `json:"embedding_dim"`
}

// Ingest stores an upload and its extracted text under a new doc_id and
// builds its index. An unsupported format is rejected before anything is
// stored. An index failure is reported in the result, not as an error.
func (s *DocumentService) Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error) {
	format := extractor.FormatOf(filename)
	if !s.extractor.Supports(format) {
		return nil, domain.ErrUnsupportedFormat
	}

	if s.maxDocuments > 0 {
		n, err := s.store.CountDocs()
		if err != nil {
			return nil, fmt.Errorf("failed to count documents: %w", err)
		}
		if n >= s.maxDocuments {
			return nil, domain.ErrCapacityReached
		}
	}

	text, err := s.extractor.Extract(ctx, data, format)
	if err != nil {
		s.logger.Warn("text extraction failed", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	doc := domain.Document{
		ID:         s.newID(),
		Filename:   filename,
		FileType:   format,
		TextLength: utf8.RuneCountInString(text),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.PutSource(doc, data, []byte(text), s.maxDocuments); err != nil {
		if errors.Is(err, domain.ErrCapacityReached) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("doc_id", doc.ID),
		zap.String("filename", filename),
		zap.Int("text_length", doc.TextLength),
	)

	result, err := s.index.Build(ctx, doc.ID)
	if err != nil {
		// The upload is already stored; the caller can retry via reindex.
		s.logger.Error("index build failed", zap.String("doc_id", doc.ID), zap.Error(err))
		result = domain.IndexResult{Error: domain.ReasonIndexFailed}
	}

	out := &domain.IngestResult{
		Message:    MessageIngested,
		DocID:      doc.ID,
		FileType:   format,
		TextLength: doc.TextLength,
		Indexed:    result.OK,
	}
	if result.OK {
		out.Chunks = &result.Chunks
		out.EmbeddingDim = &result.EmbeddingDim
	} else {
		out.IndexError = &result.Error
		s.logger.Warn("document not indexed", zap.String("doc_id", doc.ID), zap.String("reason", result.Error))
	}
	return out, nil
}

// Reindex rebuilds the index of a previously uploaded document. It returns
// domain.ErrTextNotFound when no extracted text exists, and an error carrying
// the stage reason when the build fails.
func (s *DocumentService) Reindex(ctx context.Context, docID string) (*ReindexResult, error) {
	ok, err := s.store.Exists(docID, domain.ArtifactText)
	if err != nil {
		return nil, fmt.Errorf("failed to check text: %w", err)
	}
	if !ok {
		return nil, domain.ErrTextNotFound
	}

	result, err := s.index.Build(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, &IndexError{DocID: docID, Reason: result.Error}
	}

	return &ReindexResult{
		Message:      MessageIndexed,
		DocID:        docID,
		Chunks:       result.Chunks,
		EmbeddingDim: result.EmbeddingDim,
	}, nil
}

// IndexError reports a failed index stage.
type IndexError struct {
	DocID  string
	Reason string
}

func (e *IndexError) Error() string {
	return e.Reason
}

func (s *DocumentService) List() ([]domain.Document, error) {
	docs, err := s.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

func (s *DocumentService) Get(docID string) (domain.Document, error) {
	return s.store.GetDoc(docID)
}

// Delete removes a document and all four of its artifacts.
func (s *DocumentService) Delete(docID string) error {
	if err := s.store.DeleteDoc(docID); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	s.index.invalidate(docID)
	s.logger.Info("document deleted", zap.String("doc_id", docID))
	return nil
}
