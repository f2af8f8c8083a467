package memstore

import (
	"fmt"
	"sort"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/port"
)

type artifactKey struct {
	docID string
	kind  domain.ArtifactKind
}

// MemoryStore is an ArtifactStore held entirely in memory. Multi-artifact
// writes happen under one lock so readers never see half a bundle.
type MemoryStore struct {
	mu        sync.RWMutex
	docs      map[string]domain.Document
	artifacts map[artifactKey][]byte
}

var _ port.ArtifactStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:      make(map[string]domain.Document),
		artifacts: make(map[artifactKey][]byte),
	}
}

func validKind(kind domain.ArtifactKind) bool {
	switch kind {
	case domain.ArtifactUpload, domain.ArtifactText, domain.ArtifactChunks, domain.ArtifactIndex:
		return true
	}
	return false
}

func (s *MemoryStore) Get(docID string, kind domain.ArtifactKind) ([]byte, error) {
	if !validKind(kind) {
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.artifacts[artifactKey{docID, kind}]
	if !ok {
		return nil, fmt.Errorf("%s for %s: %w", kind, docID, domain.ErrDocumentNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Put(docID string, kind domain.ArtifactKind, data []byte) error {
	if !validKind(kind) {
		return fmt.Errorf("unknown artifact kind: %s", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[artifactKey{docID, kind}] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Exists(docID string, kind domain.ArtifactKind) (bool, error) {
	if !validKind(kind) {
		return false, fmt.Errorf("unknown artifact kind: %s", kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.artifacts[artifactKey{docID, kind}]
	return ok, nil
}

func (s *MemoryStore) PutSource(doc domain.Document, upload, text []byte, maxDocuments int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; maxDocuments > 0 && !exists && len(s.docs) >= maxDocuments {
		return domain.ErrCapacityReached
	}
	s.artifacts[artifactKey{doc.ID, domain.ArtifactUpload}] = append([]byte(nil), upload...)
	s.artifacts[artifactKey{doc.ID, domain.ArtifactText}] = append([]byte(nil), text...)
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) PutIndexBundle(doc domain.Document, chunks, index []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hasDoc := s.docs[doc.ID]
	_, hasText := s.artifacts[artifactKey{doc.ID, domain.ArtifactText}]
	if !hasDoc || !hasText {
		return fmt.Errorf("%s: %w", doc.ID, domain.ErrDocumentNotFound)
	}
	s.artifacts[artifactKey{doc.ID, domain.ArtifactChunks}] = append([]byte(nil), chunks...)
	s.artifacts[artifactKey{doc.ID, domain.ArtifactIndex}] = append([]byte(nil), index...)
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) GetIndexBundle(docID string) ([]byte, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var chunks, index []byte
	if data, ok := s.artifacts[artifactKey{docID, domain.ArtifactChunks}]; ok {
		chunks = append([]byte(nil), data...)
	}
	if data, ok := s.artifacts[artifactKey{docID, domain.ArtifactIndex}]; ok {
		index = append([]byte(nil), data...)
	}
	return chunks, index, nil
}

func (s *MemoryStore) PutDoc(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", id, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

// ListDocs returns documents sorted by ID, matching the bolt store's key order.
func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) CountDocs() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

func (s *MemoryStore) DeleteDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrDocumentNotFound)
	}
	delete(s.docs, id)
	for _, kind := range []domain.ArtifactKind{domain.ArtifactUpload, domain.ArtifactText, domain.ArtifactChunks, domain.ArtifactIndex} {
		delete(s.artifacts, artifactKey{id, kind})
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
