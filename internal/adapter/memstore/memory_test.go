package memstore

import (
	"errors"
	"sync"
	"testing"

	"docqa/internal/domain"
)

func TestMemoryStore_BundleRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	doc := domain.Document{ID: "d1"}

	if err := s.PutSource(doc, []byte("raw"), []byte("text"), 0); err != nil {
		t.Fatal(err)
	}
	if err := s.PutIndexBundle(doc, []byte("chunks"), []byte("index")); err != nil {
		t.Fatal(err)
	}

	chunks, index, err := s.GetIndexBundle("d1")
	if err != nil {
		t.Fatal(err)
	}
	if string(chunks) != "chunks" || string(index) != "index" {
		t.Errorf("unexpected bundle: %q %q", chunks, index)
	}

	text, err := s.Get("d1", domain.ArtifactText)
	if err != nil {
		t.Fatal(err)
	}
	text[0] = 'X'
	again, _ := s.Get("d1", domain.ArtifactText)
	if string(again) != "text" {
		t.Error("Get should return a copy")
	}
}

func TestMemoryStore_Missing(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get("x", domain.ArtifactChunks); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := s.DeleteDoc("x"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := s.Put("x", domain.ArtifactKind("other"), nil); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	doc := domain.Document{ID: "d1"}
	_ = s.PutSource(doc, []byte("raw"), []byte("text"), 0)
	_ = s.PutIndexBundle(doc, []byte("c"), []byte("i"))

	if err := s.DeleteDoc("d1"); err != nil {
		t.Fatal(err)
	}
	chunks, index, _ := s.GetIndexBundle("d1")
	if chunks != nil || index != nil {
		t.Error("bundle survived delete")
	}
	if ok, _ := s.Exists("d1", domain.ArtifactUpload); ok {
		t.Error("upload survived delete")
	}
	if n, _ := s.CountDocs(); n != 0 {
		t.Errorf("expected 0 docs, got %d", n)
	}
}

func TestMemoryStore_ListSorted(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		_ = s.PutDoc(domain.Document{ID: id})
	}
	docs, _ := s.ListDocs()
	if len(docs) != 3 || docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Errorf("unexpected order: %+v", docs)
	}
}

func TestMemoryStore_ConcurrentBundles(t *testing.T) {
	s := NewMemoryStore()
	doc := domain.Document{ID: "d1"}
	if err := s.PutSource(doc, []byte("raw"), []byte("text"), 0); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			v := []byte{byte(i)}
			_ = s.PutIndexBundle(doc, v, v)
		}(i)
		go func() {
			defer wg.Done()
			chunks, index, _ := s.GetIndexBundle("d1")
			if chunks != nil && chunks[0] != index[0] {
				t.Error("reader observed a mismatched bundle")
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStore_PutIndexBundleAfterDelete(t *testing.T) {
	s := NewMemoryStore()
	doc := domain.Document{ID: "d1"}
	_ = s.PutSource(doc, []byte("raw"), []byte("text"), 0)
	_ = s.DeleteDoc("d1")

	if err := s.PutIndexBundle(doc, []byte("c"), []byte("i")); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if docs, _ := s.ListDocs(); len(docs) != 0 {
		t.Errorf("deleted document was recreated: %+v", docs)
	}
}

func TestMemoryStore_PutSourceCapacity(t *testing.T) {
	s := NewMemoryStore()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := s.PutSource(domain.Document{ID: id}, []byte("raw"), []byte("text"), 2)
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrCapacityReached) {
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	if accepted != 2 {
		t.Errorf("expected 2 accepted uploads, got %d", accepted)
	}
	if n, _ := s.CountDocs(); n != 2 {
		t.Errorf("expected 2 docs, got %d", n)
	}
	// Rewriting an existing document is not a new upload.
	docs, _ := s.ListDocs()
	if err := s.PutSource(docs[0], []byte("raw"), []byte("text"), 2); err != nil {
		t.Errorf("rewrite at capacity failed: %v", err)
	}
}
