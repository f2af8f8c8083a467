package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var (
	bucketDocs    = []byte("docs")
	bucketUploads = []byte(domain.ArtifactUpload)
	bucketTexts   = []byte(domain.ArtifactText)
	bucketChunks  = []byte(domain.ArtifactChunks)
	bucketIndexes = []byte(domain.ArtifactIndex)
	bucketMeta    = []byte("meta")

	artifactBuckets = [][]byte{bucketUploads, bucketTexts, bucketChunks, bucketIndexes}
)

// openTimeout bounds the wait for the file lock held by another process.
var openTimeout = time.Second

// BoltStore keeps document metadata and artifacts in a single bbolt file,
// one bucket per artifact kind, keyed by doc_id.
type BoltStore struct {
	db *bbolt.DB
}

var _ port.ArtifactStore = (*BoltStore)(nil)

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if errors.Is(err, bbolt.ErrTimeout) {
		return nil, fmt.Errorf("failed to open bolt db %s: locked by another process (is `docqa serve` running?): %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketUploads, bucketTexts, bucketChunks, bucketIndexes, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func artifactBucket(tx *bbolt.Tx, kind domain.ArtifactKind) (*bbolt.Bucket, error) {
	b := tx.Bucket([]byte(kind))
	if b == nil {
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}
	return b, nil
}

// Get returns a copy of the artifact, or domain.ErrDocumentNotFound.
func (s *BoltStore) Get(docID string, kind domain.ArtifactKind) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := artifactBucket(tx, kind)
		if err != nil {
			return err
		}
		data := b.Get([]byte(docID))
		if data == nil {
			return fmt.Errorf("%s for %s: %w", kind, docID, domain.ErrDocumentNotFound)
		}
		out = append([]byte(nil), data...)
		return nil
	})
	return out, err
}

func (s *BoltStore) Put(docID string, kind domain.ArtifactKind, data []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := artifactBucket(tx, kind)
		if err != nil {
			return err
		}
		return b.Put([]byte(docID), data)
	})
}

func (s *BoltStore) Exists(docID string, kind domain.ArtifactKind) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := artifactBucket(tx, kind)
		if err != nil {
			return err
		}
		ok = b.Get([]byte(docID)) != nil
		return nil
	})
	return ok, err
}

func (s *BoltStore) PutSource(doc domain.Document, upload, text []byte, maxDocuments int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(doc.ID)
		docs := tx.Bucket(bucketDocs)
		if maxDocuments > 0 && docs.Get(key) == nil && countKeys(docs) >= maxDocuments {
			return domain.ErrCapacityReached
		}
		if err := tx.Bucket(bucketUploads).Put(key, upload); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTexts).Put(key, text); err != nil {
			return err
		}
		return putDoc(tx, doc)
	})
}

func (s *BoltStore) PutIndexBundle(doc domain.Document, chunks, index []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(doc.ID)
		if tx.Bucket(bucketDocs).Get(key) == nil || tx.Bucket(bucketTexts).Get(key) == nil {
			return fmt.Errorf("%s: %w", doc.ID, domain.ErrDocumentNotFound)
		}
		if err := tx.Bucket(bucketChunks).Put(key, chunks); err != nil {
			return err
		}
		if err := tx.Bucket(bucketIndexes).Put(key, index); err != nil {
			return err
		}
		return putDoc(tx, doc)
	})
}

func (s *BoltStore) GetIndexBundle(docID string) ([]byte, []byte, error) {
	var chunks, index []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := []byte(docID)
		if data := tx.Bucket(bucketChunks).Get(key); data != nil {
			chunks = append([]byte(nil), data...)
		}
		if data := tx.Bucket(bucketIndexes).Get(key); data != nil {
			index = append([]byte(nil), data...)
		}
		return nil
	})
	return chunks, index, err
}

func countKeys(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

func putDoc(tx *bbolt.Tx, doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketDocs).Put([]byte(doc.ID), data)
}

func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putDoc(tx, doc)
	})
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, domain.ErrDocumentNotFound)
		}
		return json.Unmarshal(data, &doc)
	})
	return doc, err
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("corrupt metadata for %s: %w", k, err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) CountDocs() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketDocs).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) DeleteDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(id)
		docs := tx.Bucket(bucketDocs)
		if docs.Get(key) == nil {
			return fmt.Errorf("%s: %w", id, domain.ErrDocumentNotFound)
		}
		if err := docs.Delete(key); err != nil {
			return err
		}
		for _, name := range artifactBuckets {
			if err := tx.Bucket(name).Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
