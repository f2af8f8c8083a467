package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"docqa/internal/domain"
)

// AnswerCache is an LRU cache of answers with a TTL. Entries are scoped to a
// document and dropped when that document is rebuilt or deleted.
type AnswerCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	docGen  map[string]uint64
	now     func() time.Time
}

type cacheEntry struct {
	docID     string
	answer    domain.Answer
	timestamp time.Time
	gen       uint64
}

func NewAnswerCache(maxSize int, ttl time.Duration) *AnswerCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		docGen:  make(map[string]uint64),
		now:     time.Now,
	}
}

func cacheKey(docID, question string, topK int) string {
	h := sha256.New()
	h.Write([]byte(docID))
	h.Write([]byte{0})
	h.Write([]byte(question))
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(topK))
	h.Write(k[:])
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func (c *AnswerCache) Get(docID, question string, topK int) (domain.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(docID, question, topK)
	entry, exists := c.entries[key]
	if !exists {
		return domain.Answer{}, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl || entry.gen != c.docGen[docID] {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return domain.Answer{}, false
	}

	c.moveToEnd(key)
	return cloneAnswer(entry.answer), true
}

// Generation returns the invalidation counter of docID. Pass it to Put so
// that answers computed across an invalidation are not stored.
func (c *AnswerCache) Generation(docID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docGen[docID]
}

func (c *AnswerCache) Put(docID, question string, topK int, gen uint64, answer domain.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.docGen[docID] {
		return
	}

	key := cacheKey(docID, question, topK)
	entry := &cacheEntry{
		docID:     docID,
		answer:    cloneAnswer(answer),
		timestamp: c.now(),
		gen:       gen,
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

// Invalidate drops every cached answer for docID and bumps its generation.
func (c *AnswerCache) Invalidate(docID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docGen[docID]++
	kept := c.order[:0]
	for _, key := range c.order {
		if c.entries[key].docID == docID {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

func (c *AnswerCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *AnswerCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *AnswerCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *AnswerCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func cloneAnswer(a domain.Answer) domain.Answer {
	a.Sources = append([]domain.Source(nil), a.Sources...)
	return a
}
