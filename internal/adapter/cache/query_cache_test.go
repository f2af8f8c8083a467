package cache

import (
	"testing"
	"time"

	"docqa/internal/domain"
)

func answer(text string) domain.Answer {
	return domain.Answer{Answer: text, Sources: []domain.Source{{Rank: 1, Text: text}}}
}

func TestAnswerCache_HitAndMiss(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)

	if _, ok := c.Get("d1", "q", 6); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put("d1", "q", 6, 0, answer("a"))

	got, ok := c.Get("d1", "q", 6)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Answer != "a" {
		t.Errorf("expected 'a', got %q", got.Answer)
	}

	if _, ok := c.Get("d1", "q", 5); ok {
		t.Error("different top_k should miss")
	}
	if _, ok := c.Get("d2", "q", 6); ok {
		t.Error("different doc should miss")
	}
}

func TestAnswerCache_InvalidateIsPerDocument(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)
	c.Put("d1", "q", 6, 0, answer("a"))
	c.Put("d2", "q", 6, 0, answer("b"))

	c.Invalidate("d1")

	if _, ok := c.Get("d1", "q", 6); ok {
		t.Error("d1 should be invalidated")
	}
	if _, ok := c.Get("d2", "q", 6); !ok {
		t.Error("d2 should survive d1 invalidation")
	}
	if c.Size() != 1 {
		t.Errorf("expected size 1, got %d", c.Size())
	}
}

func TestAnswerCache_StalePutIgnored(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)

	gen := c.Generation("d1")
	c.Invalidate("d1")
	c.Put("d1", "q", 6, gen, answer("stale"))

	if _, ok := c.Get("d1", "q", 6); ok {
		t.Error("answer computed before invalidation should not be cached")
	}

	c.Put("d1", "q", 6, c.Generation("d1"), answer("fresh"))
	if got, ok := c.Get("d1", "q", 6); !ok || got.Answer != "fresh" {
		t.Error("answer with current generation should be cached")
	}
}

func TestAnswerCache_TTL(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("d1", "q", 6, 0, answer("a"))
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("d1", "q", 6); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry should be removed, size %d", c.Size())
	}
}

func TestAnswerCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewAnswerCache(2, time.Minute)
	c.Put("d1", "q1", 6, 0, answer("1"))
	c.Put("d1", "q2", 6, 0, answer("2"))

	// touch q1 so q2 becomes the eviction candidate
	c.Get("d1", "q1", 6)
	c.Put("d1", "q3", 6, 0, answer("3"))

	if _, ok := c.Get("d1", "q2", 6); ok {
		t.Error("q2 should have been evicted")
	}
	if _, ok := c.Get("d1", "q1", 6); !ok {
		t.Error("q1 should still be cached")
	}
}

func TestAnswerCache_ReturnsCopies(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)
	c.Put("d1", "q", 6, 0, answer("a"))

	got, _ := c.Get("d1", "q", 6)
	got.Sources[0].Text = "mutated"

	again, _ := c.Get("d1", "q", 6)
	if again.Sources[0].Text != "a" {
		t.Error("cached sources were mutated through a returned value")
	}
}
