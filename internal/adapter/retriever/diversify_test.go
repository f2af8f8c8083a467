package retriever

import (
	"testing"
)

func TestKeywordDiversifier_PrefersKeywordMatches(t *testing.T) {
	d := NewKeywordDiversifier()
	contexts := []string{
		"Shipping takes five days.",
		"Refunds are processed by the billing team.",
		"The refund policy allows returns within 30 days.",
	}

	got := d.Diversify("What is the refund policy?", contexts, 2)

	want := []string{contexts[2], contexts[1]}
	if len(got) != len(want) {
		t.Fatalf("expected %d contexts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("context %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKeywordDiversifier_ZeroScoresKeepOrder(t *testing.T) {
	d := NewKeywordDiversifier()
	contexts := []string{"first passage", "second passage", "FIRST   passage", "third passage"}

	got := d.Diversify("unrelated question xyz", contexts, 3)

	want := []string{"first passage", "second passage", "third passage"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("context %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKeywordDiversifier_Empty(t *testing.T) {
	d := NewKeywordDiversifier()
	if got := d.Diversify("anything", nil, 3); len(got) != 0 {
		t.Errorf("expected no contexts, got %v", got)
	}
}

func TestPassthroughDiversifier(t *testing.T) {
	got := PassthroughDiversifier{}.Diversify("q", []string{"a b", "A  B", "c"}, 5)
	if len(got) != 2 || got[0] != "a b" || got[1] != "c" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestNewDiversifier(t *testing.T) {
	for _, name := range []string{"", "keyword", "none", "mmr"} {
		if _, err := NewDiversifier(name, 0.7, 0.9); err != nil {
			t.Errorf("NewDiversifier(%q): %v", name, err)
		}
	}
	if _, err := NewDiversifier("bogus", 0.7, 0.9); err == nil {
		t.Error("expected error for unknown diversifier")
	}
}
