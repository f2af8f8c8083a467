package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizer_Tokenize_StopwordRemoval(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("What is the refund policy?")
	expected := []string{"refund", "policy"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_ShortWordRemoval(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("go to an ox pen")
	for _, token := range tokens {
		if len(token) <= 2 {
			t.Errorf("short word should be removed: %s", token)
		}
	}
	if len(tokens) != 1 || tokens[0] != "pen" {
		t.Errorf("expected [pen], got %v", tokens)
	}
}

func TestTokenizer_Keywords(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		question string
		expected []string
	}{
		{"What are dogs?", []string{"dogs"}},
		{"Refund policy, refund window", []string{"refund", "policy", "window"}},
		{"What is this?", []string{"what", "is", "this"}},
		{"API v2: rate-limits", []string{"api", "rate", "limits"}},
		{"", []string{}},
		{"123 456", []string{}},
	}

	for _, tt := range tests {
		got := tok.Keywords(tt.question)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Keywords(%q) = %v, want %v", tt.question, got, tt.expected)
		}
	}
}

func TestCountMatches(t *testing.T) {
	keywords := []string{"refund", "policy", "days"}

	if n := CountMatches("Our REFUND Policy lasts 30 days.", keywords); n != 3 {
		t.Errorf("expected 3 matches, got %d", n)
	}
	if n := CountMatches("Shipping is free.", keywords); n != 0 {
		t.Errorf("expected 0 matches, got %d", n)
	}
	if n := CountMatches("anything", nil); n != 0 {
		t.Errorf("expected 0 matches for no keywords, got %d", n)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 2},
		{"hello-world", 2},
		{"CamelCase", 1},
		{"123numbers456", 1},
		{"café au lait", 3},
	}

	for _, tt := range tests {
		words := splitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("splitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}
