package analyzer

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// Tokenizer extracts scoring keywords from questions and passages.
type Tokenizer struct {
	stopwords map[string]struct{}
	minLen    int
}

// NewTokenizer creates a Tokenizer with the default question stop words.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		stopwords: defaultStopwords(),
		minLen:    3,
	}
}

// Tokenize returns the lowercase alphabetic words of text that are longer
// than two letters and not stop words. Order and duplicates are kept.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < t.minLen {
			continue
		}
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// Keywords returns the distinct scoring keywords of a question. When every
// word is filtered out, the unfiltered words are used instead so that any
// question containing a word yields at least one keyword.
func (t *Tokenizer) Keywords(question string) []string {
	tokens := t.Tokenize(question)
	if len(tokens) == 0 {
		tokens = splitWords(question)
	}
	return dedupe(tokens)
}

// CountMatches returns how many keywords occur in text as case-insensitive
// substrings.
func CountMatches(text string, keywords []string) int {
	low := strings.ToLower(text)
	n := 0
	for _, k := range keywords {
		if strings.Contains(low, k) {
			n++
		}
	}
	return n
}

// splitWords lowercases text and returns its ASCII letter runs.
func splitWords(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// defaultStopwords returns articles, WH-words and common question verbs.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"what", "is", "are", "the", "a", "an", "of", "to", "in", "and",
		"or", "for", "with", "on", "about", "this", "that", "these",
		"those", "please", "tell", "me", "explain", "give", "define",
		"discuss", "compare", "why", "how", "when", "where", "which",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
