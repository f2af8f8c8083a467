package retriever

import (
	"fmt"
	"sort"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/port"
)

// NewDiversifier returns the diversification strategy with the given name.
func NewDiversifier(name string, mmrLambda, mmrDedupJaccard float64) (port.Diversifier, error) {
	switch name {
	case "", "keyword":
		return NewKeywordDiversifier(), nil
	case "none":
		return PassthroughDiversifier{}, nil
	case "mmr":
		return NewMMRDiversifier(mmrLambda, mmrDedupJaccard), nil
	default:
		return nil, fmt.Errorf("unknown diversifier: %s", name)
	}
}

// KeywordDiversifier prefers contexts that contain more question keywords.
type KeywordDiversifier struct {
	tokenizer *analyzer.Tokenizer
}

func NewKeywordDiversifier() *KeywordDiversifier {
	return &KeywordDiversifier{tokenizer: analyzer.NewTokenizer()}
}

// Diversify ranks contexts by the number of distinct keywords they contain.
// Ties keep retrieval order. If nothing is selected the first k unique
// contexts are returned.
func (d *KeywordDiversifier) Diversify(question string, contexts []string, k int) []string {
	keywords := d.tokenizer.Keywords(question)

	type ranked struct {
		score int
		text  string
	}
	items := make([]ranked, len(contexts))
	for i, text := range contexts {
		items[i] = ranked{score: analyzer.CountMatches(text, keywords), text: text}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	out := make([]string, 0, k)
	seen := make(analyzer.Seen)
	for _, item := range items {
		if len(out) >= k {
			break
		}
		if seen.Add(item.text) {
			out = append(out, item.text)
		}
	}

	if len(out) == 0 {
		return firstUnique(contexts, k)
	}
	return out
}

// PassthroughDiversifier keeps retrieval order.
type PassthroughDiversifier struct{}

func (PassthroughDiversifier) Diversify(_ string, contexts []string, k int) []string {
	return firstUnique(contexts, k)
}

func firstUnique(contexts []string, k int) []string {
	out := make([]string, 0, k)
	seen := make(analyzer.Seen)
	for _, text := range contexts {
		if len(out) >= k {
			break
		}
		if seen.Add(text) {
			out = append(out, text)
		}
	}
	return out
}
