package retriever

import (
	"docqa/internal/adapter/analyzer"
)

// MMRDiversifier implements Maximal Marginal Relevance over contexts.
// Relevance is the normalized keyword match count; similarity is the Jaccard
// overlap of content tokens.
type MMRDiversifier struct {
	lambda       float64
	dedupJaccard float64
	tokenizer    *analyzer.Tokenizer
}

// NewMMRDiversifier creates a new MMR diversifier.
func NewMMRDiversifier(lambda, dedupJaccard float64) *MMRDiversifier {
	if lambda < 0 || lambda > 1 {
		lambda = 0.7
	}
	if dedupJaccard <= 0 {
		dedupJaccard = 0.9
	}
	return &MMRDiversifier{
		lambda:       lambda,
		dedupJaccard: dedupJaccard,
		tokenizer:    analyzer.NewTokenizer(),
	}
}

type mmrCandidate struct {
	text   string
	tokens []string
	score  float64
}

// Diversify applies MMR to choose up to k contexts.
// MMR(c) = λ * relevance(c) - (1-λ) * max_similarity(c, selected)
func (r *MMRDiversifier) Diversify(question string, contexts []string, k int) []string {
	unique := firstUnique(contexts, len(contexts))
	if len(unique) == 0 || k <= 0 {
		return []string{}
	}
	if k > len(unique) {
		k = len(unique)
	}

	keywords := r.tokenizer.Keywords(question)

	remaining := make([]mmrCandidate, len(unique))
	maxScore := 0.0
	for i, text := range unique {
		score := float64(analyzer.CountMatches(text, keywords))
		if score > maxScore {
			maxScore = score
		}
		remaining[i] = mmrCandidate{text: text, tokens: r.tokenizer.Tokenize(text), score: score}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	selected := make([]mmrCandidate, 0, k)

	for len(selected) < k && len(remaining) > 0 {
		bestIdx := -1
		bestMMR := -1e9

		for i, candidate := range remaining {
			relevance := candidate.score / maxScore

			maxSim := 0.0
			for _, sel := range selected {
				sim := jaccardSimilarity(candidate.tokens, sel.tokens)
				if sim > maxSim {
					maxSim = sim
				}
			}

			// Near-duplicates of an already selected context are skipped.
			if maxSim > r.dedupJaccard {
				continue
			}

			mmr := r.lambda*relevance - (1-r.lambda)*maxSim
			if mmr > bestMMR {
				bestMMR = mmr
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			break
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	out := make([]string, len(selected))
	for i, c := range selected {
		out[i] = c.text
	}
	return out
}

// jaccardSimilarity computes the Jaccard similarity between two token sets.
func jaccardSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, exists := setB[t]; exists {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}
