package answer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/port"
)

const (
	Bullet    = "• "
	MaxPoints = 5

	NoSummaryMessage = "This document has multiple sections. Ask a specific topic/heading for a precise answer."
	NoAnswerMessage  = "I couldn’t find a direct answer for this question in the document.\n" +
		"Try asking with more specific keywords (topic/heading/term)."

	summaryContexts  = 8
	minSummaryLine   = 10
	maxSummaryLine   = 120
	minSentenceLen   = 25
	definitionWindow = 50
	definitionBonus  = 1
)

var sentenceBreak = regexp.MustCompile(`[.!?][\s\v\p{Z}\x{85}]+`)

// Synthesizer builds extractive answers. Every line of an answer is copied
// verbatim from a context.
type Synthesizer struct {
	selector  ModeSelector
	tokenizer *analyzer.Tokenizer
}

var _ port.Synthesizer = (*Synthesizer)(nil)

func NewSynthesizer(mode Mode) *Synthesizer {
	return &Synthesizer{
		selector:  NewModeSelector(mode),
		tokenizer: analyzer.NewTokenizer(),
	}
}

// Answer never returns an empty string.
func (s *Synthesizer) Answer(question string, contexts []string) string {
	if s.selector.Select(question) == ModeSummary {
		return Summarize(contexts, MaxPoints)
	}
	return KeywordAnswer(s.tokenizer.Keywords(question), contexts, MaxPoints)
}

// Summarize returns up to maxPoints distinct lines of 10 to 120 characters
// from the first eight contexts.
func Summarize(contexts []string, maxPoints int) string {
	if len(contexts) > summaryContexts {
		contexts = contexts[:summaryContexts]
	}

	var picked []string
	seen := make(analyzer.Seen)
	for _, ctx := range contexts {
		for _, line := range strings.Split(ctx, "\n") {
			line = strings.TrimSpace(line)
			n := utf8.RuneCountInString(line)
			if n < minSummaryLine || n > maxSummaryLine {
				continue
			}
			if !seen.Add(line) {
				continue
			}
			picked = append(picked, line)
			if len(picked) >= maxPoints {
				return bulleted(picked)
			}
		}
	}

	if len(picked) == 0 {
		return NoSummaryMessage
	}
	return bulleted(picked)
}

type scoredSentence struct {
	score int
	text  string
}

// KeywordAnswer returns up to maxPoints sentences ranked by keyword matches.
// Sentences shorter than 25 characters are only considered when no longer
// sentence matches.
func KeywordAnswer(keywords, contexts []string, maxPoints int) string {
	picked := pickSentences(keywords, contexts, minSentenceLen, maxPoints)
	if len(picked) == 0 {
		picked = pickSentences(keywords, contexts, 1, maxPoints)
	}
	if len(picked) == 0 {
		return NoAnswerMessage
	}
	return bulleted(picked)
}

func pickSentences(keywords, contexts []string, minLen, maxPoints int) []string {
	var scored []scoredSentence
	for _, ctx := range contexts {
		for _, sentence := range SplitSentences(ctx) {
			if utf8.RuneCountInString(sentence) < minLen {
				continue
			}
			score := analyzer.CountMatches(sentence, keywords)
			if strings.Contains(prefix(sentence, definitionWindow), ":") {
				score += definitionBonus
			}
			if score > 0 {
				scored = append(scored, scoredSentence{score: score, text: sentence})
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	var picked []string
	seen := make(analyzer.Seen)
	for _, s := range scored {
		if !seen.Add(s.text) {
			continue
		}
		picked = append(picked, s.text)
		if len(picked) >= maxPoints {
			break
		}
	}
	return picked
}

// SplitSentences splits text after '.', '!' or '?' followed by whitespace.
// Sentences are trimmed and empty ones dropped.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func bulleted(lines []string) string {
	return Bullet + strings.Join(lines, "\n"+Bullet)
}
