package answer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three sentences",
			text: "Cats are mammals. Dogs are loyal animals. Birds can fly.",
			want: []string{"Cats are mammals.", "Dogs are loyal animals.", "Birds can fly."},
		},
		{
			name: "mixed punctuation and newlines",
			text: "  Really?\nYes!  It works.",
			want: []string{"Really?", "Yes!", "It works."},
		},
		{
			name: "no break without whitespace",
			text: "Version 1.2 is out.",
			want: []string{"Version 1.2 is out."},
		},
		{
			name: "unicode whitespace",
			text: "Cats are mammals.\u00a0Dogs are loyal.\u2003Birds fly.\u0085Fish swim.",
			want: []string{"Cats are mammals.", "Dogs are loyal.", "Birds fly.", "Fish swim."},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordAnswer_RanksByMatches(t *testing.T) {
	contexts := []string{
		"Shipping is handled by our partner carriers worldwide. The refund window is thirty days from delivery.",
		"Refund policy: customers may return unused items for a full refund. Contact support for anything else.",
	}

	got := KeywordAnswer([]string{"refund", "policy"}, contexts, MaxPoints)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if lines[0] != "• Refund policy: customers may return unused items for a full refund." {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "• The refund window is thirty days from delivery." {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestKeywordAnswer_DeduplicatesAndLimits(t *testing.T) {
	sentence := "The alpha module handles every alpha request."
	var contexts []string
	for i := 0; i < 8; i++ {
		contexts = append(contexts, sentence)
	}
	for i := 0; i < 7; i++ {
		contexts = append(contexts, fmt.Sprintf("Sentence number %d mentions alpha once more.", i))
	}

	got := KeywordAnswer([]string{"alpha"}, contexts, MaxPoints)

	if strings.Count(got, sentence) != 1 {
		t.Errorf("duplicate sentence should appear once: %q", got)
	}
	if n := len(strings.Split(got, "\n")); n > MaxPoints {
		t.Errorf("expected at most %d lines, got %d", MaxPoints, n)
	}
}

func TestKeywordAnswer_ShortSentencesAsLastResort(t *testing.T) {
	contexts := []string{"Cats are mammals. Dogs are loyal animals. Birds can fly."}

	got := KeywordAnswer([]string{"dogs"}, contexts, MaxPoints)

	if got != "• Dogs are loyal animals." {
		t.Errorf("unexpected answer: %q", got)
	}
}

func TestKeywordAnswer_NoMatch(t *testing.T) {
	contexts := []string{"This sentence is long enough to be considered."}

	if got := KeywordAnswer([]string{"zebra"}, contexts, MaxPoints); got != NoAnswerMessage {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := KeywordAnswer([]string{"zebra"}, nil, MaxPoints); got != NoAnswerMessage {
		t.Errorf("expected fallback for empty contexts, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	contexts := []string{
		"Introduction to the Handbook\nshort\nThis handbook explains company policy.",
		"introduction   to the handbook\n" + strings.Repeat("x", 121) + "\nBenefits and leave",
	}

	got := Summarize(contexts, MaxPoints)

	want := "• Introduction to the Handbook\n• This handbook explains company policy.\n• Benefits and leave"
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestSummarize_OnlyFirstEightContexts(t *testing.T) {
	var contexts []string
	for i := 0; i < 8; i++ {
		contexts = append(contexts, "tiny")
	}
	contexts = append(contexts, "This line is in the ninth context.")

	if got := Summarize(contexts, MaxPoints); got != NoSummaryMessage {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestSynthesizer_EmptyContexts(t *testing.T) {
	s := NewSynthesizer(ModeAuto)

	if got := s.Answer("Give me a summary", nil); got != NoSummaryMessage {
		t.Errorf("summary fallback expected, got %q", got)
	}
	if got := s.Answer("What is the refund policy?", []string{}); got != NoAnswerMessage {
		t.Errorf("keyword fallback expected, got %q", got)
	}
}

func TestSynthesizer_EndToEndSentence(t *testing.T) {
	s := NewSynthesizer(ModeAuto)

	got := s.Answer("What are dogs?", []string{"Cats are mammals. Dogs are loyal animals. Birds can fly."})

	if !strings.Contains(got, "Dogs are loyal animals.") {
		t.Errorf("expected answer to contain the dogs sentence, got %q", got)
	}
}
