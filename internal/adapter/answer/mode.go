package answer

import (
	"fmt"
	"strings"
)

// Mode selects how an answer is assembled.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeSummary Mode = "summary"
	ModeKeyword Mode = "keyword"
)

// ParseMode validates a mode name. An empty name means ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeSummary:
		return ModeSummary, nil
	case ModeKeyword:
		return ModeKeyword, nil
	default:
		return "", fmt.Errorf("unknown answer mode: %s", name)
	}
}

var summaryTriggers = []string{
	"what is this document about",
	"what does this document cover",
	"what covers",
	"summary",
	"overview",
	"document about",
	"summarize",
	"give summary",
	"tell me about this document",
}

// IsSummaryQuestion reports whether the question asks for an overview of the
// whole document.
func IsSummaryQuestion(question string) bool {
	q := strings.TrimSpace(strings.ToLower(question))
	for _, trigger := range summaryTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// ModeSelector resolves the mode used for a question.
type ModeSelector struct {
	forced Mode
}

func NewModeSelector(mode Mode) ModeSelector {
	return ModeSelector{forced: mode}
}

func (s ModeSelector) Select(question string) Mode {
	if s.forced == ModeSummary || s.forced == ModeKeyword {
		return s.forced
	}
	if IsSummaryQuestion(question) {
		return ModeSummary
	}
	return ModeKeyword
}
