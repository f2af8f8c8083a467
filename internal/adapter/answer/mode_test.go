package answer

import "testing"

func TestIsSummaryQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"Can you give a summary of this document?", true},
		{"What is this document about?", true},
		{"  GIVE ME AN OVERVIEW  ", true},
		{"Please summarize.", true},
		{"Tell me about this document", true},
		{"What is the refund policy?", false},
		{"How do I reset my password?", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := IsSummaryQuestion(tt.question); got != tt.want {
				t.Errorf("IsSummaryQuestion(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestModeSelector(t *testing.T) {
	tests := []struct {
		name     string
		forced   Mode
		question string
		want     Mode
	}{
		{"auto summary", ModeAuto, "Can you give a summary of this document?", ModeSummary},
		{"auto keyword", ModeAuto, "What is the refund policy?", ModeKeyword},
		{"forced summary", ModeSummary, "What is the refund policy?", ModeSummary},
		{"forced keyword", ModeKeyword, "Give me an overview", ModeKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewModeSelector(tt.forced).Select(tt.question); got != tt.want {
				t.Errorf("Select(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeAuto {
		t.Errorf("ParseMode(\"\") = %s, %v", m, err)
	}
	if m, err := ParseMode("keyword"); err != nil || m != ModeKeyword {
		t.Errorf("ParseMode(keyword) = %s, %v", m, err)
	}
	if _, err := ParseMode("generative"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
