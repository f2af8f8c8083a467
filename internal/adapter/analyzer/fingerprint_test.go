package analyzer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello world"},
		{"  Hello \t\n  World  ", "hello world"},
		{"", ""},
		{"   ", ""},
		{"A\r\nB", "a b"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFingerprint_CaseAndSpacingInsensitive(t *testing.T) {
	a := Fingerprint("Dogs are  loyal animals.")
	b := Fingerprint("  dogs ARE loyal\nanimals.")
	if a != b {
		t.Errorf("expected equal fingerprints, got %s and %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
	if a == Fingerprint("Cats are mammals.") {
		t.Error("different texts should not share a fingerprint")
	}
}

func TestSeen_Add(t *testing.T) {
	seen := Seen{}
	if !seen.Add("First line") {
		t.Error("expected first add to report new")
	}
	if seen.Add("first   LINE") {
		t.Error("expected normalized duplicate to be rejected")
	}
	if !seen.Add("Second line") {
		t.Error("expected distinct text to report new")
	}
}
