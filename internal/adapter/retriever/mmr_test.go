package retriever

import (
	"testing"
)

var mmrContexts = []string{
	"Authentication login user password handling.",
	"Authentication login user session handling.",
	"Database query connection pooling.",
}

func TestMMRDiversifier_PrefersDiverseContexts(t *testing.T) {
	d := NewMMRDiversifier(0.3, 0.9)

	results := d.Diversify("How does authentication login work for a user?", mmrContexts, 2)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0] != mmrContexts[0] {
		t.Errorf("expected most relevant context first, got %q", results[0])
	}
	if results[1] != mmrContexts[2] {
		t.Errorf("expected MMR to prefer the diverse context, got %q", results[1])
	}
}

func TestMMRDiversifier_RelevanceDominatesWithHighLambda(t *testing.T) {
	d := NewMMRDiversifier(0.7, 0.9)

	results := d.Diversify("How does authentication login work for a user?", mmrContexts, 2)

	if len(results) != 2 || results[1] != mmrContexts[1] {
		t.Errorf("expected the second relevant context, got %v", results)
	}
}

func TestMMRDiversifier_Deduplication(t *testing.T) {
	d := NewMMRDiversifier(0.5, 0.9)

	results := d.Diversify("login", []string{"Login user auth.", "Auth user login!"}, 2)

	if len(results) != 1 {
		t.Errorf("expected 1 result after dedup, got %d", len(results))
	}
}

func TestMMRDiversifier_Empty(t *testing.T) {
	d := NewMMRDiversifier(0.7, 0.9)

	if results := d.Diversify("q", nil, 10); len(results) != 0 {
		t.Errorf("expected empty result, got %v", results)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{
			name:     "identical",
			a:        []string{"a", "b", "c"},
			b:        []string{"a", "b", "c"},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			a:        []string{"a", "b", "c"},
			b:        []string{"d", "e", "f"},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			a:        []string{"a", "b"},
			b:        []string{"b", "c"},
			expected: 1.0 / 3.0,
		},
		{
			name:     "empty a",
			a:        []string{},
			b:        []string{"a", "b"},
			expected: 0.0,
		},
		{
			name:     "both empty",
			a:        []string{},
			b:        []string{},
			expected: 1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := jaccardSimilarity(tc.a, tc.b)
			if !floatEquals(result, tc.expected, 0.001) {
				t.Errorf("jaccardSimilarity(%v, %v) = %f, expected %f", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func floatEquals(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < tolerance
}
