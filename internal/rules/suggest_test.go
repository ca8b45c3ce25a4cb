package rules

import (
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "identical strings",
			a:        "CY001",
			b:        "CY001",
			expected: 0,
		},
		{
			name:     "empty strings",
			a:        "",
			b:        "",
			expected: 0,
		},
		{
			name:     "first empty",
			a:        "",
			b:        "cycle",
			expected: 5,
		},
		{
			name:     "one character difference",
			a:        "CY001",
			b:        "CY002",
			expected: 1,
		},
		{
			name:     "one deletion",
			a:        "cycle",
			b:        "cycl",
			expected: 1,
		},
		{
			name:     "kitten to sitting",
			a:        "kitten",
			b:        "sitting",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := levenshteinDistance(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
			// distance is symmetric
			reverse := levenshteinDistance(tt.b, tt.a)
			if reverse != tt.expected {
				t.Errorf("levenshteinDistance(%q, %q) = %d, want %d (symmetry check)", tt.b, tt.a, reverse, tt.expected)
			}
		})
	}
}

func TestSimilarityBoundaryValues(t *testing.T) {
	testCases := []struct {
		a string
		b string
	}{
		{"", ""},
		{"a", ""},
		{"reference-cycle", "reference-cycle"},
		{"CY001", "unused-whitelist-entry"},
	}

	for _, tc := range testCases {
		sim := similarity(tc.a, tc.b)
		if sim < 0.0 || sim > 1.0 {
			t.Errorf("similarity(%q, %q) = %f, want value between 0.0 and 1.0", tc.a, tc.b, sim)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		candidates    []string
		threshold     float64
		expectedMatch string
		expectedFound bool
	}{
		{
			name:          "exact match in candidates",
			target:        "CY001",
			candidates:    []string{"CY001", "CY002", "CY100"},
			threshold:     0.85,
			expectedMatch: "CY001",
			expectedFound: true,
		},
		{
			name:          "close match above threshold",
			target:        "reference-cycles",
			candidates:    []string{"reference-cycle", "outer-reference-cycle"},
			threshold:     0.70,
			expectedMatch: "reference-cycle",
			expectedFound: true,
		},
		{
			name:          "no match above threshold",
			target:        "foo",
			candidates:    []string{"completely", "different", "names"},
			threshold:     0.85,
			expectedMatch: "",
			expectedFound: false,
		},
		{
			name:          "empty candidates",
			target:        "CY001",
			candidates:    []string{},
			threshold:     0.85,
			expectedMatch: "",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, _, found := findBestMatch(tt.target, tt.candidates, tt.threshold)
			if found != tt.expectedFound {
				t.Errorf("findBestMatch found = %v, want %v", found, tt.expectedFound)
			}
			if match != tt.expectedMatch {
				t.Errorf("findBestMatch match = %q, want %q", match, tt.expectedMatch)
			}
		})
	}
}

func TestRegistrySuggest(t *testing.T) {
	tests := []struct {
		input string
		want  string
		found bool
	}{
		{input: "CY01", want: "CY001", found: true},
		{input: "cy002", want: "CY002", found: true},
		{input: "reference-cycl", want: "reference-cycle", found: true},
		{input: "unused-whitelist", want: "unused-whitelist-entry", found: true},
		{input: "zzzzzz", want: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, found := DefaultRegistry.Suggest(tt.input)
			if found != tt.found {
				t.Fatalf("Suggest(%q) found = %v, want %v", tt.input, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
