package rules

// levenshteinDistance calculates the minimum number of single-character
// edits (insertions, deletions, or substitutions) required to change one
// string into another.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// two rows are enough
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// similarity normalizes the edit distance into a score between 0.0
// (completely different) and 1.0 (identical).
func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// findBestMatch returns the candidate most similar to target, its score,
// and whether the score clears the threshold.
func findBestMatch(target string, candidates []string, threshold float64) (string, float64, bool) {
	var bestMatch string
	var bestSimilarity float64

	for _, candidate := range candidates {
		if sim := similarity(target, candidate); sim > bestSimilarity {
			bestSimilarity = sim
			bestMatch = candidate
		}
	}

	if bestSimilarity >= threshold {
		return bestMatch, bestSimilarity, true
	}
	return "", 0, false
}
