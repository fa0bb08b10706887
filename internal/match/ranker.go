// Package match ranks candidate fund names by textual similarity to a query.
package match

import "sort"

// Ratio returns a normalized similarity in [0, 1] derived from Levenshtein
// edit distance: 1.0 for identical strings, 0.0 for completely dissimilar.
// It is symmetric and deterministic for equal inputs.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// Rank orders candidate names by similarity to query, best first. Results
// below minSimilarity are excluded; at most maxResults are returned. Ties
// keep first-occurrence order from names, so re-running on the same list
// yields the same ranking.
func Rank(query string, names []string, maxResults int, minSimilarity float64) []string {
	type scored struct {
		name  string
		score float64
	}

	qualified := make([]scored, 0, len(names))
	for _, name := range names {
		score := Ratio(query, name)
		if score < minSimilarity {
			continue
		}
		qualified = append(qualified, scored{name: name, score: score})
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].score > qualified[j].score
	})

	if maxResults > 0 && len(qualified) > maxResults {
		qualified = qualified[:maxResults]
	}

	ranked := make([]string, len(qualified))
	for i, q := range qualified {
		ranked[i] = q.name
	}
	return ranked
}

// levenshtein computes edit distance with the two-row rolling table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
