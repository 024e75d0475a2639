package index

import (
	"sort"
	"strings"
)

// institutionTerms holds the keys of institutionKeywords, longest first, so
// "institute of technology" is tried before "institute".
var institutionTerms = func() []string {
	terms := make([]string, 0, len(institutionKeywords))
	for k := range institutionKeywords {
		terms = append(terms, k)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}()

// Institution picks the comma-separated segment of an affiliation fragment
// that best names an institution. Each segment scores the highest priority
// of the keywords it contains; the first segment with the best score wins.
// It returns "" when no segment contains a keyword.
func Institution(fragment string) string {
	best, bestScore := "", 0
	for _, seg := range strings.Split(fragment, ",") {
		seg = strings.TrimSpace(strings.Trim(strings.TrimSpace(seg), "."))
		if seg == "" {
			continue
		}
		if s := institutionScore(strings.ToLower(seg)); s > bestScore {
			best, bestScore = seg, s
		}
	}
	return best
}

func institutionScore(seg string) int {
	score := 0
	for _, term := range institutionTerms {
		if p := institutionKeywords[term]; p > score && strings.Contains(seg, term) {
			score = p
		}
	}
	return score
}
