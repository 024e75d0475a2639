package index

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutRatio is the similarity at which two names are reported as
// probable variants of each other.
const DefaultCutRatio = 0.80

// Similarity is the Ratcliff/Obershelp ratio of a and b compared rune by
// rune: twice the number of matched runes over the total number of runes.
// Long inputs get the automatic junk heuristic of a difflib sequence
// matcher.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FuzzyMatches groups names that look like variants of each other: every
// pair with cut ≤ ratio < 1 is reported in both directions. When targets is
// non-empty only pairs involving a target are considered. Names without a
// match are omitted.
func FuzzyMatches(names, targets []string, cut float64) map[string][]string {
	matches := make(map[string][]string)
	add := func(a, b string) {
		if r := Similarity(a, b); r >= cut && r < 1 {
			matches[a] = append(matches[a], b)
			matches[b] = append(matches[b], a)
		}
	}

	if len(targets) > 0 {
		present := make(map[string]bool, len(names))
		for _, n := range names {
			present[n] = true
		}
		for _, t := range targets {
			if !present[t] {
				continue
			}
			for _, n := range names {
				if n != t {
					add(t, n)
				}
			}
		}
	} else {
		for i := range names {
			for j := i + 1; j < len(names); j++ {
				add(names[i], names[j])
			}
		}
	}

	for k, v := range matches {
		sort.Strings(v)
		matches[k] = dedupeSorted(v)
	}
	return matches
}

func dedupeSorted(vs []string) []string {
	out := vs[:0]
	for i, v := range vs {
		if i == 0 || v != vs[i-1] {
			out = append(out, v)
		}
	}
	return out
}
