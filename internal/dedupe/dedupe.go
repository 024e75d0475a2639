// Package dedupe finds and removes duplicate records. A known DOI is
// authoritative; the cleaned title is only compared when the DOI is unknown.
package dedupe

import (
	"strings"
	"unicode"

	"github.com/matsen/bibscope/internal/record"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanTitle lower-cases a title, strips accents, removes punctuation and
// digits and collapses whitespace.
func CleanTitle(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(title))
	if err != nil {
		s = strings.ToLower(title)
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Flags marks every row that duplicates an earlier one. The first
// occurrence is never flagged. Tables without a doi or title column yield
// no flags.
func Flags(t *record.Table) []bool {
	flags := make([]bool, t.Len())
	if !t.HasColumn("doi") || !t.HasColumn("title") {
		return flags
	}

	seenDOI := make(map[string]bool)
	seenTitle := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		doi := t.Value(i, "doi")
		title := t.Value(i, "title")

		doiKnown := !record.IsUnknown(doi)
		doiDup := false
		if doiKnown {
			key := strings.ToLower(strings.TrimSpace(doi))
			doiDup = seenDOI[key]
			seenDOI[key] = true
		}

		titleDup := false
		if !record.IsUnknown(title) {
			if key := CleanTitle(title); key != "" {
				titleDup = seenTitle[key]
				seenTitle[key] = true
			}
		}

		flags[i] = (doiKnown && doiDup) || (!doiKnown && titleDup)
	}
	return flags
}

// Remove drops the flagged rows and returns the new snapshot with the number
// of rows removed.
func Remove(t *record.Table) (*record.Table, int) {
	flags := Flags(t)
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	if n == 0 {
		return t, 0
	}
	return t.Drop(flags), n
}
