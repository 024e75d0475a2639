package index

import (
	"fmt"
	"regexp"

	"github.com/matsen/bibscope/internal/record"
)

// renameColumns lists the columns an entity rename rewrites.
var renameColumns = map[Kind][]string{
	Authors:        {"author"},
	Institutions:   {"affiliation"},
	Countries:      {"affiliation"},
	Languages:      {"language"},
	Sources:        {"abbrev_source_title"},
	References:     {"references"},
	KeywordsPlus:   {"keywords"},
	AuthorKeywords: {"author_keywords"},
}

// Rename replaces every case-insensitive occurrence of each name in the
// columns holding kind k with replacement, and returns the new snapshot.
// Renaming merges entity variants: after it they index as one entity.
func Rename(t *record.Table, k Kind, names []string, replacement string) (*record.Table, error) {
	cols, ok := renameColumns[k]
	if !ok {
		return nil, fmt.Errorf("renaming %s entities: unsupported kind", k)
	}
	var patterns []*regexp.Regexp
	for _, n := range names {
		if n == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(n)))
	}
	return t.Map(func(_ int, r record.Record) record.Record {
		for _, c := range cols {
			if !r.Has(c) {
				continue
			}
			for _, p := range patterns {
				r[c] = p.ReplaceAllLiteralString(r[c], replacement)
			}
		}
		return r
	}), nil
}
