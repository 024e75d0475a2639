// Package format binds each supported export format to its reader,
// field normalization, year derivation and affiliation resolution.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/bibscope/internal/affiliation"
	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

// ErrUnknownFormat is returned for a format tag without a registered
// implementation.
var ErrUnknownFormat = errors.New("unknown source format")

// Format is the capability set of one export format.
type Format interface {
	// Name is the canonical format tag.
	Name() string
	// Parse reads an export file into a raw table.
	Parse(path string) (*raw.Table, error)
	// NormalizeFields maps raw tags to canonical columns and normalizes
	// document types.
	NormalizeFields(t *raw.Table) *record.Table
	// DeriveYear computes the four-digit year of a normalized record.
	DeriveYear(r record.Record) string
	// ResolveAffiliations pairs authors with affiliations and returns the
	// updated record.
	ResolveAffiliations(r record.Record, policy affiliation.EscapePolicy) record.Record
}

var registry = map[string]Format{}

var aliases = map[string]string{
	"web of science": "wos",
	"webofscience":   "wos",
	"medline":        "pubmed",
	"bibtex":         "scopus",
	"scopus-bib":     "scopus",
	"scopus-csv":     "scopus",
}

func register(f Format) {
	registry[f.Name()] = f
}

func init() {
	register(scopus{})
	register(wos{})
	register(pubmed{})
	register(dimensions{})
	register(openAlex{})
}

// Lookup returns the format registered under tag. Tags are matched without
// regard to case.
func Lookup(tag string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(tag))
	if a, ok := aliases[key]; ok {
		key = a
	}
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, tag, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered format tags in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
