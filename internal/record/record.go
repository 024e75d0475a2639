// Package record defines the canonical bibliographic record schema shared by
// every source format.
package record

import "strings"

// Unknown marks a field that is absent in the source export.
const Unknown = "UNKNOWN"

// List separators used when a canonical field holds several values.
const (
	AuthorSep  = " and "
	ListSep    = ";"
	PairingSep = "; "
)

// columns is the canonical column order. Consumers depend on this exact set.
var columns = []string{
	"abbrev_source_title", "abstract", "address", "affiliation", "affiliation_",
	"art_number", "author", "author_full_name", "author_keywords", "chemicals_cas",
	"coden", "correspondence_address1", "document_type", "doi", "eissn", "email",
	"editor", "funding_details", "funding_text_1", "funding_text_2", "funding_text_3",
	"isbn", "issn", "journal", "keywords", "language", "language_code", "note",
	"number", "orcid", "page_count", "pages", "pages_start", "pages_end",
	"publisher", "pubmed_id", "references", "source", "sponsors", "title",
	"tradenames", "url", "volume", "year", "year_orig", "wos_id",
}

var columnSet = func() map[string]bool {
	m := make(map[string]bool, len(columns))
	for _, c := range columns {
		m[c] = true
	}
	return m
}()

// Columns returns a copy of the canonical column order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// IsColumn reports whether name is a canonical column.
func IsColumn(name string) bool {
	return columnSet[name]
}

// IsUnknown reports whether v carries no information.
func IsUnknown(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == Unknown
}

var keyFolder = strings.NewReplacer(" ", "_", "\u00a0", "_", "-", "_")

// FoldKey turns an export key into a column identifier: it is lower-cased
// and spaces, non-breaking spaces and hyphens become underscores.
func FoldKey(k string) string {
	return keyFolder.Replace(strings.ToLower(strings.TrimSpace(k)))
}

// Record is one document keyed by column name.
type Record map[string]string

// New returns a record with every canonical column set to Unknown.
func New() Record {
	r := make(Record, len(columns))
	for _, c := range columns {
		r[c] = Unknown
	}
	return r
}

// Get returns the value of col, or Unknown when it is absent or blank.
func (r Record) Get(col string) string {
	v, ok := r[col]
	if !ok || IsUnknown(v) {
		return Unknown
	}
	return v
}

// Has reports whether col holds a known value.
func (r Record) Has(col string) bool {
	return !IsUnknown(r[col])
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
