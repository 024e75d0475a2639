// Package normalize maps raw field tables onto the canonical record schema.
package normalize

import (
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

// Fields maps raw tags of one format to canonical columns. Tags without an
// entry keep their folded name.
type Fields map[string]string

// Column returns the column a raw tag lands in.
func (f Fields) Column(tag string) string {
	if c, ok := f[tag]; ok {
		return c
	}
	return record.FoldKey(tag)
}

// WoSFields renames Web of Science tags. PT is left alone: it holds the
// publication kind (J, B, S) while DT carries the document type.
var WoSFields = Fields{
	"j9": "abbrev_source_title",
	"ji": "abbrev_source_title",
	"ti": "title",
	"au": "author",
	"af": "author_full_name",
	"c1": "affiliation_",
	"rp": "correspondence_address1",
	"em": "email",
	"ab": "abstract",
	"id": "keywords",
	"de": "author_keywords",
	"cr": "references",
	"tc": "note",
	"py": "year",
	"vl": "volume",
	"is": "number",
	"bp": "pages_start",
	"ep": "pages_end",
	"ar": "art_number",
	"di": "doi",
	"ut": "wos_id",
	"sn": "issn",
	"ei": "eissn",
	"bn": "isbn",
	"la": "language",
	"dt": "document_type",
	"so": "journal",
	"pu": "publisher",
	"fu": "funding_details",
	"fx": "funding_text_1",
	"pm": "pubmed_id",
	"oi": "orcid",
	"be": "editor",
	"pg": "page_count",
}

// PubMedFields renames MEDLINE tags. LID and AID are not mapped directly;
// PubMedDOI picks the DOI among their values.
var PubMedFields = Fields{
	"ab":   "abstract",
	"ad":   "affiliation",
	"au":   "author",
	"auid": "orcid",
	"fau":  "author_full_name",
	"dp":   "year_orig",
	"ed":   "editor",
	"ip":   "number",
	"is":   "issn",
	"jt":   "journal",
	"la":   "language_code",
	"mh":   "keywords",
	"ot":   "author_keywords",
	"pg":   "pages",
	"pt":   "document_type",
	"pmid": "pubmed_id",
	"ta":   "abbrev_source_title",
	"ti":   "title",
	"vi":   "volume",
	"pb":   "publisher",
	"gr":   "funding_details",
	"rn":   "chemicals_cas",
	"isbn": "isbn",
}

// BibTeXFields renames keys of the Scopus BibTeX export.
var BibTeXFields = Fields{
	"type":                   "document_type",
	"affiliations":           "affiliation",
	"correspondence_address": "correspondence_address1",
	"url":                    "url",
}

// listSeparators gives the join separator of columns that accumulate
// repeated values.
var listSeparators = map[string]string{
	"author":           record.AuthorSep,
	"author_full_name": record.AuthorSep,
	"editor":           record.AuthorSep,
	"affiliation":      record.ListSep,
	"keywords":         record.ListSep,
	"author_keywords":  record.ListSep,
	"references":       record.ListSep,
}

// Deriver fills canonical values that need more than a rename.
type Deriver func(src raw.Record, dst record.Record)

// Canonicalize turns a raw table into canonical rows. Every canonical
// column is present; tags that map to no canonical column are kept after
// them in first-seen order so later steps can read them.
func Canonicalize(t *raw.Table, fields Fields, derive ...Deriver) *record.Table {
	columns := record.Columns()
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	rows := make([]record.Record, 0, t.Len())
	for _, src := range t.Records {
		dst := record.New()
		firstSeen := make(map[string]bool)
		for _, f := range src.Fields {
			col := fields.Column(f.Tag)
			if col == "" {
				continue
			}
			if !known[col] {
				known[col] = true
				columns = append(columns, col)
			}
			merge(dst, col, f.Value, firstSeen)
		}
		for _, d := range derive {
			d(src, dst)
		}
		rows = append(rows, dst)
	}
	return record.NewTable(columns, rows)
}

// merge stores value under col, following the rules for repeated tags:
// list columns accumulate, document_type keeps the first value and any
// other column keeps the last one.
func merge(dst record.Record, col, value string, firstSeen map[string]bool) {
	value = strings.TrimSpace(value)
	if record.IsUnknown(value) {
		if _, ok := dst[col]; !ok {
			dst[col] = record.Unknown
		}
		return
	}
	if sep, ok := listSeparators[col]; ok && firstSeen[col] {
		dst[col] = dst[col] + sep + value
		return
	}
	if col == "document_type" && firstSeen[col] {
		return
	}
	dst[col] = value
	firstSeen[col] = true
}

// Table brings a canonical table into the fixed column order with sentinel
// fill, mapped document types and four-digit years. Applying it to its own
// output changes nothing.
func Table(t *record.Table) *record.Table {
	return t.Reorder(record.Columns()).Map(func(_ int, r record.Record) record.Record {
		for c, v := range r {
			if record.IsUnknown(v) {
				r[c] = record.Unknown
			} else {
				r[c] = strings.TrimSpace(v)
			}
		}
		r["document_type"] = DocumentType(r["document_type"], nil)
		r["year"] = Year(r["year"])
		return r
	})
}

// PubMedDOI picks the DOI of a MEDLINE entry: the first LID that looks like
// a DOI, else the AID flagged "[doi]".
func PubMedDOI(src raw.Record, dst record.Record) {
	for _, v := range src.Values("lid") {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "10.") {
			dst["doi"] = v
			return
		}
	}
	for _, v := range src.Values("aid") {
		if strings.HasSuffix(v, "[doi]") {
			dst["doi"] = strings.TrimSpace(strings.TrimSuffix(v, "[doi]"))
			return
		}
	}
}
