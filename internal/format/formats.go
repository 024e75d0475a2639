package format

import (
	"github.com/matsen/bibscope/internal/affiliation"
	"github.com/matsen/bibscope/internal/normalize"
	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/reader"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/textio"
)

// mapTypes normalizes document types, consulting extra first when given.
func mapTypes(t *record.Table, extra map[string]string) *record.Table {
	return t.Map(func(_ int, r record.Record) record.Record {
		r["document_type"] = normalize.DocumentType(r["document_type"], extra)
		return r
	})
}

// languageFromCode fills language from language_code.
func languageFromCode(t *record.Table) *record.Table {
	return t.Map(func(_ int, r record.Record) record.Record {
		if r.Has("language_code") {
			r["language"] = normalize.Language(r["language_code"])
		}
		return r
	})
}

type scopus struct{}

func (scopus) Name() string { return "scopus" }

func (scopus) Parse(path string) (*raw.Table, error) {
	if textio.Ext(path) == ".csv" {
		return reader.ReadScopusCSV(path)
	}
	return reader.ReadBibTeX(path)
}

func (scopus) NormalizeFields(t *raw.Table) *record.Table {
	return mapTypes(normalize.Canonicalize(t, normalize.BibTeXFields), nil)
}

func (scopus) DeriveYear(r record.Record) string {
	return normalize.Year(r["year"])
}

func (scopus) ResolveAffiliations(r record.Record, _ affiliation.EscapePolicy) record.Record {
	r["correspondence_address1"] = affiliation.WithCorrespondingPrefix(r["correspondence_address1"])
	r["affiliation"] = affiliation.Scopus(r["author"], r["affiliation"], r["correspondence_address1"]).String()
	return r
}

type wos struct{}

func (wos) Name() string { return "wos" }

func (wos) Parse(path string) (*raw.Table, error) { return reader.ReadWoS(path) }

func (wos) NormalizeFields(t *raw.Table) *record.Table {
	return mapTypes(normalize.Canonicalize(t, normalize.WoSFields), nil)
}

// DeriveYear prefers PY and falls back to DA.
func (wos) DeriveYear(r record.Record) string {
	return normalize.Year(r["year"], r["da"])
}

func (wos) ResolveAffiliations(r record.Record, policy affiliation.EscapePolicy) record.Record {
	res, blocks := affiliation.WoS(r["author"], r["affiliation_"], r["correspondence_address1"], policy)
	if !r.Has("affiliation") {
		r["affiliation"] = res.String()
	}
	if len(blocks) > 0 {
		r["affiliation_"] = affiliation.JoinBlocks(blocks)
	}
	return r
}

type pubmed struct{}

func (pubmed) Name() string { return "pubmed" }

func (pubmed) Parse(path string) (*raw.Table, error) { return reader.ReadPubMed(path) }

func (pubmed) NormalizeFields(t *raw.Table) *record.Table {
	c := normalize.Canonicalize(t, normalize.PubMedFields, normalize.PubMedDOI)
	return languageFromCode(mapTypes(c, nil))
}

// DeriveYear reads the DP publication date.
func (pubmed) DeriveYear(r record.Record) string {
	return normalize.Year(r["year_orig"], r["year"])
}

func (pubmed) ResolveAffiliations(r record.Record, _ affiliation.EscapePolicy) record.Record {
	r["affiliation"] = affiliation.PubMed(r["author"], r["affiliation"]).String()
	return r
}

type dimensions struct{}

func (dimensions) Name() string { return "dimensions" }

func (dimensions) Parse(path string) (*raw.Table, error) { return reader.ReadDimensions(path) }

func (dimensions) NormalizeFields(t *raw.Table) *record.Table {
	return mapTypes(normalize.Canonicalize(t, nil), normalize.LowerCaseTypes)
}

func (dimensions) DeriveYear(r record.Record) string {
	return normalize.Year(r["year"], r["year_orig"])
}

func (dimensions) ResolveAffiliations(r record.Record, _ affiliation.EscapePolicy) record.Record {
	r["affiliation"] = affiliation.Dimensions(r["author"], r["affiliation"]).String()
	return r
}

type openAlex struct{}

func (openAlex) Name() string { return "openalex" }

func (openAlex) Parse(path string) (*raw.Table, error) { return reader.ReadOpenAlex(path) }

func (openAlex) NormalizeFields(t *raw.Table) *record.Table {
	c := normalize.Canonicalize(t, nil)
	return languageFromCode(mapTypes(c, normalize.LowerCaseTypes))
}

func (openAlex) DeriveYear(r record.Record) string {
	return normalize.Year(r["year"], r["year_orig"])
}

func (openAlex) ResolveAffiliations(r record.Record, _ affiliation.EscapePolicy) record.Record {
	r["correspondence_address1"] = affiliation.WithCorrespondingPrefix(r["correspondence_address1"])
	r["affiliation"] = affiliation.OpenAlex(r["author"], r["affiliation"], r["correspondence_address1"]).String()
	return r
}
