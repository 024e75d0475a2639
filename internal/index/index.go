// Package index derives entity tables, identifiers, edge lists and reports
// from a canonical table.
package index

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/refsplit"
)

// Kind names an entity table.
type Kind string

const (
	Authors        Kind = "author"
	Sources        Kind = "source"
	Institutions   Kind = "institution"
	Countries      Kind = "country"
	AuthorKeywords Kind = "author_keyword"
	KeywordsPlus   Kind = "keyword_plus"
	Languages      Kind = "language"
	References     Kind = "reference"
)

// Kinds lists every entity kind in report order.
var Kinds = []Kind{Authors, Sources, Institutions, Countries, AuthorKeywords, KeywordsPlus, Languages, References}

// idPrefixes gives the identifier prefix of each kind. Languages carry no
// identifier.
var idPrefixes = map[Kind]string{
	Authors:        "a_",
	Sources:        "j_",
	Institutions:   "i_",
	Countries:      "c_",
	AuthorKeywords: "k_",
	KeywordsPlus:   "p_",
	References:     "r_",
}

// byCount marks kinds whose tables are ordered by document count rather
// than by name.
var byCount = map[Kind]bool{
	Sources:        true,
	AuthorKeywords: true,
	KeywordsPlus:   true,
}

var kindAliases = map[string]Kind{
	"journal":  Sources,
	"journals": Sources,
	"kwa":      AuthorKeywords,
	"kwp":      KeywordsPlus,
	"keywords": KeywordsPlus,
}

// ParseKind maps a kind name, its plural or its identifier prefix onto a
// Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	for _, k := range Kinds {
		p := strings.TrimSuffix(idPrefixes[k], "_")
		if string(k) == s || string(k)+"s" == s || (p != "" && p == s) {
			return k, true
		}
	}
	return "", false
}

// Entity is one row of an entity table.
type Entity struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Documents int    `json:"documents"`
	Citations int    `json:"citations"`
	HIndex    int    `json:"h_index,omitempty"`
	GIndex    int    `json:"g_index,omitempty"`
}

// Document is the derived view of one canonical row.
type Document struct {
	ID        string `json:"id"`
	Citation  string `json:"citation"`
	Year      int    `json:"year"`
	Citations int    `json:"citations"`
	Type      string `json:"document_type"`
}

// AuthorAffiliation links an author of a document to the institution and
// country of the affiliation paired with them.
type AuthorAffiliation struct {
	Document    int    `json:"document"`
	Author      string `json:"author"`
	Institution string `json:"institution,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Index holds the entity tables derived from one table snapshot. It is
// read-only once built.
type Index struct {
	table   *record.Table
	docs    []Document
	members []map[Kind][]string
	tables  map[Kind][]Entity
	names   map[Kind]map[string]int
	byID    map[string]Entity
	links   []AuthorAffiliation
}

// Build derives every entity table from t.
func Build(t *record.Table) *Index {
	ix := &Index{
		table:   t,
		docs:    make([]Document, t.Len()),
		members: make([]map[Kind][]string, t.Len()),
		tables:  make(map[Kind][]Entity),
		names:   make(map[Kind]map[string]int),
		byID:    make(map[string]Entity),
	}
	for i, r := range t.Rows() {
		ix.docs[i] = Document{
			ID:        strconv.Itoa(i),
			Citation:  DocumentString(r),
			Year:      yearOf(r),
			Citations: Citations(r.Get("note")),
			Type:      r.Get("document_type"),
		}
		m, links := extract(r)
		for j := range links {
			links[j].Document = i
		}
		ix.members[i] = m
		ix.links = append(ix.links, links...)
	}
	for _, k := range Kinds {
		ix.buildTable(k)
	}
	return ix
}

func (ix *Index) buildTable(k Kind) {
	type acc struct {
		docs      int
		citations []int
	}
	counts := make(map[string]*acc)
	for i, m := range ix.members {
		for _, name := range m[k] {
			a, ok := counts[name]
			if !ok {
				a = &acc{}
				counts[name] = a
			}
			a.docs++
			a.citations = append(a.citations, ix.docs[i].Citations)
		}
	}

	entities := make([]Entity, 0, len(counts))
	for name, a := range counts {
		e := Entity{Name: name, Documents: a.docs}
		for _, c := range a.citations {
			e.Citations += c
		}
		if k == Authors {
			e.HIndex = HIndex(a.citations)
			e.GIndex = GIndex(a.citations)
		}
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool {
		if byCount[k] && entities[i].Documents != entities[j].Documents {
			return entities[i].Documents > entities[j].Documents
		}
		return entities[i].Name < entities[j].Name
	})

	lookup := make(map[string]int, len(entities))
	for i := range entities {
		if p, ok := idPrefixes[k]; ok {
			entities[i].ID = p + strconv.Itoa(i)
			ix.byID[entities[i].ID] = entities[i]
		}
		lookup[entities[i].Name] = i
	}
	ix.tables[k] = entities
	ix.names[k] = lookup
}

// extract collects the entity names of one record. Names are unique within
// the record.
func extract(r record.Record) (map[Kind][]string, []AuthorAffiliation) {
	m := make(map[Kind][]string)
	authors := refsplit.Authors(r.Get("author"))
	lower := func(vs []string) []string {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strings.ToLower(v)
		}
		return out
	}

	m[Authors] = unique(lower(authors))
	if r.Has("abbrev_source_title") {
		m[Sources] = []string{strings.ToLower(strings.TrimSpace(r["abbrev_source_title"]))}
	}
	m[AuthorKeywords] = unique(lower(refsplit.Keywords(r.Get("author_keywords"))))
	m[KeywordsPlus] = unique(lower(refsplit.Keywords(r.Get("keywords"))))
	m[Languages] = unique(lower(refsplit.Keywords(r.Get("language"))))
	m[References] = unique(refsplit.References(r.Get("source"), r.Get("references")))

	var links []AuthorAffiliation
	var insts, ctrs []string
	for _, frag := range refsplit.Affiliations(r.Get("affiliation")) {
		author, address := splitAuthor(authors, frag)
		inst := Institution(address)
		ctr := Country(address)
		if inst != "" {
			insts = append(insts, inst)
		}
		if ctr != "" {
			ctrs = append(ctrs, ctr)
		}
		if author != "" {
			links = append(links, AuthorAffiliation{Author: strings.ToLower(author), Institution: inst, Country: ctr})
		}
	}
	m[Institutions] = unique(insts)
	m[Countries] = unique(ctrs)
	return m, links
}

// splitAuthor separates the leading author name of a resolved
// "author affiliation" fragment. The longest listed author that prefixes
// the fragment wins.
func splitAuthor(authors []string, fragment string) (string, string) {
	best := ""
	for _, a := range authors {
		n := len(a)
		if n > len(best) && len(fragment) > n && fragment[n] == ' ' && strings.EqualFold(fragment[:n], a) {
			best = a
		}
	}
	if best == "" {
		return "", fragment
	}
	return best, strings.TrimSpace(fragment[len(best):])
}

func unique(vs []string) []string {
	seen := make(map[string]bool, len(vs))
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v == "" || record.IsUnknown(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func yearOf(r record.Record) int {
	y, err := strconv.Atoi(r.Get("year"))
	if err != nil {
		return 0
	}
	return y
}

// DocumentString renders the citation line of a record:
// "author (year). title. journal. doi:doi. ".
func DocumentString(r record.Record) string {
	return r.Get("author") + " (" + r.Get("year") + "). " + r.Get("title") + ". " +
		r.Get("journal") + ". doi:" + r.Get("doi") + ". "
}

// Table returns the snapshot the index was built from.
func (ix *Index) Table() *record.Table { return ix.table }

// Len returns the number of documents.
func (ix *Index) Len() int { return len(ix.docs) }

// Documents returns the document views in row order.
func (ix *Index) Documents() []Document {
	out := make([]Document, len(ix.docs))
	copy(out, ix.docs)
	return out
}

// Entities returns the entity table of kind k.
func (ix *Index) Entities(k Kind) []Entity {
	out := make([]Entity, len(ix.tables[k]))
	copy(out, ix.tables[k])
	return out
}

// Entity looks up an entity by its table name.
func (ix *Index) Entity(k Kind, name string) (Entity, bool) {
	i, ok := ix.names[k][name]
	if !ok {
		return Entity{}, false
	}
	return ix.tables[k][i], true
}

// Lookup resolves an identifier such as "a_3" or "r_10". Document
// identifiers are plain row numbers.
func (ix *Index) Lookup(id string) (string, bool) {
	if e, ok := ix.byID[id]; ok {
		return e.Name, true
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 0 && n < len(ix.docs) {
		return ix.docs[n].Citation, true
	}
	return "", false
}

// DocumentEntities returns the names of kind k attached to document i.
func (ix *Index) DocumentEntities(i int, k Kind) []string {
	if i < 0 || i >= len(ix.members) {
		return nil
	}
	out := make([]string, len(ix.members[i][k]))
	copy(out, ix.members[i][k])
	return out
}

// AuthorAffiliations returns the author to institution and country links
// found in resolved affiliation fields.
func (ix *Index) AuthorAffiliations() []AuthorAffiliation {
	out := make([]AuthorAffiliation, len(ix.links))
	copy(out, ix.links)
	return out
}

// DocumentTypes maps each document type to the rows that carry it.
func (ix *Index) DocumentTypes() map[string][]int {
	out := make(map[string][]int)
	for i, d := range ix.docs {
		out[d.Type] = append(out[d.Type], i)
	}
	return out
}
