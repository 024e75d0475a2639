package reader

import (
	"regexp"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/textio"
)

var scopusCSVLayout = tabularLayout{
	format: "scopus",
	renames: []rename{
		{"abbreviated source title", "abbrev_source_title"},
		{"journal", "abbrev_source_title"},
		{"document type", "document_type"},
		{"art. no.", "art_number"},
		{"author keywords", "author_keywords"},
		{"authors", "author"},
		{"author full names", "author_full_name"},
		{"chemicals/cas", "chemicals_cas"},
		{"correspondence address", "correspondence_address1"},
		{"editors", "editor"},
		{"funding details", "funding_details"},
		{"funding texts", "funding_text_1"},
		{"index keywords", "keywords"},
		{"language of original document", "language"},
		{"cited by", "note"},
		{"page count", "page_count"},
		{"pubmed id", "pubmed_id"},
		{"source title", "journal"},
		{"affiliations", "affiliation"},
		{"issue", "number"},
		{"page start", "pages_start"},
		{"page end", "pages_end"},
		{"link", "url"},
	},
	authorColumns: []string{"author", "author_full_name"},
	source:        "Scopus",
}

// scopusAuthorID matches the "(57190000000)" id suffix of full author names.
var scopusAuthorID = regexp.MustCompile(`\s*\(\d+\)`)

// ReadScopusCSV parses a Scopus CSV export.
func ReadScopusCSV(path string) (*raw.Table, error) {
	text, err := textio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := parseCSV("scopus", strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	t, err := tableFromRows(rows, scopusCSVLayout)
	if err != nil {
		return nil, err
	}
	for i := range t.Records {
		for j, f := range t.Records[i].Fields {
			if f.Tag == "author_full_name" && f.Value != record.Unknown {
				t.Records[i].Fields[j].Value = scopusAuthorID.ReplaceAllString(f.Value, "")
			}
		}
	}
	return t, nil
}

// ReadBibTeX parses a BibTeX export such as the Scopus .bib format.
func ReadBibTeX(path string) (*raw.Table, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	t := ParseBibTeX(lines)
	if t.Len() == 0 {
		return nil, noEntries("bibtex")
	}
	return t, nil
}

// ParseBibTeX segments BibTeX lines into entries.
func ParseBibTeX(lines []string) *raw.Table {
	return parseTagged(lines, taggedSyntax{
		isStart: isBibEntryStart,
		bibtex:  true,
	})
}

func isBibEntryStart(line string) bool {
	if !strings.HasPrefix(line, "@") {
		return false
	}
	kind := strings.ToLower(line)
	for _, skip := range []string{"@comment", "@string", "@preamble"} {
		if strings.HasPrefix(kind, skip) {
			return false
		}
	}
	return true
}
