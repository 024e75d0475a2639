package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/textio"
	"github.com/segmentio/encoding/json"
)

// work is the subset of an OpenAlex work entity the reader maps.
type work struct {
	ID              string `json:"id"`
	DOI             string `json:"doi"`
	Title           string `json:"title"`
	DisplayName     string `json:"display_name"`
	PublicationYear int64  `json:"publication_year"`
	PublicationDate string `json:"publication_date"`
	Type            string `json:"type"`
	Language        string `json:"language"`
	CitedByCount    int64  `json:"cited_by_count"`
	IDs             struct {
		PMID string `json:"pmid"`
	} `json:"ids"`
	Biblio struct {
		Volume    string `json:"volume"`
		Issue     string `json:"issue"`
		FirstPage string `json:"first_page"`
		LastPage  string `json:"last_page"`
	} `json:"biblio"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
			ORCID       string `json:"orcid"`
		} `json:"author"`
		RawAuthorName         string   `json:"raw_author_name"`
		IsCorresponding       bool     `json:"is_corresponding"`
		RawAffiliationStrings []string `json:"raw_affiliation_strings"`
		Institutions          []struct {
			DisplayName string `json:"display_name"`
		} `json:"institutions"`
	} `json:"authorships"`
	PrimaryLocation struct {
		LandingPageURL string `json:"landing_page_url"`
		Source         struct {
			DisplayName          string `json:"display_name"`
			IssnL                string `json:"issn_l"`
			HostOrganizationName string `json:"host_organization_name"`
		} `json:"source"`
	} `json:"primary_location"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	Keywords              []struct {
		DisplayName string `json:"display_name"`
	} `json:"keywords"`
	Concepts []struct {
		DisplayName string `json:"display_name"`
	} `json:"concepts"`
	ReferencedWorks []string `json:"referenced_works"`
}

type worksEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

// ReadOpenAlex parses OpenAlex works given as a JSON array, an API response
// envelope with "results", a single work or JSON Lines.
func ReadOpenAlex(path string) (*raw.Table, error) {
	text, err := textio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	works, err := decodeWorks([]byte(text))
	if err != nil {
		return nil, err
	}
	if len(works) == 0 {
		return nil, noEntries("openalex")
	}
	t := &raw.Table{}
	for _, w := range works {
		t.Records = append(t.Records, workRecord(w))
	}
	return t, nil
}

func decodeWorks(data []byte) ([]work, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var works []work
		if err := json.Unmarshal(trimmed, &works); err != nil {
			return nil, &ParseError{Format: "openalex", Message: err.Error()}
		}
		return works, nil
	}

	var works []work
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for entry := 1; ; entry++ {
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Format: "openalex", Message: fmt.Sprintf("entry %d: %v", entry, err)}
		}

		var env worksEnvelope
		if err := json.Unmarshal(msg, &env); err == nil && env.Results != nil {
			for i, r := range env.Results {
				var w work
				if err := json.Unmarshal(r, &w); err != nil {
					return nil, &ParseError{Format: "openalex", Message: fmt.Sprintf("result %d: %v", i+1, err)}
				}
				works = append(works, w)
			}
			continue
		}

		var w work
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, &ParseError{Format: "openalex", Message: fmt.Sprintf("entry %d: %v", entry, err)}
		}
		works = append(works, w)
	}
	return works, nil
}

// workRecord flattens one work into canonical-named fields. Affiliations
// are stored per author position, empty where OpenAlex has none.
func workRecord(w work) raw.Record {
	var rec raw.Record
	add := func(tag, value string) {
		rec.Add(tag, blankToUnknown(value))
	}

	title := w.Title
	if title == "" {
		title = w.DisplayName
	}

	var authors, fullNames, orcids, affs []string
	var corrNames []string
	corrAff := ""
	for _, a := range w.Authorships {
		name := strings.TrimSpace(a.Author.DisplayName)
		if name == "" {
			name = strings.TrimSpace(a.RawAuthorName)
		}
		if name == "" {
			continue
		}
		authors = append(authors, name)
		if a.RawAuthorName != "" {
			fullNames = append(fullNames, strings.TrimSpace(a.RawAuthorName))
		}
		if a.Author.ORCID != "" {
			orcids = append(orcids, strings.TrimPrefix(a.Author.ORCID, "https://orcid.org/"))
		}
		aff := ""
		if len(a.RawAffiliationStrings) > 0 {
			aff = a.RawAffiliationStrings[0]
		} else if len(a.Institutions) > 0 {
			aff = a.Institutions[0].DisplayName
		}
		aff = strings.ReplaceAll(strings.TrimSpace(aff), ";", ",")
		affs = append(affs, aff)

		if a.IsCorresponding && aff != "" && (corrAff == "" || strings.EqualFold(corrAff, aff)) {
			corrAff = aff
			corrNames = append(corrNames, name)
		}
	}

	add("source", "OpenAlex")
	add("title", title)
	add("doi", trimDOIURL(w.DOI))
	if w.PublicationYear > 0 {
		add("year", strconv.FormatInt(w.PublicationYear, 10))
	}
	add("year_orig", w.PublicationDate)
	add("document_type", w.Type)
	add("language_code", w.Language)
	add("note", strconv.FormatInt(w.CitedByCount, 10))
	add("author", strings.Join(authors, record.AuthorSep))
	add("author_full_name", strings.Join(fullNames, record.AuthorSep))
	add("orcid", strings.Join(orcids, record.ListSep))
	if hasAny(affs) {
		add("affiliation", strings.Join(affs, record.ListSep))
	}
	if len(corrNames) > 0 {
		add("correspondence_address1", strings.Join(corrNames, record.AuthorSep)+"; "+corrAff)
	}
	add("journal", w.PrimaryLocation.Source.DisplayName)
	add("issn", w.PrimaryLocation.Source.IssnL)
	add("publisher", w.PrimaryLocation.Source.HostOrganizationName)
	url := w.PrimaryLocation.LandingPageURL
	if url == "" {
		url = w.ID
	}
	add("url", url)
	add("volume", w.Biblio.Volume)
	add("number", w.Biblio.Issue)
	add("pages_start", w.Biblio.FirstPage)
	add("pages_end", w.Biblio.LastPage)
	add("pages", pageRange(w.Biblio.FirstPage, w.Biblio.LastPage))
	add("abstract", invertAbstract(w.AbstractInvertedIndex))
	add("pubmed_id", strings.TrimPrefix(w.IDs.PMID, "https://pubmed.ncbi.nlm.nih.gov/"))

	var kws, concepts []string
	for _, k := range w.Keywords {
		kws = append(kws, k.DisplayName)
	}
	for _, c := range w.Concepts {
		concepts = append(concepts, c.DisplayName)
	}
	add("author_keywords", strings.Join(kws, record.ListSep))
	add("keywords", strings.Join(concepts, record.ListSep))
	add("references", strings.Join(w.ReferencedWorks, record.ListSep))
	return rec
}

func hasAny(vs []string) bool {
	for _, v := range vs {
		if v != "" {
			return true
		}
	}
	return false
}

func trimDOIURL(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "doi:"} {
		doi = strings.TrimPrefix(doi, p)
	}
	return doi
}

func pageRange(first, last string) string {
	switch {
	case first == "" && last == "":
		return ""
	case last == "":
		return first
	case first == "":
		return last
	default:
		return first + "-" + last
	}
}

// invertAbstract rebuilds text from an inverted index of word positions.
func invertAbstract(idx map[string][]int) string {
	if len(idx) == 0 {
		return ""
	}
	type slot struct {
		pos  int
		word string
	}
	var slots []slot
	for w, positions := range idx {
		for _, p := range positions {
			slots = append(slots, slot{p, w})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })
	words := make([]string, len(slots))
	for i, s := range slots {
		words[i] = s.word
	}
	return strings.Join(words, " ")
}
