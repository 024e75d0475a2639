package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/affiliation"
	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"scopus", "scopus"},
		{"WoS", "wos"},
		{" pubmed ", "pubmed"},
		{"Web of Science", "wos"},
		{"medline", "pubmed"},
		{"dimensions", "dimensions"},
		{"openalex", "openalex"},
	}
	for _, tt := range tests {
		f, err := Lookup(tt.tag)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.tag, err)
			continue
		}
		if f.Name() != tt.want {
			t.Errorf("Lookup(%q).Name() = %q, want %q", tt.tag, f.Name(), tt.want)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("crossref")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestNames(t *testing.T) {
	want := []string{"dimensions", "openalex", "pubmed", "scopus", "wos"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestPubMed_NormalizeFields(t *testing.T) {
	src := &raw.Table{Records: []raw.Record{{Fields: []raw.Field{
		{Tag: "pmid", Value: "1"},
		{Tag: "pt", Value: "Journal Article"},
		{Tag: "la", Value: "eng"},
		{Tag: "lid", Value: "10.1/x"},
		{Tag: "dp", Value: "2020 Jan"},
	}}}}
	f, _ := Lookup("pubmed")
	tbl := f.NormalizeFields(src)

	tests := []struct {
		col, want string
	}{
		{"pubmed_id", "1"},
		{"document_type", "Article"},
		{"language", "English"},
		{"doi", "10.1/x"},
		{"year_orig", "2020 Jan"},
	}
	for _, tt := range tests {
		if got := tbl.Value(0, tt.col); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.col, got, tt.want)
		}
	}
	if got := f.DeriveYear(tbl.Row(0)); got != "2020" {
		t.Errorf("DeriveYear() = %q, want 2020", got)
	}
}

func TestWoS_DeriveYearFallsBackToDA(t *testing.T) {
	f, _ := Lookup("wos")
	r := record.New()
	r["da"] = "2023-02-11"
	if got := f.DeriveYear(r); got != "2023" {
		t.Errorf("DeriveYear() = %q, want 2023", got)
	}
}

func TestWoS_ResolveAffiliations(t *testing.T) {
	f, _ := Lookup("wos")
	r := record.New()
	r["author"] = "Smith, J and Lee, K"
	r["affiliation_"] = "[Smith, John] Univ X, USA. [Lee, Kim] Univ Z, Japan."
	got := f.ResolveAffiliations(r, affiliation.DefaultEscapePolicy)

	if want := "Smith, J Univ X, USA; Lee, K Univ Z, Japan"; got["affiliation"] != want {
		t.Errorf("affiliation = %q, want %q", got["affiliation"], want)
	}
	if want := "[Smith, John] Univ X, USA;[Lee, Kim] Univ Z, Japan"; got["affiliation_"] != want {
		t.Errorf("affiliation_ = %q, want %q", got["affiliation_"], want)
	}
}

func TestScopus_ResolveAffiliationsPrefixOnce(t *testing.T) {
	f, _ := Lookup("scopus")
	r := record.New()
	r["author"] = "Smith, J. and Doe, A."
	r["affiliation"] = "Dept of X;Dept of Y"
	r["correspondence_address1"] = "Corresponding Author Smith, J.; Dept of X"
	got := f.ResolveAffiliations(r, affiliation.DefaultEscapePolicy)

	if want := "Corresponding Author Smith, J.; Dept of X"; got["correspondence_address1"] != want {
		t.Errorf("correspondence_address1 = %q, want %q", got["correspondence_address1"], want)
	}
	if want := "Smith, J. Dept of X; Doe, A. Dept of Y"; got["affiliation"] != want {
		t.Errorf("affiliation = %q, want %q", got["affiliation"], want)
	}
}

func TestDimensions_NormalizeFieldsLowerCaseTypes(t *testing.T) {
	src := &raw.Table{Records: []raw.Record{{Fields: []raw.Field{
		{Tag: "document_type", Value: "chapter"},
	}}}}
	f, _ := Lookup("dimensions")
	if got := f.NormalizeFields(src).Value(0, "document_type"); got != "Book Chapter" {
		t.Errorf("document_type = %q, want Book Chapter", got)
	}
}
