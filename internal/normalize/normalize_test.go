package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

func rawTable(records ...[]raw.Field) *raw.Table {
	t := &raw.Table{}
	for _, fields := range records {
		t.Records = append(t.Records, raw.Record{Fields: fields})
	}
	return t
}

func TestCanonicalize_WoSRenames(t *testing.T) {
	src := rawTable([]raw.Field{
		{Tag: "pt", Value: "J"},
		{Tag: "au", Value: "Smith, J and Doe, A"},
		{Tag: "de", Value: "alpha; beta"},
		{Tag: "ti", Value: "A Title"},
		{Tag: "dt", Value: "Article; Early Access"},
		{Tag: "py", Value: "2021"},
		{Tag: "da", Value: "2021-04-01"},
	})
	tbl := Canonicalize(src, WoSFields)

	tests := []struct {
		col, want string
	}{
		{"author", "Smith, J and Doe, A"},
		{"author_keywords", "alpha; beta"},
		{"title", "A Title"},
		{"document_type", "Article; Early Access"},
		{"year", "2021"},
		{"pt", "J"},
		{"da", "2021-04-01"},
		{"abstract", record.Unknown},
	}
	for _, tt := range tests {
		if got := tbl.Value(0, tt.col); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.col, got, tt.want)
		}
	}
	cols := tbl.Columns()
	if diff := cmp.Diff(record.Columns(), cols[:len(record.Columns())]); diff != "" {
		t.Errorf("canonical columns not first (-want +got):\n%s", diff)
	}
}

func TestCanonicalize_RepeatedTags(t *testing.T) {
	src := rawTable([]raw.Field{
		{Tag: "fau", Value: "Smith, John"},
		{Tag: "au", Value: "Smith J"},
		{Tag: "ad", Value: "Dept A."},
		{Tag: "fau", Value: "Doe, Alice"},
		{Tag: "au", Value: "Doe A"},
		{Tag: "ad", Value: "Dept B."},
		{Tag: "pt", Value: "Journal Article"},
		{Tag: "pt", Value: "Clinical Trial"},
		{Tag: "is", Value: "1234-5678 (Print)"},
		{Tag: "is", Value: "1234-0000 (Linking)"},
	})
	tbl := Canonicalize(src, PubMedFields)

	tests := []struct {
		col, want string
	}{
		{"author", "Smith J and Doe A"},
		{"author_full_name", "Smith, John and Doe, Alice"},
		{"affiliation", "Dept A.;Dept B."},
		{"document_type", "Journal Article"},
		{"issn", "1234-0000 (Linking)"},
	}
	for _, tt := range tests {
		if got := tbl.Value(0, tt.col); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCanonicalize_RowCountMatchesEntries(t *testing.T) {
	src := rawTable(
		[]raw.Field{{Tag: "ti", Value: "One"}},
		[]raw.Field{},
		[]raw.Field{{Tag: "ti", Value: "Three"}},
	)
	if got := Canonicalize(src, WoSFields).Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestCanonicalize_Deriver(t *testing.T) {
	src := rawTable([]raw.Field{
		{Tag: "lid", Value: "S0140-6736(20)30000-1 [pii]"},
		{Tag: "lid", Value: "10.1016/abc"},
		{Tag: "aid", Value: "10.9999/other [doi]"},
	})
	tbl := Canonicalize(src, PubMedFields, PubMedDOI)
	if got := tbl.Value(0, "doi"); got != "10.1016/abc" {
		t.Errorf("doi = %q, want 10.1016/abc", got)
	}

	src = rawTable([]raw.Field{{Tag: "aid", Value: "10.9999/other [doi]"}})
	tbl = Canonicalize(src, PubMedFields, PubMedDOI)
	if got := tbl.Value(0, "doi"); got != "10.9999/other" {
		t.Errorf("doi = %q, want 10.9999/other", got)
	}
}

func TestTable_Idempotent(t *testing.T) {
	src := rawTable(
		[]raw.Field{
			{Tag: "ti", Value: "  Padded  "},
			{Tag: "dt", Value: "Clinical Trial"},
			{Tag: "py", Value: "2019-05-01"},
			{Tag: "zz", Value: "extra"},
		},
		[]raw.Field{
			{Tag: "ti", Value: ""},
			{Tag: "dt", Value: "Systematic Review"},
		},
	)
	once := Table(Canonicalize(src, WoSFields))
	twice := Table(once)

	if diff := cmp.Diff(once.Columns(), twice.Columns()); diff != "" {
		t.Errorf("columns changed (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(once.Rows(), twice.Rows()); diff != "" {
		t.Errorf("rows changed (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(record.Columns(), once.Columns()); diff != "" {
		t.Errorf("columns not canonical (-want +got):\n%s", diff)
	}

	if got := once.Value(0, "document_type"); got != "Article" {
		t.Errorf("document_type = %q, want Article", got)
	}
	if got := once.Value(0, "year"); got != "2019" {
		t.Errorf("year = %q, want 2019", got)
	}
	if got := once.Value(0, "title"); got != "Padded" {
		t.Errorf("title = %q, want Padded", got)
	}
	if got := once.Value(1, "title"); got != record.Unknown {
		t.Errorf("empty title = %q, want %q", got, record.Unknown)
	}
	if got := once.Value(1, "document_type"); got != "Review" {
		t.Errorf("document_type = %q, want Review", got)
	}
}

func TestDocumentType(t *testing.T) {
	tests := []struct {
		in    string
		extra map[string]string
		want  string
	}{
		{"Clinical Trial", nil, "Article"},
		{"Systematic Review", nil, "Review"},
		{"Article", nil, "Article"},
		{"Book Chapter", nil, "Book Chapter"},
		{"", nil, record.Unknown},
		{"article", LowerCaseTypes, "Article"},
		{"letter", LowerCaseTypes, "Article"},
		{"book-chapter", LowerCaseTypes, "Book Chapter"},
		{"Mystery", LowerCaseTypes, "Mystery"},
	}
	for _, tt := range tests {
		if got := DocumentType(tt.in, tt.extra); got != tt.want {
			t.Errorf("DocumentType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocumentType_TargetsAreFixedPoints(t *testing.T) {
	for from, to := range documentTypes {
		if got := DocumentType(to, nil); got != to {
			t.Errorf("%q -> %q is not stable: %q", from, to, got)
		}
	}
	for from, to := range LowerCaseTypes {
		if got := DocumentType(DocumentType(from, LowerCaseTypes), LowerCaseTypes); got != DocumentType(from, LowerCaseTypes) {
			t.Errorf("%q -> %q is not stable: %q", from, to, got)
		}
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"2020 Jan 15"}, "2020"},
		{[]string{"2019-05-01"}, "2019"},
		{[]string{"UNKNOWN", "2018"}, "2018"},
		{[]string{"", "JAN 2017"}, "2017"},
		{[]string{"March 3, 2016"}, "2016"},
		{[]string{"Spring 2015 issue"}, "2015"},
		{[]string{"n.d."}, record.Unknown},
		{nil, record.Unknown},
	}
	for _, tt := range tests {
		if got := Year(tt.in...); got != tt.want {
			t.Errorf("Year(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"eng", "English"},
		{"en", "English"},
		{"GER", "German"},
		{"xyz", "xyz"},
		{"", record.Unknown},
	}
	for _, tt := range tests {
		if got := Language(tt.in); got != tt.want {
			t.Errorf("Language(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
