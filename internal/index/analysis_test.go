package index

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/record"
)

func TestCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Univ X, Dept Y, Boston, MA 02115 USA", "United States of America"},
		{"Inst Pasteur, Paris, France.", "France"},
		{"Zhejiang Univ, Hangzhou, Peoples R China", "China"},
		{"Univ Tokyo, Tokyo, JPN", "Japan"},
		{"Delft Univ Technol, Delft, NL", "Netherlands"},
		{"Harvard Univ, Cambridge, MA", "United States of America"},
		{"University of Toronto, Toronto, Ontario, Canada.", "Canada"},
		{"Univ of Oslo Norway", "Norway"},
		{"United Kingdom Research Council", "United Kingdom"},
		{"Imperial Coll London, London, England", "United Kingdom"},
		{"Some Lab", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Country(tt.in); got != tt.want {
			t.Errorf("Country(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInstitution(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dept Biol, Univ X, Boston, USA", "Univ X"},
		{"Massachusetts Institute of Technology, Cambridge, USA", "Massachusetts Institute of Technology"},
		{"Dept Chem, University of Y, Oslo", "University of Y"},
		{"Foo, Bar", ""},
	}
	for _, tt := range tests {
		if got := Institution(tt.in); got != tt.want {
			t.Errorf("Institution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEdges_CoAuthorship(t *testing.T) {
	ix := Build(fixtureTable())
	want := []Edge{
		{SourceID: "a_0", TargetID: "a_1", Relation: CoAuthorship, Weight: 1},
		{SourceID: "a_0", TargetID: "a_2", Relation: CoAuthorship, Weight: 1},
	}
	if diff := cmp.Diff(want, ix.Edges(CoAuthorship)); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges_Citation(t *testing.T) {
	ix := Build(fixtureTable())
	want := []Edge{
		{SourceID: "0", TargetID: "r_0", Relation: Cites, Weight: 1},
		{SourceID: "0", TargetID: "r_1", Relation: Cites, Weight: 1},
		{SourceID: "1", TargetID: "r_0", Relation: Cites, Weight: 1},
		{SourceID: "2", TargetID: "r_1", Relation: Cites, Weight: 1},
		{SourceID: "2", TargetID: "r_2", Relation: Cites, Weight: 1},
	}
	if diff := cmp.Diff(want, ix.Edges(Cites)); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges_CoCitationWeights(t *testing.T) {
	tbl := record.NewTable(record.Columns(), []record.Record{
		{"references": "A;B;C", "source": "Scopus"},
		{"references": "A;B", "source": "Scopus"},
	})
	want := []Edge{
		{SourceID: "r_0", TargetID: "r_1", Relation: CoCitation, Weight: 2},
		{SourceID: "r_0", TargetID: "r_2", Relation: CoCitation, Weight: 1},
		{SourceID: "r_1", TargetID: "r_2", Relation: CoCitation, Weight: 1},
	}
	if diff := cmp.Diff(want, Build(tbl).Edges(CoCitation)); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges_CountryCollaboration(t *testing.T) {
	ix := Build(fixtureTable())
	want := []Edge{
		{SourceID: "c_0", TargetID: "c_1", Relation: CountryCollaboration, Weight: 1},
		{SourceID: "c_0", TargetID: "c_2", Relation: CountryCollaboration, Weight: 1},
	}
	if diff := cmp.Diff(want, ix.Edges(CountryCollaboration)); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestEdge_Validate(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"valid", Edge{SourceID: "a_0", TargetID: "a_1", Relation: CoAuthorship}, nil},
		{"no source", Edge{TargetID: "a_1", Relation: CoAuthorship}, ErrEmptySourceID},
		{"no target", Edge{SourceID: "a_0", Relation: CoAuthorship}, ErrEmptyTargetID},
		{"relation", Edge{SourceID: "a_0", TargetID: "a_1", Relation: "likes"}, ErrUnknownRelation},
		{"self", Edge{SourceID: "a_0", TargetID: "a_0", Relation: CoAuthorship}, ErrSelfEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.edge.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseRelation(t *testing.T) {
	if r, ok := ParseRelation("co-citation"); !ok || r != CoCitation {
		t.Errorf("ParseRelation(co-citation) = %q, %v", r, ok)
	}
	if _, ok := ParseRelation("likes"); ok {
		t.Error("ParseRelation(likes) succeeded")
	}
}

func titles(t *record.Table) []string {
	return t.Column("title")
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"none", Filter{}, []string{"T0", "T1", "T2"}},
		{"documents", Filter{Documents: []int{2, 0}}, []string{"T2", "T0"}},
		{"types", Filter{DocumentTypes: []string{"Review"}}, []string{"T1"}},
		{"year from", Filter{YearFrom: 2020}, []string{"T0", "T1"}},
		{"year range", Filter{YearFrom: 2019, YearTo: 2020}, []string{"T0", "T2"}},
		{"sources", Filter{Sources: []string{"J Y"}}, []string{"T2"}},
		{"unmatched source", Filter{Sources: []string{"nowhere"}}, []string{"T0", "T1", "T2"}},
		{"zone 2", Filter{Core: Zone2}, []string{"T0", "T1"}},
		{"zone 3", Filter{Core: Zone3}, []string{"T2"}},
		{"zones 23", Filter{Core: Zones23}, []string{"T0", "T1", "T2"}},
		{"countries", Filter{Countries: []string{"japan"}}, []string{"T2"}},
		{"unmatched country", Filter{Countries: []string{"Narnia"}}, []string{"T0", "T1", "T2"}},
		{"languages", Filter{Languages: []string{"english"}}, []string{"T0", "T2"}},
		{"abstract", Filter{RequireAbstract: true}, []string{"T0"}},
		{"combined", Filter{DocumentTypes: []string{"Article"}, YearFrom: 2020}, []string{"T0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Apply(fixtureTable())
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Errorf("titles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	if _, err := (Filter{Documents: []int{5}}).Apply(fixtureTable()); !errors.Is(err, ErrDocumentRange) {
		t.Errorf("error = %v, want ErrDocumentRange", err)
	}
	if _, err := (Filter{Core: 4}).Apply(fixtureTable()); !errors.Is(err, ErrInvalidZone) {
		t.Errorf("error = %v, want ErrInvalidZone", err)
	}
}

func TestFilter_NewSnapshot(t *testing.T) {
	tbl := fixtureTable()
	got, err := Filter{YearFrom: 2020}.Apply(tbl)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Version() == tbl.Version() {
		t.Error("filtered table shares the input version")
	}
	if tbl.Len() != 3 {
		t.Errorf("input modified: Len() = %d", tbl.Len())
	}
}

func TestRename_MergesAuthors(t *testing.T) {
	tbl, err := Rename(fixtureTable(), Authors, []string{"smith j."}, "Smith, John")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got := tbl.Value(0, "author"); got != "Smith, John and Doe A." {
		t.Errorf("author = %q", got)
	}
	if _, ok := Build(tbl).Entity(Authors, "smith, john"); !ok {
		t.Error("renamed author not indexed")
	}
}

func TestRename_UnknownValuesUntouched(t *testing.T) {
	tbl, err := Rename(fixtureTable(), Sources, []string{"UNKNOWN"}, "x")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got := tbl.Value(1, "journal"); got != record.Unknown {
		t.Errorf("journal = %q", got)
	}
	if _, err := Rename(fixtureTable(), Kind("planet"), nil, "x"); err == nil {
		t.Error("Rename() with unknown kind succeeded")
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},
		{"same", "same", 1},
		{"", "", 1},
		{"abc", "xyz", 0},
		{"smith j", "smith, j", 14.0 / 15.0},
		// b is long enough for frequent runes to be treated as junk.
		{
			"Smith J, 2019, J Mol Biol, V431, P1021, DOI 10.1016/j.jmb.2019.01.002",
			"Smith J., Doe A., Lee K., A study of protein folding dynamics in yeast under thermal stress conditions, Journal of Molecular Biology, 2019, vol. 431, pp. 1021-1035, Elsevier, Amsterdam, doi:10.1016/j.jmb.2019.01.002",
			90.0 / 284.0,
		},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFuzzyMatches(t *testing.T) {
	names := []string{"smith j", "smith, j", "doe a"}
	want := map[string][]string{
		"smith j":  {"smith, j"},
		"smith, j": {"smith j"},
	}
	if diff := cmp.Diff(want, FuzzyMatches(names, nil, DefaultCutRatio)); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, FuzzyMatches(names, []string{"smith j", "absent"}, DefaultCutRatio)); diff != "" {
		t.Errorf("targeted matches mismatch (-want +got):\n%s", diff)
	}
}

func TestEDA(t *testing.T) {
	rows := Build(fixtureTable()).EDA()
	got := make(map[string]string, len(rows))
	for _, r := range rows {
		got[r.Label] = r.Value
	}
	want := map[string]string{
		"Timespan":                        "2019-2021",
		"Total Number of Countries":       "3",
		"Total Number of Documents":       "3",
		"--Article":                       "2",
		"--english (# of docs)":           "2",
		"Total Single-Authored Documents": "1",
		"Total Multi-Authored Documents":  "2",
		"Average Collaboration Index":     "2.00",
		"Max H-Index":                     "2",
		"Total Number of Citations":       "13",
		"Average Citations per Document":  "4.33",
		"Average Documents per Year":      "1.00",
	}
	for label, v := range want {
		if got[label] != v {
			t.Errorf("%s = %q, want %q", label, got[label], v)
		}
	}
}

func TestHealth(t *testing.T) {
	rows := Build(fixtureTable()).Health()
	got := make(map[string]HealthRow)
	for _, r := range rows {
		got[r.Column] = r
	}
	if r := got["author"]; r.Completeness != "100.00%" || r.Documents != 3 {
		t.Errorf("author health = %+v", r)
	}
	if r := got["abstract"]; r.Completeness != "33.33%" || r.Documents != 1 {
		t.Errorf("abstract health = %+v", r)
	}
	if len(rows) != 9 {
		t.Errorf("rows = %d, want 9", len(rows))
	}
}
