package reader

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const pubmedFixture = `PMID- 12345
OWN - NLM
TI  - A title that
      continues here.
FAU - Smith, John
AU  - Smith J
AD  - Dept A.
FAU - Doe, Alice
AU  - Doe A
AD  - Dept B.
LID - 10.1000/xyz [doi]
PT  - Journal Article
PT  - Clinical Trial

PMID- 67890
TI  - Second
`

func TestParsePubMed_MultiValuedTags(t *testing.T) {
	tbl := ParsePubMed(strings.Split(pubmedFixture, "\n"))
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	rec := tbl.Records[0]
	if diff := cmp.Diff([]string{"Smith, John", "Doe, Alice"}, rec.Values("fau")); diff != "" {
		t.Errorf("fau mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dept A.", "Dept B."}, rec.Values("ad")); diff != "" {
		t.Errorf("ad mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Journal Article", "Clinical Trial"}, rec.Values("pt")); diff != "" {
		t.Errorf("pt mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		tag, want string
	}{
		{"pmid", "12345"},
		{"ti", "A title that continues here."},
		{"lid", "10.1000/xyz"},
		{"note", "0"},
		{"source", "PubMed"},
	}
	for _, tt := range tests {
		if got := rec.Get(tt.tag); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.tag, got, tt.want)
		}
	}
	if got := tbl.Value(1, "ab"); got != "UNKNOWN" {
		t.Errorf("missing ab = %q, want UNKNOWN", got)
	}
}

func TestPreprocessPubMed_JoinsRepeatedSingleTags(t *testing.T) {
	lines := []string{
		"PMID- 1",
		"GR  - first",
		"GR  - second",
	}
	got := PreprocessPubMed(lines)
	want := []string{"PMID=1", "GR=first second"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PreprocessPubMed mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPubMed_Gzip(t *testing.T) {
	path := writeGzipFixture(t, "pubmed.txt.gz", pubmedFixture)
	tbl, err := ReadPubMed(path)
	if err != nil {
		t.Fatalf("ReadPubMed() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}
