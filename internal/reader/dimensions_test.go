package reader

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const dimensionsFixture = `"About the data: Exported on Oct 1, 2024"
Title,Authors,PubYear,DOI,Source title,Publication Type,Times cited,Authors Affiliations
Paper,"Smith, John; Doe, Alice",2021,10.2/x,Journal Y,article,3,"Smith, John (Univ A); Doe, Alice (Univ B)"
`

func TestReadDimensions_CSV(t *testing.T) {
	path := writeFixture(t, "dimensions.csv", dimensionsFixture)
	tbl, err := ReadDimensions(path)
	if err != nil {
		t.Fatalf("ReadDimensions() error = %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	tests := []struct {
		tag, want string
	}{
		{"author", "Smith, John and Doe, Alice"},
		{"year", "2021"},
		{"journal", "Journal Y"},
		{"document_type", "article"},
		{"note", "3"},
		{"affiliation", "Smith, John (Univ A); Doe, Alice (Univ B)"},
		{"source", "Dimensions"},
	}
	for _, tt := range tests {
		if got := tbl.Value(0, tt.tag); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestReadDimensions_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimensions.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"About the data: Exported on Oct 1, 2024"},
		{"Title", "Authors", "PubYear", "DOI"},
		{"Sheet Paper", "Lee, Kim", "2019", "10.3/y"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	tbl, err := ReadDimensions(path)
	if err != nil {
		t.Fatalf("ReadDimensions() error = %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	if got := tbl.Value(0, "title"); got != "Sheet Paper" {
		t.Errorf("title = %q, want Sheet Paper", got)
	}
	if got := tbl.Value(0, "doi"); got != "10.3/y" {
		t.Errorf("doi = %q, want 10.3/y", got)
	}
}

func TestSkipPreamble(t *testing.T) {
	rows := [][]string{
		{},
		{"About the data", ""},
		{"single"},
		{"Title", "DOI"},
		{"x", "y"},
	}
	got := skipPreamble(rows)
	if len(got) != 2 || got[0][0] != "Title" {
		t.Errorf("skipPreamble() = %v, want header first", got)
	}
}
