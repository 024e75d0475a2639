package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/textio"
	"github.com/xuri/excelize/v2"
)

var dimensionsLayout = tabularLayout{
	format: "dimensions",
	renames: []rename{
		{"pmid", "pubmed_id"},
		{"source title", "journal"},
		{"pubyear", "year"},
		{"publication date", "year_orig"},
		{"issue", "number"},
		{"pagination", "pages"},
		{"publication type", "document_type"},
		{"authors", "author"},
		{"authors affiliations", "affiliation"},
		{"authors (raw affiliation)", "affiliation_"},
		{"corresponding authors", "correspondence_address1"},
		{"times cited", "note"},
		{"mesh terms", "keywords"},
		{"dimensions url", "url"},
		{"funder", "sponsors"},
		{"cited references", "references"},
	},
	authorColumns: []string{"author"},
	source:        "Dimensions",
}

// ReadDimensions parses a Dimensions export in CSV or XLSX form.
func ReadDimensions(path string) (*raw.Table, error) {
	if textio.Ext(path) == ".xlsx" {
		return readDimensionsXLSX(path)
	}
	text, err := textio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := parseCSV("dimensions", strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return tableFromRows(skipPreamble(rows), dimensionsLayout)
}

func readDimensionsXLSX(path string) (*raw.Table, error) {
	data, err := textio.ReadBytes(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, textio.ErrEmptyInput)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, textio.ErrUndecodable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, noEntries("dimensions")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(skipPreamble(rows), dimensionsLayout)
}

// skipPreamble drops the "About the data" lines Dimensions puts above the
// header row.
func skipPreamble(rows [][]string) [][]string {
	for len(rows) > 0 {
		first := rows[0]
		if len(first) == 0 {
			rows = rows[1:]
			continue
		}
		cell := strings.TrimSpace(first[0])
		if strings.HasPrefix(strings.ToLower(cell), "about the data") || nonEmptyCells(first) < 2 {
			rows = rows[1:]
			continue
		}
		break
	}
	return rows
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
