package index

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/matsen/bibscope/internal/record"
)

// Row is one labelled line of a report.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// reportSeparator divides report sections.
var reportSeparator = Row{Label: "-//-", Value: "-//-"}

// IsSeparator reports whether r divides report sections.
func (r Row) IsSeparator() bool { return r == reportSeparator }

func intRow(label string, n int) Row { return Row{Label: label, Value: strconv.Itoa(n)} }

func avgRow(label string, total, n int) Row {
	if n == 0 {
		return Row{Label: label, Value: "0"}
	}
	return Row{Label: label, Value: fmt.Sprintf("%.2f", float64(total)/float64(n))}
}

// EDA returns the main-information report of the indexed table.
func (ix *Index) EDA() []Row {
	var rows []Row

	lo, hi, dated := 0, 0, 0
	years := make(map[int]int)
	totalCitations := 0
	for _, d := range ix.docs {
		totalCitations += d.Citations
		if d.Year <= 0 {
			continue
		}
		years[d.Year]++
		dated++
		if lo == 0 || d.Year < lo {
			lo = d.Year
		}
		if d.Year > hi {
			hi = d.Year
		}
	}
	rows = append(rows, Row{Label: "Timespan", Value: fmt.Sprintf("%d-%d", lo, hi)})
	rows = append(rows,
		intRow("Total Number of Countries", len(ix.tables[Countries])),
		intRow("Total Number of Institutions", len(ix.tables[Institutions])),
		intRow("Total Number of Sources", len(ix.tables[Sources])),
		intRow("Total Number of References", len(ix.tables[References])),
		intRow("Total Number of Languages", len(ix.tables[Languages])),
	)
	for _, l := range ix.tables[Languages] {
		rows = append(rows, intRow("--"+l.Name+" (# of docs)", l.Documents))
	}
	rows = append(rows, reportSeparator)

	rows = append(rows, intRow("Total Number of Documents", len(ix.docs)))
	types := ix.DocumentTypes()
	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		rows = append(rows, intRow("--"+t, len(types[t])))
	}
	rows = append(rows,
		avgRow("Average Documents per Author", sumDocuments(ix.tables[Authors]), len(ix.tables[Authors])),
		avgRow("Average Documents per Institution", sumDocuments(ix.tables[Institutions]), len(ix.tables[Institutions])),
		avgRow("Average Documents per Source", sumDocuments(ix.tables[Sources]), len(ix.tables[Sources])),
		avgRow("Average Documents per Year", dated, len(years)),
		reportSeparator,
	)

	single, multi, multiAuthors, maxH := 0, 0, 0, 0
	for _, m := range ix.members {
		switch n := len(m[Authors]); {
		case n == 1:
			single++
		case n > 1:
			multi++
			multiAuthors += n
		}
	}
	for _, a := range ix.tables[Authors] {
		if a.HIndex > maxH {
			maxH = a.HIndex
		}
	}
	rows = append(rows,
		intRow("Total Number of Authors", len(ix.tables[Authors])),
		intRow("Total Number of Authors Keywords", len(ix.tables[AuthorKeywords])),
		intRow("Total Number of Authors Keywords Plus", len(ix.tables[KeywordsPlus])),
		intRow("Total Single-Authored Documents", single),
		intRow("Total Multi-Authored Documents", multi),
		avgRow("Average Collaboration Index", multiAuthors, multi),
		intRow("Max H-Index", maxH),
		reportSeparator,
	)

	rows = append(rows,
		intRow("Total Number of Citations", totalCitations),
		avgRow("Average Citations per Author", totalCitations, len(ix.tables[Authors])),
		avgRow("Average Citations per Institution", totalCitations, len(ix.tables[Institutions])),
		avgRow("Average Citations per Document", totalCitations, len(ix.docs)),
		avgRow("Average Citations per Source", sumCitations(ix.tables[Sources]), len(ix.tables[Sources])),
		reportSeparator,
	)
	return rows
}

func sumDocuments(es []Entity) int {
	n := 0
	for _, e := range es {
		n += e.Documents
	}
	return n
}

func sumCitations(es []Entity) int {
	n := 0
	for _, e := range es {
		n += e.Citations
	}
	return n
}

// HealthRow reports how many documents have a known value in one column.
type HealthRow struct {
	Entry        string `json:"entry"`
	Column       string `json:"column"`
	Completeness string `json:"completeness"`
	Documents    int    `json:"documents"`
}

var healthColumns = []struct {
	column string
	entry  string
}{
	{"abbrev_source_title", "Sources"},
	{"abstract", "Abstracts"},
	{"affiliation", "Affiliation"},
	{"author", "Author(s)"},
	{"doi", "DOI"},
	{"author_keywords", "Keywords - Authors"},
	{"keywords", "Keywords - Plus"},
	{"references", "References"},
	{"year", "Year"},
}

// Health reports the completeness of the key bibliographic columns. A
// column absent from the table has an empty completeness.
func (ix *Index) Health() []HealthRow {
	n := ix.table.Len()
	rows := make([]HealthRow, 0, len(healthColumns))
	for _, hc := range healthColumns {
		row := HealthRow{Entry: hc.entry, Column: hc.column}
		if !ix.table.HasColumn(hc.column) {
			rows = append(rows, row)
			continue
		}
		for _, v := range ix.table.Column(hc.column) {
			if !record.IsUnknown(v) {
				row.Documents++
			}
		}
		pct := 0.0
		if n > 0 {
			pct = float64(row.Documents) / float64(n) * 100
		}
		row.Completeness = fmt.Sprintf("%.2f%%", pct)
		rows = append(rows, row)
	}
	return rows
}
