package ingest

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/matsen/bibscope/internal/record"
)

// TypeCount is the number of documents of one document type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Report summarizes one load.
type Report struct {
	RunID            string      `json:"run_id"`
	Format           string      `json:"format"`
	Path             string      `json:"path"`
	Original         int         `json:"original"`
	Final            int         `json:"final"`
	Duplicates       int         `json:"duplicates_removed"`
	RemoveDuplicates bool        `json:"remove_duplicates"`
	Types            []TypeCount `json:"document_types"`
	Stages           []string    `json:"stages"`
}

// Summary is the one-line count report.
func (r *Report) Summary() string {
	if r.RemoveDuplicates {
		return fmt.Sprintf("A Total of %d Documents were Found (Original: %d, Duplicates Removed: %d)",
			r.Final, r.Original, r.Duplicates)
	}
	return fmt.Sprintf("A Total of %d Documents were Found", r.Final)
}

// Lines returns the summary followed by a blank line and one
// "type = count" line per document type.
func (r *Report) Lines() []string {
	lines := []string{r.Summary(), ""}
	for _, tc := range r.Types {
		lines = append(lines, tc.Type+" = "+strconv.Itoa(tc.Count))
	}
	return lines
}

// MergeReport summarizes a merge of a new export into an existing table.
type MergeReport struct {
	Added        *Report     `json:"added"`
	Previous     int         `json:"previous"`
	Final        int         `json:"final"`
	Duplicates   int         `json:"duplicates_removed"`
	NewDocuments int         `json:"new_documents"`
	Types        []TypeCount `json:"document_types"`
}

// Summary is the one-line merge report.
func (m *MergeReport) Summary() string {
	return fmt.Sprintf("A Total of %d Documents were Found ( %d New Documents from the Added Database )",
		m.Final, m.NewDocuments)
}

// Lines returns the merge summary followed by the per-type counts.
func (m *MergeReport) Lines() []string {
	lines := []string{m.Summary(), ""}
	for _, tc := range m.Types {
		lines = append(lines, tc.Type+" = "+strconv.Itoa(tc.Count))
	}
	return lines
}

// CountTypes tallies the document_type column, sorted by type.
func CountTypes(t *record.Table) []TypeCount {
	counts := make(map[string]int)
	for _, v := range t.Column("document_type") {
		counts[v]++
	}
	out := make([]TypeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, TypeCount{Type: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
