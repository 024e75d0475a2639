// Package summary assembles text from canonical tables and derived indices
// for external language-model and topic-model services.
package summary

import (
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/record"
)

// ReportPrompt asks for a narrative summary of an EDA report.
func ReportPrompt(rows []index.Row) string {
	var b strings.Builder
	b.WriteString("Summarize the main characteristics of the following bibliometric dataset. ")
	b.WriteString("Mention its timespan, size, growth and citation impact.\n\n")
	for _, r := range rows {
		if r.IsSeparator() {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
	}
	return b.String()
}

// EntityPrompt asks for an interpretation of the top entities of kind k.
// A non-positive top includes every entity.
func EntityPrompt(k index.Kind, entities []index.Entity, top int) string {
	if top > 0 && len(entities) > top {
		entities = entities[:top]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Interpret the following %s table from a bibliometric dataset. ", k)
	b.WriteString("Point out the most productive and the most cited entries.\n\n")
	b.WriteString("name | documents | citations\n")
	for _, e := range entities {
		fmt.Fprintf(&b, "%s | %d | %d\n", e.Name, e.Documents, e.Citations)
	}
	return b.String()
}

// TopicPrompt asks for a short label for a group of documents.
func TopicPrompt(docs []string) string {
	var b strings.Builder
	b.WriteString("Give a short label (at most five words) for the research topic shared by these documents. ")
	b.WriteString("Answer with the label only.\n\n")
	for i, d := range docs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	return b.String()
}

// Corpus returns one text per row made of the known title, abstract and
// keyword fields.
func Corpus(t *record.Table) []string {
	out := make([]string, t.Len())
	for i, r := range t.Rows() {
		var parts []string
		for _, col := range []string{"title", "abstract", "author_keywords", "keywords"} {
			if v := r.Get(col); !record.IsUnknown(v) {
				parts = append(parts, strings.TrimSpace(v))
			}
		}
		out[i] = strings.Join(parts, ". ")
	}
	return out
}
