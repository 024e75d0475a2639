package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/record"
)

func fixtureTable() *record.Table {
	return record.NewTable(record.Columns(), []record.Record{
		{"title": "Protein folding", "abstract": "We fold proteins.", "author_keywords": "protein; folding", "note": "4", "author": "Smith J.", "year": "2020"},
		{"title": "Gene networks", "keywords": "genes", "author": "Doe A.", "year": "2021"},
		{"abstract": "Untitled work."},
	})
}

func TestReportPrompt(t *testing.T) {
	p := ReportPrompt(index.Build(fixtureTable()).EDA())
	if !strings.Contains(p, "Timespan: 2020-2021\n") {
		t.Errorf("prompt lacks timespan:\n%s", p)
	}
	if strings.Contains(p, "-//-") {
		t.Errorf("prompt contains separators:\n%s", p)
	}
}

func TestEntityPrompt_Top(t *testing.T) {
	entities := []index.Entity{
		{Name: "j x", Documents: 5, Citations: 20},
		{Name: "j y", Documents: 1, Citations: 2},
	}
	p := EntityPrompt(index.Sources, entities, 1)
	if !strings.Contains(p, "j x | 5 | 20\n") {
		t.Errorf("prompt lacks first entity:\n%s", p)
	}
	if strings.Contains(p, "j y") {
		t.Errorf("prompt includes entity beyond top:\n%s", p)
	}
	if !strings.Contains(EntityPrompt(index.Sources, entities, 0), "j y") {
		t.Error("top 0 dropped entities")
	}
}

func TestCorpus(t *testing.T) {
	want := []string{
		"Protein folding. We fold proteins.. protein; folding",
		"Gene networks. genes",
		"Untitled work.",
	}
	if diff := cmp.Diff(want, Corpus(fixtureTable())); diff != "" {
		t.Errorf("corpus mismatch (-want +got):\n%s", diff)
	}
}

type fakeModeler struct {
	out []Assignment
	err error
}

func (f fakeModeler) Topics(_ context.Context, docs []string) ([]Assignment, error) {
	return f.out, f.err
}

func TestAssignTopics(t *testing.T) {
	m := fakeModeler{out: []Assignment{{0, 0.9}, {1, 0.7}, {Outlier, 0}}}
	got, err := AssignTopics(context.Background(), m, fixtureTable())
	if err != nil {
		t.Fatalf("AssignTopics() error = %v", err)
	}
	want := []Topic{{ID: 0, Documents: []int{0}}, {ID: 1, Documents: []int{1}}}
	if diff := cmp.Diff(want, GroupTopics(got)); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignTopics_LengthMismatch(t *testing.T) {
	m := fakeModeler{out: []Assignment{{0, 0.9}}}
	if _, err := AssignTopics(context.Background(), m, fixtureTable()); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
	boom := errors.New("boom")
	if _, err := AssignTopics(context.Background(), fakeModeler{err: boom}, fixtureTable()); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped model error", err)
	}
}

type fakeCompleter struct {
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return "label", nil
}

func TestLabelTopics(t *testing.T) {
	topics := []Topic{{ID: 0, Documents: []int{0, 1}}, {ID: 1, Documents: []int{2}}}
	c := &fakeCompleter{}
	if err := LabelTopics(context.Background(), c, fixtureTable(), topics, 1); err != nil {
		t.Fatalf("LabelTopics() error = %v", err)
	}
	if topics[0].Label != "label" || topics[1].Label != "" {
		t.Errorf("labels = %q, %q", topics[0].Label, topics[1].Label)
	}
	if len(c.prompts) != 1 || !strings.Contains(c.prompts[0], "1. Protein folding\n") || strings.Contains(c.prompts[0], "Gene networks") {
		t.Errorf("prompts = %q", c.prompts)
	}
}
