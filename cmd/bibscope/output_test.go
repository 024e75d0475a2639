package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/config"
	"github.com/matsen/bibscope/internal/format"
	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/storage"
)

func TestParseDocumentList(t *testing.T) {
	tests := []struct {
		spec    string
		want    []int
		wantErr bool
	}{
		{"0", []int{0}, false},
		{"0,3,5-7", []int{0, 3, 5, 6, 7}, false},
		{" 2 , 4 ", []int{2, 4}, false},
		{"1,,2", []int{1, 2}, false},
		{"", nil, false},
		{"x", nil, true},
		{"7-5", nil, true},
		{"3-x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseDocumentList(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDocumentList(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseDocumentList(%q) mismatch (-want +got):\n%s", tt.spec, diff)
			}
		})
	}
}

func TestIngestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown format", fmt.Errorf("loading: %w", format.ErrUnknownFormat), ExitError},
		{"parse failure", errors.New("line 3: missing column"), ExitDataError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ingestExitCode(tt.err); got != tt.want {
				t.Errorf("ingestExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRelationNames(t *testing.T) {
	want := "co-authorship, cites, co-citation, country-collaboration, institution-collaboration"
	if got := relationNames(); got != want {
		t.Errorf("relationNames() = %q, want %q", got, want)
	}
}

func TestFilterEdges(t *testing.T) {
	edges := []index.Edge{
		{SourceID: "a_0", TargetID: "a_1", Relation: index.CoAuthorship, Weight: 2},
		{SourceID: "a_1", TargetID: "a_2", Relation: index.CoAuthorship, Weight: 1},
		{SourceID: "0", TargetID: "r_0", Relation: index.Cites, Weight: 1},
	}
	tests := []struct {
		name  string
		rel   index.Relation
		id    string
		limit int
		want  int
	}{
		{"all", "", "", 0, 3},
		{"relation", index.CoAuthorship, "", 0, 2},
		{"identifier", "", "a_1", 0, 2},
		{"relation and identifier", index.CoAuthorship, "a_2", 0, 1},
		{"limit", "", "", 1, 1},
		{"no match", index.CoCitation, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterEdges(edges, tt.rel, tt.id, tt.limit)
			if len(got) != tt.want {
				t.Errorf("filterEdges() = %v, want %d edges", got, tt.want)
			}
		})
	}
}

func TestMustAppendRecords(t *testing.T) {
	root := t.TempDir()
	if err := config.Init(root, &config.Config{Name: "test"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	base := record.NewTable(record.Columns(), []record.Record{
		{"title": "First", "doi": "10.1/a", "source": "Scopus"},
	})
	if err := storage.WriteRecords(config.RecordsPath(root), base); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	combined := base.Concat(record.NewTable(record.Columns(), []record.Record{
		{"title": "Second", "doi": "10.1/b", "source": "PubMed"},
	}))

	mustAppendRecords(root, combined, base.Len())

	got, err := storage.ReadRecords(config.RecordsPath(root))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if diff := cmp.Diff([]string{"First", "Second"}, got.Column("title")); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()
	if n, err := db.Count(); err != nil || n != 2 {
		t.Errorf("Count() = %d, %v; want 2", n, err)
	}
}
