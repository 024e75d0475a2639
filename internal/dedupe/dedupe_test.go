package dedupe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/record"
)

func table(rows ...record.Record) *record.Table {
	return record.NewTable([]string{"doi", "title"}, rows)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Étude  des Systèmes: Part 2!", "etude des systemes part"},
		{"COVID-19 and You", "covid and you"},
		{"  ", ""},
		{"Naïve\tBayes", "naive bayes"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRemove_DuplicateDOIKeepsFirst(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/x", "title": "First"},
		record.Record{"doi": "10.1/x", "title": "Second"},
	)
	got, n := Remove(tbl)
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
	if diff := cmp.Diff([]string{"First"}, got.Column("title")); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove_DOICaseInsensitive(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/ABC", "title": "A"},
		record.Record{"doi": " 10.1/abc ", "title": "B"},
	)
	if _, n := Remove(tbl); n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
}

func TestRemove_DistinctDOIsSameTitleKept(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/a", "title": "Same Title"},
		record.Record{"doi": "10.1/b", "title": "Same Title"},
	)
	got, n := Remove(tbl)
	if n != 0 || got.Len() != 2 {
		t.Errorf("removed = %d, len = %d; want 0 and 2", n, got.Len())
	}
}

func TestRemove_UnknownDOIFallsBackToTitle(t *testing.T) {
	tbl := table(
		record.Record{"doi": record.Unknown, "title": "A Study of Things."},
		record.Record{"doi": record.Unknown, "title": "a study of things"},
		record.Record{"doi": record.Unknown, "title": "Another"},
	)
	got, n := Remove(tbl)
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
	if diff := cmp.Diff([]string{"A Study of Things.", "Another"}, got.Column("title")); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove_UnknownDOIMatchesKnownDOITitle(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/a", "title": "Shared"},
		record.Record{"doi": record.Unknown, "title": "Shared"},
	)
	if _, n := Remove(tbl); n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
}

func TestRemove_UnknownTitlesNeverMatch(t *testing.T) {
	tbl := table(
		record.Record{"doi": record.Unknown, "title": record.Unknown},
		record.Record{"doi": record.Unknown, "title": ""},
		record.Record{"doi": record.Unknown, "title": "123"},
		record.Record{"doi": record.Unknown, "title": "456"},
	)
	if _, n := Remove(tbl); n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/x", "title": "A"},
		record.Record{"doi": "10.1/x", "title": "B"},
		record.Record{"doi": record.Unknown, "title": "A"},
		record.Record{"doi": record.Unknown, "title": "C"},
	)
	once, n1 := Remove(tbl)
	twice, n2 := Remove(once)
	if n1 != 2 {
		t.Errorf("first pass removed %d, want 2", n1)
	}
	if n2 != 0 {
		t.Errorf("second pass removed %d, want 0", n2)
	}
	if diff := cmp.Diff(once.Rows(), twice.Rows()); diff != "" {
		t.Errorf("second pass changed rows (-once +twice):\n%s", diff)
	}
}

func TestRemove_MissingColumnsIsNoop(t *testing.T) {
	tbl := record.NewTable([]string{"doi"}, []record.Record{{"doi": "x"}, {"doi": "x"}})
	got, n := Remove(tbl)
	if n != 0 || got.Len() != 2 {
		t.Errorf("removed = %d, len = %d; want 0 and 2", n, got.Len())
	}
}

func TestRemove_NewSnapshot(t *testing.T) {
	tbl := table(
		record.Record{"doi": "10.1/x", "title": "A"},
		record.Record{"doi": "10.1/x", "title": "A"},
	)
	got, _ := Remove(tbl)
	if got.Version() == tbl.Version() {
		t.Error("Remove returned the same version for a changed table")
	}
	if tbl.Len() != 2 {
		t.Error("Remove modified its input")
	}
}
