package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/record"
)

// Zone is a Bradford zone. Sources are ranked by document count; zone 1
// holds the sources covering the first third of the cumulative count, zone
// 2 the second third and zone 3 the rest.
type Zone int

const (
	NoZone  Zone = 0
	Zone1   Zone = 1
	Zone2   Zone = 2
	Zone3   Zone = 3
	Zones12 Zone = 12
	Zones23 Zone = 23
)

// ErrInvalidZone is returned for a Bradford zone other than 1, 2, 3, 12
// or 23.
var ErrInvalidZone = errors.New("invalid Bradford zone")

// ErrDocumentRange is returned when a document index is outside the table.
var ErrDocumentRange = errors.New("document index out of range")

// Filter selects documents. Zero values disable a criterion. Criteria are
// applied in field order, each on the result of the previous one.
type Filter struct {
	Documents       []int
	DocumentTypes   []string
	YearFrom        int
	YearTo          int
	Sources         []string
	Core            Zone
	Countries       []string
	Languages       []string
	RequireAbstract bool
}

// Apply returns the snapshot of t selected by f. A source or country
// criterion that matches no document leaves the table unchanged.
func (f Filter) Apply(t *record.Table) (*record.Table, error) {
	switch f.Core {
	case NoZone, Zone1, Zone2, Zone3, Zones12, Zones23:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidZone, f.Core)
	}

	if len(f.Documents) > 0 {
		for _, i := range f.Documents {
			if i < 0 || i >= t.Len() {
				return nil, fmt.Errorf("%w: %d (table has %d documents)", ErrDocumentRange, i, t.Len())
			}
		}
		t = t.Select(f.Documents)
	}
	if len(f.DocumentTypes) > 0 {
		want := set(f.DocumentTypes, false)
		t = t.Filter(func(_ int, r record.Record) bool { return want[r.Get("document_type")] })
	}
	if f.YearFrom > 0 || f.YearTo > 0 {
		t = t.Filter(func(_ int, r record.Record) bool {
			y := yearOf(r)
			if y == 0 {
				return false
			}
			return (f.YearFrom <= 0 || y >= f.YearFrom) && (f.YearTo <= 0 || y <= f.YearTo)
		})
	}
	if len(f.Sources) > 0 {
		want := set(f.Sources, true)
		if s := t.Filter(func(_ int, r record.Record) bool {
			return want[strings.ToLower(r.Get("abbrev_source_title"))]
		}); s.Len() > 0 {
			t = s
		}
	}
	if f.Core != NoZone {
		zone := BradfordZone(Build(t), f.Core)
		t = t.Filter(func(_ int, r record.Record) bool {
			return zone[strings.ToLower(r.Get("abbrev_source_title"))]
		})
	}
	if len(f.Countries) > 0 {
		want := set(f.Countries, true)
		ix := Build(t)
		if s := t.Filter(func(i int, _ record.Record) bool {
			for _, c := range ix.DocumentEntities(i, Countries) {
				if want[strings.ToLower(c)] {
					return true
				}
			}
			return false
		}); s.Len() > 0 {
			t = s
		}
	}
	if len(f.Languages) > 0 {
		want := set(f.Languages, true)
		t = t.Filter(func(_ int, r record.Record) bool { return want[strings.ToLower(r.Get("language"))] })
	}
	if f.RequireAbstract {
		t = t.Filter(func(_ int, r record.Record) bool { return r.Has("abstract") })
	}
	return t, nil
}

// BradfordZone returns the lower-cased source names in zone z.
func BradfordZone(ix *Index, z Zone) map[string]bool {
	sources := ix.tables[Sources]
	total := sumDocuments(sources)
	c1 := total / 3
	c2 := total * 2 / 3

	out := make(map[string]bool)
	cum := 0
	for _, s := range sources {
		cum += s.Documents
		var in bool
		switch z {
		case Zone1:
			in = cum <= c1
		case Zone2:
			in = cum > c1 && cum <= c2
		case Zone3:
			in = cum > c2
		case Zones12:
			in = cum <= c2
		case Zones23:
			in = cum > c1
		}
		if in {
			out[s.Name] = true
		}
	}
	return out
}

func set(vs []string, fold bool) map[string]bool {
	m := make(map[string]bool, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if fold {
			v = strings.ToLower(v)
		}
		m[v] = true
	}
	return m
}
