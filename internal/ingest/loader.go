// Package ingest drives a load: it dispatches on the format tag, normalizes
// fields and document types, removes duplicates, post-processes and returns
// the canonical table.
package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/matsen/bibscope/internal/affiliation"
	"github.com/matsen/bibscope/internal/dedupe"
	"github.com/matsen/bibscope/internal/format"
	"github.com/matsen/bibscope/internal/normalize"
	"github.com/matsen/bibscope/internal/record"
	log "github.com/sirupsen/logrus"
)

// Loader loads export files into canonical tables. A Loader holds no table
// state; the caller owns every table it returns.
type Loader struct {
	removeDuplicates bool
	escape           affiliation.EscapePolicy
	logger           log.FieldLogger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l log.FieldLogger) Option {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithEscapePolicy sets the placeholders used to protect abbreviation
// periods in WoS addresses.
func WithEscapePolicy(p affiliation.EscapePolicy) Option {
	return func(ld *Loader) {
		ld.escape = p
	}
}

// WithDuplicateRemoval sets whether duplicates are removed.
func WithDuplicateRemoval(remove bool) Option {
	return func(ld *Loader) {
		ld.removeDuplicates = remove
	}
}

// NewLoader returns a Loader that removes duplicates by default.
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{
		removeDuplicates: true,
		escape:           affiliation.DefaultEscapePolicy,
		logger:           log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads path as the export format named by tag.
func (ld *Loader) Load(path, tag string) (*record.Table, *Report, error) {
	f, err := format.Lookup(tag)
	if err != nil {
		return nil, nil, err
	}

	rep := &Report{
		RunID:            uuid.NewString(),
		Format:           f.Name(),
		Path:             path,
		RemoveDuplicates: ld.removeDuplicates,
	}
	entry := ld.logger.WithFields(log.Fields{"run": rep.RunID, "format": f.Name()})
	var st stages
	step := func(next Stage) error {
		if err := st.advance(next); err != nil {
			return err
		}
		rep.Stages = append(rep.Stages, next.String())
		entry.WithField("stage", next.String()).Debug("stage reached")
		return nil
	}

	rt, err := f.Parse(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s export %s: %w", f.Name(), path, err)
	}
	if err := step(Raw); err != nil {
		return nil, nil, err
	}
	rep.Original = rt.Len()

	t := f.NormalizeFields(rt)
	if err := step(TypeNormalized); err != nil {
		return nil, nil, err
	}

	if ld.removeDuplicates {
		t, rep.Duplicates = dedupe.Remove(t)
		if err := step(Deduplicated); err != nil {
			return nil, nil, err
		}
	}
	rep.Final = t.Len()
	rep.Types = CountTypes(t)

	t = ld.postProcess(t, f)
	if err := step(PostProcessed); err != nil {
		return nil, nil, err
	}

	t = normalize.Table(t)
	if err := step(Canonical); err != nil {
		return nil, nil, err
	}

	ld.logReport(entry, rep.Lines(), log.Fields{
		"original":   rep.Original,
		"final":      rep.Final,
		"duplicates": rep.Duplicates,
	})
	return t, rep, nil
}

// Merge loads path and appends it to base, then runs duplicate detection
// over the combined rows when duplicate removal is enabled. base is not
// modified.
func (ld *Loader) Merge(base *record.Table, path, tag string) (*record.Table, *MergeReport, error) {
	added, rep, err := ld.Load(path, tag)
	if err != nil {
		return nil, nil, err
	}

	combined := normalize.Table(base.Concat(added))
	removed := 0
	if ld.removeDuplicates {
		combined, removed = dedupe.Remove(combined)
	}

	mr := &MergeReport{
		Added:        rep,
		Previous:     base.Len(),
		Final:        combined.Len(),
		Duplicates:   removed,
		NewDocuments: combined.Len() - base.Len(),
		Types:        CountTypes(combined),
	}
	ld.logReport(ld.logger.WithField("run", rep.RunID), mr.Lines(), log.Fields{
		"previous":   mr.Previous,
		"final":      mr.Final,
		"duplicates": mr.Duplicates,
	})
	return combined, mr, nil
}

// postProcess fills the sentinel, switches keyword separators to ";" and
// applies the format's year and affiliation derivations.
func (ld *Loader) postProcess(t *record.Table, f format.Format) *record.Table {
	return t.Map(func(_ int, r record.Record) record.Record {
		for c, v := range r {
			if record.IsUnknown(v) {
				r[c] = record.Unknown
			}
		}
		for _, c := range []string{"keywords", "author_keywords"} {
			if r.Has(c) {
				r[c] = strings.ReplaceAll(r[c], ",", record.ListSep)
			}
		}
		r["year"] = f.DeriveYear(r)
		r = f.ResolveAffiliations(r, ld.escape)
		if !r.Has("abbrev_source_title") && r.Has("journal") {
			r["abbrev_source_title"] = r["journal"]
		}
		return r
	})
}

func (ld *Loader) logReport(entry log.FieldLogger, lines []string, fields log.Fields) {
	entry.WithFields(fields).Info(lines[0])
	for _, l := range lines[2:] {
		entry.Info(l)
	}
}
