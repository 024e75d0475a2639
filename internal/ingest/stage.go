package ingest

import (
	"errors"
	"fmt"
)

// ErrStageOrder is returned when a load tries to re-enter or skip back to an
// earlier stage.
var ErrStageOrder = errors.New("ingest stage out of order")

// Stage is the progress of one load.
type Stage int

const (
	Unparsed Stage = iota
	Raw
	TypeNormalized
	Deduplicated
	PostProcessed
	Canonical
)

var stageNames = [...]string{
	Unparsed:       "unparsed",
	Raw:            "raw",
	TypeNormalized: "type-normalized",
	Deduplicated:   "deduplicated",
	PostProcessed:  "post-processed",
	Canonical:      "canonical",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// stages tracks one load. Stages only move forward; Deduplicated may be
// skipped, every other stage may not.
type stages struct {
	current Stage
	history []Stage
}

func (s *stages) advance(next Stage) error {
	if next <= s.current {
		return fmt.Errorf("%w: %s after %s", ErrStageOrder, next, s.current)
	}
	want := s.current + 1
	if want == Deduplicated && next == PostProcessed {
		want = PostProcessed
	}
	if next != want {
		return fmt.Errorf("%w: %s cannot follow %s", ErrStageOrder, next, s.current)
	}
	s.current = next
	s.history = append(s.history, next)
	return nil
}
