// Package affiliation pairs the authors of a record with affiliation
// fragments.
//
// Resolution runs a Pipeline of Rules over a shared State. Each rule claims
// the authors and fragments it pairs, so later rules only see what is left:
// a corresponding-author rule runs before the positional fallback, and a
// fragment is never paired with more than one author.
package affiliation

import (
	"strings"

	"github.com/matsen/bibscope/internal/record"
)

// Pair assigns one affiliation fragment to one author.
type Pair struct {
	Author      string
	Affiliation string
}

func (p Pair) String() string {
	return p.Author + " " + p.Affiliation
}

// Result is the outcome of a resolution.
type Result struct {
	Pairs []Pair
	// Unpaired fragments are reported after the pairs.
	Unpaired []string
}

// String serializes the result with the pairing separator, or returns the
// sentinel when nothing was resolved.
func (r Result) String() string {
	parts := make([]string, 0, len(r.Pairs)+len(r.Unpaired))
	for _, p := range r.Pairs {
		parts = append(parts, p.String())
	}
	parts = append(parts, r.Unpaired...)
	if len(parts) == 0 {
		return record.Unknown
	}
	return strings.Join(parts, record.PairingSep)
}

// State is the input of a resolution and the bookkeeping of what earlier
// rules claimed. Authors and Fragments keep their original positions; an
// empty fragment marks a position without affiliation.
type State struct {
	Authors       []string
	Fragments     []string
	Corresponding string

	authorTaken   []bool
	fragmentTaken []bool
}

// NewState prepares a resolution over authors and fragments.
func NewState(authors, fragments []string, corresponding string) *State {
	return &State{
		Authors:       authors,
		Fragments:     fragments,
		Corresponding: corresponding,
		authorTaken:   make([]bool, len(authors)),
		fragmentTaken: make([]bool, len(fragments)),
	}
}

// AuthorFree reports whether author i is still unassigned.
func (s *State) AuthorFree(i int) bool { return !s.authorTaken[i] }

// FragmentFree reports whether fragment i is still unclaimed.
func (s *State) FragmentFree(i int) bool { return !s.fragmentTaken[i] }

// Partial is what one rule contributes.
type Partial struct {
	Pairs     []Pair
	Unpaired  []string
	Authors   []int
	Fragments []int
}

func (p Partial) empty() bool {
	return len(p.Pairs) == 0 && len(p.Unpaired) == 0 && len(p.Authors) == 0 && len(p.Fragments) == 0
}

// Rule extracts a partial result from the current state. ok is false when
// the rule does not apply; a rule never fails.
type Rule interface {
	Name() string
	Apply(s *State) (p Partial, ok bool)
}

// Pipeline applies rules in order.
type Pipeline []Rule

// Resolve runs the pipeline over s.
func (pl Pipeline) Resolve(s *State) Result {
	var res Result
	for _, rule := range pl {
		p, ok := rule.Apply(s)
		if !ok || p.empty() {
			continue
		}
		res.Pairs = append(res.Pairs, p.Pairs...)
		res.Unpaired = append(res.Unpaired, p.Unpaired...)
		for _, i := range p.Authors {
			s.authorTaken[i] = true
		}
		for _, i := range p.Fragments {
			s.fragmentTaken[i] = true
		}
	}
	return res
}
