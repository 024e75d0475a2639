package affiliation

import (
	"regexp"
	"strings"
)

var (
	correspondingPattern = regexp.MustCompile(`(?i)Corresponding Author\s+([^;]+);\s*([^;]+)`)
	nameListSplit        = regexp.MustCompile(`\s+and\s+|;`)
	bracketedPattern     = regexp.MustCompile(`^\[([^\]]*)\]\s*(.*)$`)
	parentheticalPattern = regexp.MustCompile(`^(.*?)\s*\((.+)\)\s*$`)
)

// CorrespondingRule reads "Corresponding Author <names>; <address>" from
// the state's correspondence text and gives the address to every named
// author found in the author list. Fragments equal to the address, ignoring
// case, are claimed too.
type CorrespondingRule struct{}

func (CorrespondingRule) Name() string { return "corresponding" }

func (CorrespondingRule) Apply(s *State) (Partial, bool) {
	m := correspondingPattern.FindStringSubmatch(s.Corresponding)
	if m == nil {
		return Partial{}, false
	}
	address := strings.TrimSpace(m[2])
	if address == "" {
		return Partial{}, false
	}

	var p Partial
	taken := make(map[int]bool)
	for _, name := range nameListSplit.Split(m[1], -1) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		i := findAuthor(s, name)
		if i < 0 || taken[i] {
			continue
		}
		taken[i] = true
		p.Authors = append(p.Authors, i)
		p.Pairs = append(p.Pairs, Pair{Author: s.Authors[i], Affiliation: address})
	}
	if len(p.Pairs) == 0 {
		return Partial{}, false
	}
	for i, f := range s.Fragments {
		if s.FragmentFree(i) && strings.EqualFold(strings.TrimSpace(f), address) {
			p.Fragments = append(p.Fragments, i)
		}
	}
	return p, true
}

// PositionalRule pairs the free fragments with the free authors in listed
// order. Authors left over get nothing; fragments left over are dropped
// unless KeepExtra is set.
type PositionalRule struct {
	KeepExtra bool
}

func (PositionalRule) Name() string { return "positional" }

func (r PositionalRule) Apply(s *State) (Partial, bool) {
	var authors, fragments []int
	for i := range s.Authors {
		if s.AuthorFree(i) {
			authors = append(authors, i)
		}
	}
	for i, f := range s.Fragments {
		if s.FragmentFree(i) && strings.TrimSpace(f) != "" {
			fragments = append(fragments, i)
		}
	}

	var p Partial
	for k, fi := range fragments {
		f := strings.TrimSpace(s.Fragments[fi])
		if k < len(authors) {
			ai := authors[k]
			p.Pairs = append(p.Pairs, Pair{Author: s.Authors[ai], Affiliation: f})
			p.Authors = append(p.Authors, ai)
			p.Fragments = append(p.Fragments, fi)
		} else if r.KeepExtra {
			p.Unpaired = append(p.Unpaired, f)
			p.Fragments = append(p.Fragments, fi)
		}
	}
	return p, true
}

// IndexPairRule pairs author i with fragment i. Empty fragments leave their
// author unpaired. Fragments past the last author are reported unpaired.
type IndexPairRule struct{}

func (IndexPairRule) Name() string { return "index-pair" }

func (IndexPairRule) Apply(s *State) (Partial, bool) {
	var p Partial
	for i, f := range s.Fragments {
		f = strings.TrimSpace(f)
		if !s.FragmentFree(i) || f == "" {
			continue
		}
		switch {
		case i < len(s.Authors) && s.AuthorFree(i):
			p.Pairs = append(p.Pairs, Pair{Author: s.Authors[i], Affiliation: f})
			p.Authors = append(p.Authors, i)
			p.Fragments = append(p.Fragments, i)
		case i >= len(s.Authors):
			p.Unpaired = append(p.Unpaired, f)
			p.Fragments = append(p.Fragments, i)
		}
	}
	return p, true
}

// BracketedRule handles Web of Science blocks of the form
// "[Name; Name] Address": every named author gets the address.
type BracketedRule struct{}

func (BracketedRule) Name() string { return "bracketed" }

func (BracketedRule) Apply(s *State) (Partial, bool) {
	var p Partial
	for fi, f := range s.Fragments {
		if !s.FragmentFree(fi) {
			continue
		}
		m := bracketedPattern.FindStringSubmatch(strings.TrimSpace(f))
		if m == nil {
			continue
		}
		address := strings.TrimSpace(m[2])
		if address == "" {
			continue
		}
		claimed := false
		for _, name := range strings.Split(m[1], ";") {
			i := findAuthor(s, name)
			if i < 0 || contains(p.Authors, i) {
				continue
			}
			p.Authors = append(p.Authors, i)
			p.Pairs = append(p.Pairs, Pair{Author: s.Authors[i], Affiliation: address})
			claimed = true
		}
		if claimed {
			p.Fragments = append(p.Fragments, fi)
		}
	}
	return p, len(p.Pairs) > 0
}

// ParentheticalRule handles Dimensions fragments "Name (Address)".
type ParentheticalRule struct{}

func (ParentheticalRule) Name() string { return "parenthetical" }

func (ParentheticalRule) Apply(s *State) (Partial, bool) {
	var p Partial
	for fi, f := range s.Fragments {
		if !s.FragmentFree(fi) {
			continue
		}
		m := parentheticalPattern.FindStringSubmatch(strings.TrimSpace(f))
		if m == nil {
			continue
		}
		i := findAuthor(s, m[1])
		if i < 0 || contains(p.Authors, i) {
			continue
		}
		p.Authors = append(p.Authors, i)
		p.Fragments = append(p.Fragments, fi)
		p.Pairs = append(p.Pairs, Pair{Author: s.Authors[i], Affiliation: strings.TrimSpace(m[2])})
	}
	return p, len(p.Pairs) > 0
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
