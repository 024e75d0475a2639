package index

import (
	"errors"
	"sort"
)

// Relation names the kind of an edge.
type Relation string

const (
	// CoAuthorship links two authors of the same document.
	CoAuthorship Relation = "co-authorship"
	// Cites links a document to a reference it lists.
	Cites Relation = "cites"
	// CoCitation links two references listed by the same document.
	CoCitation Relation = "co-citation"
	// CountryCollaboration links two countries sharing a document.
	CountryCollaboration Relation = "country-collaboration"
	// InstitutionCollaboration links two institutions sharing a document.
	InstitutionCollaboration Relation = "institution-collaboration"
)

// Relations lists every relation in a stable order.
var Relations = []Relation{CoAuthorship, Cites, CoCitation, CountryCollaboration, InstitutionCollaboration}

// cooccurrence maps co-occurrence relations onto the entity kind they pair.
var cooccurrence = map[Relation]Kind{
	CoAuthorship:             Authors,
	CoCitation:               References,
	CountryCollaboration:     Countries,
	InstitutionCollaboration: Institutions,
}

// Edge is a weighted relation between two identifiers.
type Edge struct {
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
	Relation Relation `json:"relation"`
	Weight   int      `json:"weight"`
}

// EdgeKey is the identity of an edge.
type EdgeKey struct {
	SourceID string
	TargetID string
	Relation Relation
}

// Key returns the identity tuple of e.
func (e Edge) Key() EdgeKey {
	return EdgeKey{SourceID: e.SourceID, TargetID: e.TargetID, Relation: e.Relation}
}

// Validation errors.
var (
	ErrEmptySourceID   = errors.New("source_id is required")
	ErrEmptyTargetID   = errors.New("target_id is required")
	ErrUnknownRelation = errors.New("unknown relation")
	ErrSelfEdge        = errors.New("source_id and target_id cannot be the same")
)

// Validate checks that e names two distinct endpoints and a known relation.
func (e Edge) Validate() error {
	if e.SourceID == "" {
		return ErrEmptySourceID
	}
	if e.TargetID == "" {
		return ErrEmptyTargetID
	}
	if _, ok := cooccurrence[e.Relation]; !ok && e.Relation != Cites {
		return ErrUnknownRelation
	}
	if e.SourceID == e.TargetID {
		return ErrSelfEdge
	}
	return nil
}

// ParseRelation maps a relation name onto a Relation.
func ParseRelation(s string) (Relation, bool) {
	r := Relation(s)
	if _, ok := cooccurrence[r]; ok || r == Cites {
		return r, true
	}
	return "", false
}

// Edges returns the edge list of relation rel.
func (ix *Index) Edges(rel Relation) []Edge {
	if rel == Cites {
		return ix.CitationEdges()
	}
	k, ok := cooccurrence[rel]
	if !ok {
		return nil
	}
	return ix.cooccurrenceEdges(k, rel)
}

// CitationEdges links every document to the identifiers of its references.
func (ix *Index) CitationEdges() []Edge {
	var edges []Edge
	refs := ix.tables[References]
	for i, m := range ix.members {
		for _, name := range m[References] {
			j := ix.names[References][name]
			edges = append(edges, Edge{
				SourceID: ix.docs[i].ID,
				TargetID: refs[j].ID,
				Relation: Cites,
				Weight:   1,
			})
		}
	}
	return edges
}

// cooccurrenceEdges pairs the entities of kind k that share a document.
// Each unordered pair appears once with the lower table position as the
// source; the weight is the number of shared documents.
func (ix *Index) cooccurrenceEdges(k Kind, rel Relation) []Edge {
	type pair struct{ a, b int }
	weights := make(map[pair]int)
	for _, m := range ix.members {
		pos := make([]int, 0, len(m[k]))
		for _, name := range m[k] {
			pos = append(pos, ix.names[k][name])
		}
		sort.Ints(pos)
		for i := 0; i < len(pos); i++ {
			for j := i + 1; j < len(pos); j++ {
				weights[pair{pos[i], pos[j]}]++
			}
		}
	}

	pairs := make([]pair, 0, len(weights))
	for p := range weights {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	entities := ix.tables[k]
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{
			SourceID: entities[p.a].ID,
			TargetID: entities[p.b].ID,
			Relation: rel,
			Weight:   weights[p],
		}
	}
	return edges
}
