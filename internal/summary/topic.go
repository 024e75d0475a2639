package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/matsen/bibscope/internal/record"
)

// Outlier is the topic id a topic model assigns to unclustered documents.
const Outlier = -1

// Assignment is the topic a model gives one document.
type Assignment struct {
	Topic       int     `json:"topic"`
	Probability float64 `json:"probability"`
}

// TopicModeler clusters texts into topics. Implementations wrap an external
// embedding and clustering service.
type TopicModeler interface {
	Topics(ctx context.Context, docs []string) ([]Assignment, error)
}

// Topic is a group of documents sharing a topic id.
type Topic struct {
	ID        int    `json:"id"`
	Label     string `json:"label,omitempty"`
	Documents []int  `json:"documents"`
}

// AssignTopics runs m over the corpus of t and returns one assignment per
// row.
func AssignTopics(ctx context.Context, m TopicModeler, t *record.Table) ([]Assignment, error) {
	corpus := Corpus(t)
	out, err := m.Topics(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("modeling topics: %w", err)
	}
	if len(out) != len(corpus) {
		return nil, fmt.Errorf("%w: %d assignments for %d documents", ErrInvalidResponse, len(out), len(corpus))
	}
	return out, nil
}

// GroupTopics collects the rows of each topic, ordered by topic id. The
// outlier topic is left out.
func GroupTopics(assignments []Assignment) []Topic {
	byID := make(map[int][]int)
	for i, a := range assignments {
		if a.Topic == Outlier {
			continue
		}
		byID[a.Topic] = append(byID[a.Topic], i)
	}
	out := make([]Topic, 0, len(byID))
	for id, docs := range byID {
		out = append(out, Topic{ID: id, Documents: docs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LabelTopics asks c for a label for each topic, using at most sample
// titles per topic.
func LabelTopics(ctx context.Context, c Completer, t *record.Table, topics []Topic, sample int) error {
	for i := range topics {
		var titles []string
		for _, row := range topics[i].Documents {
			if sample > 0 && len(titles) == sample {
				break
			}
			if v := t.Value(row, "title"); !record.IsUnknown(v) {
				titles = append(titles, v)
			}
		}
		if len(titles) == 0 {
			continue
		}
		label, err := c.Complete(ctx, TopicPrompt(titles))
		if err != nil {
			return fmt.Errorf("labeling topic %d: %w", topics[i].ID, err)
		}
		topics[i].Label = label
	}
	return nil
}
