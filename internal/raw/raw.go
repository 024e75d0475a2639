// Package raw holds the format-specific field tables that readers produce
// before normalization.
package raw

import "github.com/matsen/bibscope/internal/record"

// DocStart is the synthetic tag emitted at every entry boundary.
const DocStart = "doc_start"

// Field is one tag/value pair in source order.
type Field struct {
	Tag   string
	Value string
}

// Record is the ordered field list of one bibliographic entry. A tag may
// occur more than once.
type Record struct {
	Fields []Field
}

// Add appends a field.
func (r *Record) Add(tag, value string) {
	r.Fields = append(r.Fields, Field{Tag: tag, Value: value})
}

// Get returns the first value of tag, or record.Unknown.
func (r Record) Get(tag string) string {
	for _, f := range r.Fields {
		if f.Tag == tag {
			if record.IsUnknown(f.Value) {
				return record.Unknown
			}
			return f.Value
		}
	}
	return record.Unknown
}

// Values returns every value of tag in source order.
func (r Record) Values(tag string) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// Tags returns the distinct tags in first-seen order.
func (r Record) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Fields {
		if !seen[f.Tag] {
			seen[f.Tag] = true
			out = append(out, f.Tag)
		}
	}
	return out
}

// Table is the raw field table of one export file.
type Table struct {
	Records []Record
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.Records) }

// Tags returns the union of tags over all entries in first-seen order. Every
// entry reads record.Unknown for tags it does not carry.
func (t *Table) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		for _, tag := range r.Tags() {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}

// Value returns the first value of tag in entry i.
func (t *Table) Value(i int, tag string) string {
	return t.Records[i].Get(tag)
}

// Segment splits a flat field stream into entries at DocStart markers.
// Fields before the first marker belong to no entry and are dropped.
func Segment(fields []Field) *Table {
	t := &Table{}
	cur := -1
	for _, f := range fields {
		if f.Tag == DocStart {
			t.Records = append(t.Records, Record{})
			cur = len(t.Records) - 1
			continue
		}
		if cur < 0 {
			continue
		}
		t.Records[cur].Add(f.Tag, f.Value)
	}
	return t
}
