package record

import (
	"slices"
	"sync/atomic"
)

var lastVersion atomic.Uint64

// Table is an immutable snapshot of canonical records. Operations that change
// rows or columns return a new Table with a new version; derived indices keep
// the version they were built from.
type Table struct {
	version uint64
	columns []string
	rows    []Record
}

// NewTable builds a snapshot from columns and rows. Rows are copied, and any
// column missing from a row is filled with Unknown.
func NewTable(columns []string, rows []Record) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	out := make([]Record, len(rows))
	for i, r := range rows {
		c := r.Clone()
		for _, col := range cols {
			if _, ok := c[col]; !ok {
				c[col] = Unknown
			}
		}
		out[i] = c
	}
	return &Table{
		version: lastVersion.Add(1),
		columns: cols,
		rows:    out,
	}
}

// Empty returns a canonical table without rows.
func Empty() *Table {
	return NewTable(Columns(), nil)
}

// Version identifies the snapshot.
func (t *Table) Version() uint64 { return t.version }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column order of the snapshot.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the snapshot carries col.
func (t *Table) HasColumn(col string) bool {
	return slices.Contains(t.columns, col)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Record {
	return t.rows[i].Clone()
}

// Value returns the value at row i, column col, or Unknown.
func (t *Table) Value(i int, col string) string {
	return t.rows[i].Get(col)
}

// Column returns every value of col in row order.
func (t *Table) Column(col string) []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Get(col)
	}
	return out
}

// Rows returns copies of all rows.
func (t *Table) Rows() []Record {
	out := make([]Record, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Filter returns a snapshot with the rows for which keep returns true.
func (t *Table) Filter(keep func(i int, r Record) bool) *Table {
	var rows []Record
	for i, r := range t.rows {
		if keep(i, r) {
			rows = append(rows, r)
		}
	}
	return NewTable(t.columns, rows)
}

// Drop returns a snapshot without the rows flagged true. Flags shorter than
// the table keep the remaining rows.
func (t *Table) Drop(flags []bool) *Table {
	return t.Filter(func(i int, _ Record) bool {
		return i >= len(flags) || !flags[i]
	})
}

// Select returns a snapshot holding the given rows in the given order.
// Out-of-range indices are ignored.
func (t *Table) Select(indices []int) *Table {
	rows := make([]Record, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(t.rows) {
			rows = append(rows, t.rows[i])
		}
	}
	return NewTable(t.columns, rows)
}

// Concat returns a snapshot with the rows of t followed by the rows of
// other. Columns only present in other are appended to the column order.
func (t *Table) Concat(other *Table) *Table {
	cols := t.Columns()
	for _, c := range other.columns {
		if !slices.Contains(cols, c) {
			cols = append(cols, c)
		}
	}
	rows := make([]Record, 0, len(t.rows)+len(other.rows))
	rows = append(rows, t.rows...)
	rows = append(rows, other.rows...)
	return NewTable(cols, rows)
}

// Map returns a snapshot whose rows are fn applied to a copy of each row.
func (t *Table) Map(fn func(i int, r Record) Record) *Table {
	rows := make([]Record, len(t.rows))
	for i, r := range t.rows {
		rows[i] = fn(i, r.Clone())
	}
	return NewTable(t.columns, rows)
}

// Reorder returns a snapshot restricted to columns, in that order. Values of
// dropped columns are discarded and new columns are filled with Unknown.
func (t *Table) Reorder(columns []string) *Table {
	rows := make([]Record, len(t.rows))
	for i, r := range t.rows {
		n := make(Record, len(columns))
		for _, c := range columns {
			n[c] = r.Get(c)
		}
		rows[i] = n
	}
	return NewTable(columns, rows)
}
