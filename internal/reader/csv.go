package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

// rename maps a lower-cased export header to a canonical column.
type rename struct {
	from string
	to   string
}

// tabularLayout describes a spreadsheet-style export.
type tabularLayout struct {
	format  string
	renames []rename
	// authorColumns hold ";"-separated name lists rewritten with " and ".
	authorColumns []string
	// source is stored in the source column when the export has none.
	source string
}

// parseCSV reads all CSV rows from r.
func parseCSV(format string, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &ParseError{Format: format, Line: perr.Line, Message: perr.Err.Error()}
		}
		return nil, fmt.Errorf("reading %s csv: %w", format, err)
	}
	return rows, nil
}

// tableFromRows builds a raw table from a header row and data rows. The
// header is lower-cased and renamed, missing canonical columns are added
// with the sentinel and fields are stored in sorted column order.
func tableFromRows(rows [][]string, layout tabularLayout) (*raw.Table, error) {
	if len(rows) == 0 {
		return nil, noEntries(layout.format)
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(header))
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		header[i] = h
		present[h] = true
	}
	for _, rn := range layout.renames {
		if present[rn.to] || !present[rn.from] {
			continue
		}
		for i, h := range header {
			if h == rn.from {
				header[i] = rn.to
			}
		}
		delete(present, rn.from)
		present[rn.to] = true
	}
	present = make(map[string]bool, len(header))
	var columns []string
	for i, h := range header {
		header[i] = record.FoldKey(h)
		if header[i] != "" && !present[header[i]] {
			present[header[i]] = true
			columns = append(columns, header[i])
		}
	}
	for _, c := range record.Columns() {
		if !present[c] {
			columns = append(columns, c)
			present[c] = true
		}
	}
	sort.Strings(columns)

	authorCol := make(map[string]bool, len(layout.authorColumns))
	for _, c := range layout.authorColumns {
		authorCol[c] = true
	}

	t := &raw.Table{}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		values := make(map[string]string, len(columns))
		for i, h := range header {
			if h == "" || i >= len(row) {
				continue
			}
			if _, dup := values[h]; dup {
				continue
			}
			v := blankToUnknown(row[i])
			if authorCol[h] {
				v = joinAuthors(v)
			}
			values[h] = v
		}
		if layout.source != "" && record.IsUnknown(values["source"]) {
			values["source"] = layout.source
		}

		var rec raw.Record
		for _, c := range columns {
			v, ok := values[c]
			if !ok {
				v = record.Unknown
			}
			rec.Add(c, v)
		}
		t.Records = append(t.Records, rec)
	}

	if t.Len() == 0 {
		return nil, noEntries(layout.format)
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
