// Package storage persists canonical tables as JSONL and maintains the
// SQLite query index rebuilt from them.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matsen/bibscope/internal/record"
	"github.com/segmentio/encoding/json"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// Records with long reference lists can exceed the scanner default.
const MaxJSONLLineCapacity = 16 * 1024 * 1024

// ReadRecords reads a canonical table from a JSONL file. A missing file
// yields an empty table.
func ReadRecords(path string) (*record.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return record.Empty(), nil
		}
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	t, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// DecodeRecords reads one JSON object per line. Keys outside the canonical
// columns are dropped.
func DecodeRecords(r io.Reader) (*record.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxJSONLLineCapacity)

	var rows []record.Record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var raw map[string]string
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		rec := make(record.Record, len(raw))
		for k, v := range raw {
			if record.IsColumn(k) {
				rec[k] = v
			}
		}
		rows = append(rows, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	return record.NewTable(record.Columns(), rows), nil
}

// EncodeRecords writes t as JSONL. Unknown fields are left out; reading
// the file back fills them in again.
func EncodeRecords(w io.Writer, t *record.Table) error {
	bw := bufio.NewWriter(w)
	for i, r := range t.Rows() {
		known := make(map[string]string, len(r))
		for k, v := range r {
			if v != record.Unknown {
				known[k] = v
			}
		}
		data, err := json.Marshal(known)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return bw.Flush()
}

// WriteRecords replaces the content of path with t. The file is written
// next to its destination and renamed into place.
func WriteRecords(path string, t *record.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".records-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeRecords(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing records file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing records file: %w", err)
	}
	return nil
}

// AppendRecords adds the rows of t to the end of path.
func AppendRecords(path string, t *record.Table) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening records file for append: %w", err)
	}
	defer f.Close()

	if err := EncodeRecords(f, t); err != nil {
		return err
	}
	return nil
}
