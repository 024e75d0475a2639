package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matsen/bibscope/internal/index"
	"github.com/segmentio/encoding/json"
)

// ReadEdges reads an edge list written by WriteEdges. Every edge is
// validated; the first invalid line aborts the read.
func ReadEdges(path string) ([]index.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening edges file: %w", err)
	}
	defer f.Close()

	var edges []index.Edge
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e index.Edge
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("invalid edge at line %d: %w", lineNum, err)
		}
		edges = append(edges, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edges file: %w", err)
	}
	return edges, nil
}

// EncodeEdges writes one edge per line.
func EncodeEdges(w io.Writer, edges []index.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding edge: %w", err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("writing edge: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return bw.Flush()
}

// WriteEdges replaces the content of path with edges.
func WriteEdges(path string, edges []index.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating edges file: %w", err)
	}
	defer f.Close()

	if err := EncodeEdges(f, edges); err != nil {
		return err
	}
	return f.Close()
}
