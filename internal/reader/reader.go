// Package reader parses citation-database exports into raw field tables.
//
// Each reader understands one export syntax. Readers do not rename fields
// into the canonical vocabulary beyond what the export layout requires; that
// is the job of the normalize package.
package reader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/textio"
)

// ParseError describes malformed input, positioned when a line is known.
type ParseError struct {
	Format  string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Message)
}

func noEntries(format string) error {
	return &ParseError{Format: format, Message: "no entries found"}
}

// readLines loads path as text and splits it into lines.
func readLines(path string) ([]string, error) {
	text, err := textio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return textio.Lines(text), nil
}

var validKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-. \x{a0}]{0,40}$`)

// taggedSyntax configures parseTagged for one line-oriented export.
type taggedSyntax struct {
	// isStart reports whether line begins a new entry.
	isStart func(line string) bool
	// onStart fields are added right after each doc_start marker.
	onStart []raw.Field
	// bibtex strips braces and trailing commas and lets indented lines
	// without a key continue the previous value.
	bibtex bool
}

// parseTagged turns "key=value" lines into a field stream with doc_start
// markers and segments it into entries. Keys are lower-cased.
func parseTagged(lines []string, syn taggedSyntax) *raw.Table {
	var fields []raw.Field
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if syn.isStart(line) {
			fields = append(fields, raw.Field{Tag: raw.DocStart, Value: raw.DocStart})
			fields = append(fields, syn.onStart...)
		}

		if idx := strings.Index(line, "="); idx > 0 && validKey.MatchString(strings.TrimSpace(line[:idx])) {
			key := strings.ToLower(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[idx+1:])
			if syn.bibtex {
				value = cleanBibValue(value)
			}
			fields = append(fields, raw.Field{Tag: key, Value: value})
			continue
		}

		if syn.bibtex && strings.HasPrefix(line, " ") && len(fields) > 0 {
			last := &fields[len(fields)-1]
			if last.Tag == raw.DocStart {
				continue
			}
			if v := cleanBibValue(strings.TrimSpace(line)); v != "" {
				last.Value += " " + v
			}
		}
	}
	return raw.Segment(fields)
}

func cleanBibValue(v string) string {
	v = strings.ReplaceAll(v, "{", "")
	v = strings.ReplaceAll(v, "}", "")
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, ",")
	return strings.TrimSpace(v)
}

// blankToUnknown maps empty cells to the sentinel.
func blankToUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return record.Unknown
	}
	return v
}

// joinAuthors rewrites a semicolon-separated author list with " and ".
func joinAuthors(v string) string {
	if record.IsUnknown(v) {
		return record.Unknown
	}
	var names []string
	for _, n := range strings.Split(v, ";") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return record.Unknown
	}
	return strings.Join(names, record.AuthorSep)
}
