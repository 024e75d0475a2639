package reader

import (
	"regexp"
	"strings"

	"github.com/matsen/bibscope/internal/raw"
)

// pubmedTagLine matches "TAG - value" with the tag padded to four columns.
var pubmedTagLine = regexp.MustCompile(`^([A-Z][A-Z0-9]{1,3}) {0,3}-(?: (.*))?$`)

// pubmedMultiTags keep one entry per occurrence instead of being joined.
var pubmedMultiTags = map[string]bool{
	"FAU": true, "AD": true, "AU": true, "PT": true,
	"MH": true, "OT": true, "AUID": true, "LID": true, "AID": true, "IS": true,
}

const pubmedContinuation = "      "

// ReadPubMed parses a PubMed (MEDLINE) plaintext export.
func ReadPubMed(path string) (*raw.Table, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	t := ParsePubMed(lines)
	if t.Len() == 0 {
		return nil, noEntries("pubmed")
	}
	return t, nil
}

// PreprocessPubMed rewrites MEDLINE blocks into "TAG=value" lines.
// Continuation lines are joined to their field with a space. Multi-valued
// tags produce one line per occurrence; other tags repeated back to back
// are joined into one line. The " [doi]" suffix of LID is removed.
func PreprocessPubMed(lines []string) []string {
	var out []string
	var tag string
	var items []string

	flush := func() {
		if tag == "" || len(items) == 0 {
			return
		}
		if pubmedMultiTags[tag] {
			for _, it := range items {
				out = append(out, tag+"="+it)
			}
		} else {
			out = append(out, tag+"="+strings.Join(items, " "))
		}
		items = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := pubmedTagLine.FindStringSubmatch(line); m != nil {
			if m[1] != tag {
				flush()
				tag = m[1]
			}
			value := strings.TrimSpace(m[2])
			if tag == "LID" {
				value = strings.TrimSuffix(value, " [doi]")
			}
			items = append(items, value)
			continue
		}
		if strings.HasPrefix(line, pubmedContinuation) && len(items) > 0 {
			items[len(items)-1] += " " + strings.TrimSpace(line)
		}
	}
	flush()
	return out
}

// ParsePubMed segments MEDLINE lines into entries. Every entry starts at
// PMID and carries note=0 and source=PubMed.
func ParsePubMed(lines []string) *raw.Table {
	return parseTagged(PreprocessPubMed(lines), taggedSyntax{
		isStart: func(line string) bool { return strings.HasPrefix(line, "PMID=") },
		onStart: []raw.Field{
			{Tag: "note", Value: "0"},
			{Tag: "source", Value: "PubMed"},
		},
	})
}
