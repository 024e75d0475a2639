package reader

import (
	"strings"

	"github.com/matsen/bibscope/internal/raw"
	"github.com/matsen/bibscope/internal/record"
)

// wosNameListTags hold one person per continuation line.
var wosNameListTags = map[string]bool{
	"AU": true, "AF": true, "BA": true, "BF": true, "ED": true,
}

// wosFileTags frame the file rather than a record.
var wosFileTags = map[string]bool{
	"FN": true, "VR": true, "EF": true,
}

// ReadWoS parses a Web of Science plaintext export.
func ReadWoS(path string) (*raw.Table, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	t := ParseWoS(lines)
	if t.Len() == 0 {
		return nil, noEntries("wos")
	}
	return t, nil
}

// isWoSTagLine reports whether line opens a field: two uppercase characters
// (the second may be a digit, as in C1 or J9) followed by a space.
func isWoSTagLine(line string) bool {
	if len(line) < 3 || line[2] != ' ' {
		return false
	}
	return isUpper(line[0]) && (isUpper(line[1]) || isDigit(line[1]))
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// PreprocessWoS folds continuation lines into their field and rewrites
// every field line to the fixed "TAG  value" layout. Continuations of CR
// are joined with ";" after their own semicolons become commas; name-list
// tags are joined with " and "; everything else is joined with a space.
func PreprocessWoS(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "   ") && len(out) > 0 {
			prev := &out[len(out)-1]
			cont := strings.TrimSpace(line)
			tag := ""
			if isWoSTagLine(*prev) {
				tag = (*prev)[:2]
			}
			switch {
			case tag == "CR":
				*prev += record.ListSep + strings.ReplaceAll(cont, ";", ",")
			case wosNameListTags[tag] && !startsWithAnd(cont):
				*prev += record.AuthorSep + cont
			default:
				*prev += " " + cont
			}
			continue
		}

		if isWoSTagLine(line) {
			tag := line[:2]
			value := strings.TrimSpace(line[3:])
			if tag == "CR" {
				value = strings.ReplaceAll(value, ";", ",")
			}
			out = append(out, tag+"  "+value)
			continue
		}

		out = append(out, strings.TrimRight(line, " "))
	}
	return out
}

func startsWithAnd(s string) bool {
	return len(s) >= 4 && strings.EqualFold(s[:4], "and ")
}

// ParseWoS segments WoS lines into entries. PT opens a record, ER closes
// it, and any field after ER opens the next one even without PT.
func ParseWoS(lines []string) *raw.Table {
	var fields []raw.Field
	open := false
	for _, line := range PreprocessWoS(lines) {
		if strings.TrimSpace(line) == "ER" {
			open = false
			continue
		}
		if !isWoSTagLine(line) {
			continue
		}
		tag := line[:2]
		if wosFileTags[tag] {
			continue
		}
		if tag == "PT" || !open {
			fields = append(fields,
				raw.Field{Tag: raw.DocStart, Value: raw.DocStart},
				raw.Field{Tag: "source", Value: "WoS"},
			)
			open = true
		}
		value := ""
		if len(line) > 4 {
			value = strings.TrimSpace(line[4:])
		}
		fields = append(fields, raw.Field{Tag: strings.ToLower(tag), Value: value})
	}
	return raw.Segment(fields)
}
