package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/matsen/bibscope/internal/record"
)

var yearInText = regexp.MustCompile(`\b(1[5-9]\d\d|20\d\d)\b`)

// Year derives a four-digit year from the first candidate that yields one.
// A candidate starting with four digits is truncated; otherwise it is parsed
// as a date, and as a last resort a plausible year is searched in the text.
func Year(candidates ...string) string {
	for _, c := range candidates {
		if y, ok := yearOf(c); ok {
			return y
		}
	}
	return record.Unknown
}

func yearOf(v string) (string, bool) {
	if record.IsUnknown(v) {
		return "", false
	}
	v = strings.TrimSpace(v)
	if len(v) >= 4 && allDigits(v[:4]) {
		return v[:4], true
	}
	if t, err := dateparse.ParseAny(v); err == nil && t.Year() > 0 {
		return strconv.Itoa(t.Year()), true
	}
	if m := yearInText.FindString(v); m != "" {
		return m, true
	}
	return "", false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
