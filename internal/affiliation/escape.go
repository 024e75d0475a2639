package affiliation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoPlaceholder is returned when every placeholder candidate already
// occurs in the text.
var ErrNoPlaceholder = errors.New("no placeholder candidate is absent from the text")

// EscapePolicy lists the placeholders that may stand in for protected
// periods, in order of preference.
type EscapePolicy struct {
	Candidates []string
}

// DefaultEscapePolicy prefers private-use code points, which never occur in
// exported bibliographic text.
var DefaultEscapePolicy = EscapePolicy{
	Candidates: []string{"\uE000", "\uE001", "\uE002", "#", "@@"},
}

// Placeholder returns the first candidate that does not occur in text.
func (p EscapePolicy) Placeholder(text string) (string, error) {
	for _, c := range p.Candidates {
		if c != "" && !strings.Contains(text, c) {
			return c, nil
		}
	}
	return "", ErrNoPlaceholder
}

var correspondingMarker = regexp.MustCompile(`(?i)^.*?\(Corresponding Author\),\s*`)

// WoSBlocks splits a Web of Science C1 value into per-address blocks. The
// value is split on periods, except periods closing a single-letter
// abbreviation such as "U.S." or "J." or an address word such as "St.",
// which are protected with a placeholder from policy. Such a period still splits when it ends the
// value or precedes a bracketed author list. The corresponding-author
// marker is removed from the first block.
func WoSBlocks(c1 string, policy EscapePolicy) []string {
	c1 = strings.TrimSpace(c1)
	if c1 == "" {
		return nil
	}

	ph, err := policy.Placeholder(c1)
	text := c1
	if err == nil {
		text = protectAbbreviations(c1, ph)
	}

	var blocks []string
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(blocks) == 0 {
			part = strings.TrimSpace(correspondingMarker.ReplaceAllString(part, ""))
		}
		if ph != "" {
			part = strings.ReplaceAll(part, ph, ".")
		}
		if part != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

// addressAbbreviations are words that never end a Web of Science address,
// so a period after one belongs to a name such as "St. Jude".
var addressAbbreviations = map[string]bool{
	"St":   true,
	"Ste":  true,
	"Mt":   true,
	"Ft":   true,
	"Dr":   true,
	"Prof": true,
	"Dept": true,
}

func protectAbbreviations(text, ph string) string {
	var b strings.Builder
	var prev, prevPrev rune
	wordStart := 0
	for i, r := range text {
		if r == '.' && !blockEnds(text[i+1:]) && (isInitial(prev, prevPrev) || unicode.IsLetter(prev) && addressAbbreviations[text[wordStart:i]]) {
			b.WriteString(ph)
		} else {
			b.WriteRune(r)
		}
		if unicode.IsLetter(r) && !unicode.IsLetter(prev) {
			wordStart = i
		}
		prevPrev, prev = prev, r
	}
	return b.String()
}

func isInitial(prev, prevPrev rune) bool {
	return unicode.IsUpper(prev) && !unicode.IsLetter(prevPrev)
}

// blockEnds reports whether rest, the text after a period, starts a new
// block: nothing but space is left, or a bracketed author list follows.
func blockEnds(rest string) bool {
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	if len(trimmed) == len(rest) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return r == '['
}
