package affiliation

import (
	"strings"
	"unicode"
)

// nameKey reduces a personal name to lower-case surname plus first initial
// so "Smith, John", "Smith J." and "John Smith" compare equal.
func nameKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var surname, given string
	if i := strings.Index(name, ","); i >= 0 {
		surname = name[:i]
		given = name[i+1:]
	} else {
		fields := strings.Fields(name)
		if len(fields) == 1 {
			return letters(fields[0])
		}
		last := fields[len(fields)-1]
		if looksLikeInitials(last) {
			surname = strings.Join(fields[:len(fields)-1], " ")
			given = last
		} else {
			surname = last
			given = fields[0]
		}
	}

	key := letters(surname)
	if g := letters(given); g != "" {
		key += " " + string([]rune(g)[0])
	}
	return key
}

// looksLikeInitials matches "J.", "JA", "J.-P." and similar.
func looksLikeInitials(s string) bool {
	n := 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			n++
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return n > 0 && n <= 3
}

func letters(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findAuthor returns the index of the first free author matching name.
func findAuthor(s *State, name string) int {
	key := nameKey(name)
	if key == "" {
		return -1
	}
	for i, a := range s.Authors {
		if s.AuthorFree(i) && nameKey(a) == key {
			return i
		}
	}
	return -1
}
