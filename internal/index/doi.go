package index

import "strings"

const doiChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ./-_:"

// CleanDOI keeps the leading run of characters valid in a DOI and drops
// everything from the first other character on.
func CleanDOI(doi string) string {
	if i := strings.IndexFunc(doi, func(r rune) bool { return !strings.ContainsRune(doiChars, r) }); i >= 0 {
		return doi[:i]
	}
	return doi
}
