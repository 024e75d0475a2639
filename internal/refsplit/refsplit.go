// Package refsplit turns serialized list fields of canonical records back
// into their elements.
package refsplit

import (
	"regexp"
	"strings"

	"github.com/matsen/bibscope/internal/record"
)

var spaceRun = regexp.MustCompile(`\s+`)

type splitter func(string) []string

var referenceSplitters = map[string]splitter{
	"wos":      splitWoS,
	"openalex": splitOpenAlex,
}

// References splits a references value according to the database it came
// from. source is the canonical "source" column (Scopus, WoS, PubMed, ...).
func References(source, value string) []string {
	if record.IsUnknown(value) {
		return nil
	}
	if fn, ok := referenceSplitters[strings.ToLower(strings.TrimSpace(source))]; ok {
		return fn(value)
	}
	return split(value, record.ListSep)
}

// splitWoS handles CR values whose entries were joined with ";" and whose
// inner semicolons were turned into commas while reading.
func splitWoS(value string) []string {
	parts := split(value, record.ListSep)
	for i, p := range parts {
		parts[i] = spaceRun.ReplaceAllString(p, " ")
	}
	return parts
}

func splitOpenAlex(value string) []string {
	parts := split(value, record.ListSep)
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(p, "https://openalex.org/")
	}
	return parts
}

// Authors splits an author value joined with " and ".
func Authors(value string) []string {
	return split(value, record.AuthorSep)
}

// Keywords splits a keyword value joined with ";".
func Keywords(value string) []string {
	return split(value, record.ListSep)
}

// Affiliations splits an affiliation value joined with ";".
func Affiliations(value string) []string {
	return split(value, record.ListSep)
}

func split(value, sep string) []string {
	if record.IsUnknown(value) {
		return nil
	}
	var out []string
	for _, p := range strings.Split(value, sep) {
		p = strings.TrimSpace(p)
		if p == "" || p == record.Unknown {
			continue
		}
		out = append(out, p)
	}
	return out
}
