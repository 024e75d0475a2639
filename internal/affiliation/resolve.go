package affiliation

import (
	"regexp"
	"strings"

	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/refsplit"
)

const correspondingPrefix = "Corresponding Author "

var (
	scopusPipeline     = Pipeline{CorrespondingRule{}, PositionalRule{}}
	pubmedPipeline     = Pipeline{IndexPairRule{}}
	wosPipeline        = Pipeline{BracketedRule{}, CorrespondingRule{}, PositionalRule{}}
	dimensionsPipeline = Pipeline{ParentheticalRule{}, PositionalRule{}}
	openAlexPipeline   = Pipeline{CorrespondingRule{}, IndexPairRule{}}
)

// WithCorrespondingPrefix prepends the "Corresponding Author" marker unless
// the text already carries it.
func WithCorrespondingPrefix(text string) string {
	if record.IsUnknown(text) {
		return record.Unknown
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(text), strings.ToLower(correspondingPrefix)) {
		return text
	}
	return correspondingPrefix + text
}

// Scopus resolves a Scopus record: corresponding authors first, then the
// remaining ";"-separated fragments in author order.
func Scopus(authors, affiliations, corresponding string) Result {
	a := refsplit.Authors(authors)
	if len(a) == 0 {
		return Result{}
	}
	s := NewState(a, refsplit.Affiliations(affiliations), WithCorrespondingPrefix(corresponding))
	return scopusPipeline.Resolve(s)
}

// PubMed pairs authors and AD fragments by position.
func PubMed(authors, affiliations string) Result {
	a := refsplit.Authors(authors)
	f := refsplit.Affiliations(affiliations)
	if len(a) == 0 && len(f) == 0 {
		return Result{}
	}
	return pubmedPipeline.Resolve(NewState(a, f, ""))
}

// Dimensions resolves "Name (Address)" fragments.
func Dimensions(authors, affiliations string) Result {
	a := refsplit.Authors(authors)
	if len(a) == 0 {
		return Result{}
	}
	return dimensionsPipeline.Resolve(NewState(a, refsplit.Affiliations(affiliations), ""))
}

// OpenAlex pairs authors with the fragment at the same position, after the
// corresponding author. Empty positions mean no affiliation.
func OpenAlex(authors, affiliations, corresponding string) Result {
	a := refsplit.Authors(authors)
	if len(a) == 0 {
		return Result{}
	}
	var f []string
	if !record.IsUnknown(affiliations) {
		f = strings.Split(affiliations, record.ListSep)
	}
	s := NewState(a, f, WithCorrespondingPrefix(corresponding))
	return openAlexPipeline.Resolve(s)
}

var reprintPattern = regexp.MustCompile(`(?i)^(.*?)\s*\(corresponding author\),?\s*(.*)$`)

// ReprintCorrespondence rewrites a WoS RP value into the
// "Corresponding Author <name>; <address>" form. Only the first reprint
// author is used.
func ReprintCorrespondence(rp string) string {
	if record.IsUnknown(rp) {
		return ""
	}
	m := reprintPattern.FindStringSubmatch(strings.TrimSpace(rp))
	if m == nil {
		return ""
	}
	address := m[2]
	if i := strings.Index(address, ";"); i >= 0 {
		address = address[:i]
	}
	address = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(address), "."))
	name := strings.TrimSpace(m[1])
	if name == "" || address == "" {
		return ""
	}
	return correspondingPrefix + name + "; " + address
}

// WoS resolves a Web of Science record from its C1 blocks and the RP
// reprint address. It also returns the blocks for the rewritten
// affiliation_ column.
func WoS(authors, c1, reprint string, policy EscapePolicy) (Result, []string) {
	if record.IsUnknown(c1) {
		return Result{}, nil
	}
	blocks := WoSBlocks(c1, policy)
	a := refsplit.Authors(authors)
	if len(a) == 0 {
		return Result{}, blocks
	}
	s := NewState(a, blocks, ReprintCorrespondence(reprint))
	return wosPipeline.Resolve(s), blocks
}

// JoinBlocks serializes WoS blocks for the affiliation_ column. Semicolons
// inside a block become commas so the list separator stays unambiguous.
func JoinBlocks(blocks []string) string {
	if len(blocks) == 0 {
		return record.Unknown
	}
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = strings.ReplaceAll(b, ";", ",")
	}
	return strings.Join(out, record.ListSep)
}
