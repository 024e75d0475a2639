package normalize

import (
	"strings"

	"github.com/matsen/bibscope/internal/record"
)

// documentTypes folds database-specific document types onto a small shared
// vocabulary. Every target is a fixed point of the map.
var documentTypes = map[string]string{
	"Article; Early Access":                   "Article in Press",
	"Article; Proceedings Paper":              "Proceedings Paper",
	"Article; Discussion":                     "Article",
	"Article; Letter":                         "Article",
	"Article; Excerpt":                        "Article",
	"Article; Chronology":                     "Article",
	"Article; Correction":                     "Article",
	"Article; Correction, Addition":           "Article",
	"Article; Data Paper":                     "Article",
	"Art Exhibit Review":                      "Review",
	"Dance Performance Review":                "Review",
	"Music Performance Review":                "Review",
	"Music Score Review":                      "Review",
	"Film Review":                             "Review",
	"TV Review, Radio Review":                 "Review",
	"TV Review, Radio Review, Video":          "Review",
	"Theater Review, Video":                   "Review",
	"Database Review":                         "Review",
	"Record Review":                           "Review",
	"Software Review":                         "Review",
	"Hardware Review":                         "Review",
	"Clinical Study":                          "Article",
	"Clinical Trial":                          "Article",
	"Clinical Trial Protocol":                 "Article",
	"Clinical Trial, Phase I":                 "Article",
	"Clinical Trial, Phase II":                "Article",
	"Clinical Trial, Phase III":               "Article",
	"Clinical Trial, Phase IV":                "Article",
	"Clinical Trial, Veterinary":              "Article",
	"Comparative Study":                       "Article",
	"Controlled Clinical Trial":               "Article",
	"Corrected and Republished Article":       "Article",
	"Duplicate Publication":                   "Article",
	"Essay":                                   "Article",
	"Historical Article":                      "Article",
	"Journal Article":                         "Article",
	"Letter":                                  "Article",
	"Meta-Analysis":                           "Article",
	"Randomized Controlled Trial":             "Article",
	"Randomized Controlled Trial, Veterinary": "Article",
	"Research Support, N.I.H., Extramural":    "Article",
	"Research Support, N.I.H., Intramural":    "Article",
	"Research Support, Non-U.S. Gov't":        "Article",
	"Research Support, U.S. Gov't, Non-P.H.S.": "Article",
	"Research Support, U.S. Gov't, P.H.S.":     "Article",
	"Research Support, U.S. Government":        "Article",
	"Research Support, American Recovery and Reinvestment Act": "Article",
	"Technical Report":                        "Article",
	"Twin Study":                              "Article",
	"Validation Study":                        "Article",
	"Clinical Conference":                     "Conference Paper",
	"Congress":                                "Conference Paper",
	"Consensus Development Conference":        "Conference Paper",
	"Consensus Development Conference, NIH":   "Conference Paper",
	"Systematic Review":                       "Review",
	"Scientific Integrity Review":             "Review",
	"Editorial":                               "Editorial",
	"News":                                    "News",
	"Comment":                                 "Comment",
	"Published Erratum":                       "Erratum",
	"Retraction of Publication":               "Retraction",
}

// LowerCaseTypes maps the lower-case type vocabularies of Dimensions and
// OpenAlex onto the shared one.
var LowerCaseTypes = map[string]string{
	"article":             "Article",
	"review":              "Review",
	"peer-review":         "Review",
	"book-chapter":        "Book Chapter",
	"chapter":             "Book Chapter",
	"book":                "Book",
	"monograph":           "Book",
	"edited-book":         "Book",
	"proceeding":          "Conference Paper",
	"proceedings":         "Conference Paper",
	"proceedings-article": "Conference Paper",
	"preprint":            "Preprint",
	"posted-content":      "Preprint",
	"dissertation":        "Dissertation",
	"dataset":             "Data Paper",
	"editorial":           "Editorial",
	"letter":              "Article",
	"erratum":             "Erratum",
	"retraction":          "Retraction",
	"report":              "Report",
	"paratext":            "Other",
	"other":               "Other",
}

// DocumentType maps a raw document type. extra, when given, is consulted
// first with the lower-cased value. Unmapped types are returned trimmed.
func DocumentType(v string, extra map[string]string) string {
	if record.IsUnknown(v) {
		return record.Unknown
	}
	v = strings.TrimSpace(v)
	if extra != nil {
		if m, ok := extra[strings.ToLower(v)]; ok {
			v = m
		}
	}
	if m, ok := documentTypes[v]; ok {
		return m
	}
	return v
}
