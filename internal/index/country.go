package index

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/biter777/countries"
)

// countryNames fixes the display name of countries whose ISO short name
// differs from the name used in reports.
var countryNames = map[string]string{
	"USA": "United States of America",
	"GBR": "United Kingdom",
	"CHN": "China",
	"KOR": "South Korea",
	"PRK": "North Korea",
	"RUS": "Russia",
	"IRN": "Iran",
	"TWN": "Taiwan",
	"VNM": "Vietnam",
	"NLD": "Netherlands",
	"CZE": "Czechia",
	"TUR": "Turkey",
	"TZA": "Tanzania",
	"BOL": "Bolivia",
	"VEN": "Venezuela",
	"SYR": "Syria",
	"LAO": "Laos",
	"MDA": "Moldova",
	"MKD": "North Macedonia",
	"COD": "Democratic Republic of the Congo",
	"COG": "Congo",
	"CIV": "Cote d'Ivoire",
	"PSE": "Palestine",
	"BRN": "Brunei",
	"FSM": "Micronesia",
}

// countryAliases maps spellings found in export address lines to ISO
// alpha-3 codes.
var countryAliases = map[string]string{
	"usa":                        "USA",
	"u.s.a":                      "USA",
	"united states":              "USA",
	"united states of america":   "USA",
	"us":                         "USA",
	"uk":                         "GBR",
	"u.k":                        "GBR",
	"england":                    "GBR",
	"scotland":                   "GBR",
	"wales":                      "GBR",
	"north ireland":              "GBR",
	"northern ireland":           "GBR",
	"great britain":              "GBR",
	"peoples r china":            "CHN",
	"people's republic of china": "CHN",
	"pr china":                   "CHN",
	"p.r. china":                 "CHN",
	"korea":                      "KOR",
	"republic of korea":          "KOR",
	"rep of korea":               "KOR",
	"dem people's rep korea":     "PRK",
	"russian federation":         "RUS",
	"viet nam":                   "VNM",
	"czech republic":             "CZE",
	"ivory coast":                "CIV",
	"cote ivoire":                "CIV",
	"macedonia":                  "MKD",
	"turkiye":                    "TUR",
	"türkiye":                    "TUR",
	"u arab emirates":            "ARE",
	"uae":                        "ARE",
	"dem rep congo":              "COD",
	"rep congo":                  "COG",
	"swaziland":                  "SWZ",
	"cape verde":                 "CPV",
	"bosnia & herceg":            "BIH",
	"bosnia & herzegovina":       "BIH",
	"trinid & tobago":            "TTO",
	"papua n guinea":             "PNG",
	"vatican":                    "VAT",
	"east timor":                 "TLS",
	"palestinian territory":      "PSE",
}

// usStates are trailing tokens of US addresses that carry no country name,
// such as "Boston, MA 02115".
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true,
	"DE": true, "FL": true, "GA": true, "HI": true, "ID": true, "IL": true, "IN": true,
	"IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true, "MA": true,
	"MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true, "NV": true,
	"NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true, "WI": true,
	"WY": true, "DC": true,
}

var (
	countryByName   = make(map[string]string)
	countryByAlpha3 = make(map[string]string)
	countryByAlpha2 = make(map[string]string)
	// countryNamesByLength holds lower-cased names and aliases, longest
	// first, for scanning free text.
	countryNamesByLength []string
	postalCode           = regexp.MustCompile(`\b[0-9][0-9A-Z-]{2,}\b`)
)

func init() {
	for _, c := range countries.All() {
		a2, a3 := c.Alpha2(), c.Alpha3()
		if len(a2) != 2 || len(a3) != 3 {
			continue
		}
		name := countryName(c)
		countryByName[strings.ToLower(name)] = name
		countryByName[strings.ToLower(c.String())] = name
		countryByAlpha3[a3] = name
		countryByAlpha2[a2] = name
	}
	for alias, code := range countryAliases {
		if name, ok := countryByAlpha3[code]; ok {
			countryByName[alias] = name
		}
	}
	for k := range countryByName {
		if len(k) > 3 {
			countryNamesByLength = append(countryNamesByLength, k)
		}
	}
	sort.Slice(countryNamesByLength, func(i, j int) bool {
		a, b := countryNamesByLength[i], countryNamesByLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

func countryName(c countries.CountryCode) string {
	if name, ok := countryNames[c.Alpha3()]; ok {
		return name
	}
	return c.String()
}

// Country returns the country named in an affiliation fragment, or ""
// when none is recognized. The last comma-separated segment is tried first
// as a name, alias or ISO code; the whole fragment is then scanned for
// the longest country name it contains.
func Country(fragment string) string {
	fragment = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(fragment), "."))
	if fragment == "" {
		return ""
	}
	segments := strings.Split(fragment, ",")
	last := strings.TrimSpace(segments[len(segments)-1])
	if c := countryToken(last); c != "" {
		return c
	}

	words := strings.Fields(postalCode.ReplaceAllString(last, " "))
	for i := len(words) - 1; i >= 0; i-- {
		w := strings.Trim(words[i], ".;()")
		if c, ok := countryByAlpha3[w]; ok && w == strings.ToUpper(w) {
			return c
		}
		if c, ok := countryByName[strings.ToLower(w)]; ok {
			return c
		}
		if usStates[w] && i == len(words)-1 && len(segments) > 1 {
			return "United States of America"
		}
	}
	return scanCountry(strings.ToLower(fragment))
}

func countryToken(s string) string {
	s = strings.TrimSpace(strings.Trim(s, ".;()"))
	if c, ok := countryByName[strings.ToLower(s)]; ok {
		return c
	}
	if len(s) == 3 && s == strings.ToUpper(s) {
		if c, ok := countryByAlpha3[s]; ok {
			return c
		}
	}
	if len(s) == 2 && s == strings.ToUpper(s) && !usStates[s] {
		if c, ok := countryByAlpha2[s]; ok {
			return c
		}
	}
	return ""
}

func scanCountry(text string) string {
	for _, name := range countryNamesByLength {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], name)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(name)
			if wordBoundaryBefore(text, start) && wordBoundaryAfter(text, end) {
				return countryByName[name]
			}
			from = end
		}
	}
	return ""
}

func wordBoundaryBefore(text string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r == utf8.RuneError || !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func wordBoundaryAfter(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return r == utf8.RuneError || !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
