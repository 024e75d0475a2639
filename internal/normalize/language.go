package normalize

import (
	"strings"

	"github.com/matsen/bibscope/internal/record"
)

// languageNames covers the ISO 639-2 bibliographic codes used by MEDLINE
// and the ISO 639-1 codes used by OpenAlex.
var languageNames = map[string]string{
	"afr": "Afrikaans", "alb": "Albanian", "amh": "Amharic", "ara": "Arabic", "arm": "Armenian",
	"aze": "Azerbaijani", "bos": "Bosnian", "bul": "Bulgarian", "cat": "Catalan", "chi": "Chinese",
	"cze": "Czech", "dan": "Danish", "dut": "Dutch", "eng": "English", "epo": "Esperanto",
	"est": "Estonian", "fin": "Finnish", "fre": "French", "geo": "Georgian", "ger": "German",
	"gla": "Scottish Gaelic", "gre": "Greek, Modern", "heb": "Hebrew", "hin": "Hindi",
	"hrv": "Croatian", "hun": "Hungarian", "ice": "Icelandic", "ind": "Indonesian", "ita": "Italian",
	"jpn": "Japanese", "kin": "Kinyarwanda", "kor": "Korean", "lat": "Latin", "lav": "Latvian",
	"lit": "Lithuanian", "mac": "Macedonian", "mal": "Malayalam", "mao": "Maori", "may": "Malay",
	"mul": "Multiple languages", "nor": "Norwegian", "per": "Persian, Iranian", "pol": "Polish",
	"por": "Portuguese", "pus": "Pushto", "rum": "Romanian, Rumanian, Moldovan", "rus": "Russian",
	"san": "Sanskrit", "slo": "Slovak", "slv": "Slovenian", "spa": "Spanish", "srp": "Serbian",
	"swe": "Swedish", "tha": "Thai", "tur": "Turkish", "ukr": "Ukrainian", "und": "Undetermined",
	"vie": "Vietnamese", "wel": "Welsh",

	"af": "Afrikaans", "sq": "Albanian", "am": "Amharic", "ar": "Arabic", "hy": "Armenian",
	"az": "Azerbaijani", "bs": "Bosnian", "bg": "Bulgarian", "ca": "Catalan", "zh": "Chinese",
	"cs": "Czech", "da": "Danish", "nl": "Dutch", "en": "English", "eo": "Esperanto",
	"et": "Estonian", "fi": "Finnish", "fr": "French", "ka": "Georgian", "de": "German",
	"gd": "Scottish Gaelic", "el": "Greek, Modern", "he": "Hebrew", "hi": "Hindi",
	"hr": "Croatian", "hu": "Hungarian", "is": "Icelandic", "id": "Indonesian", "it": "Italian",
	"ja": "Japanese", "rw": "Kinyarwanda", "ko": "Korean", "la": "Latin", "lv": "Latvian",
	"lt": "Lithuanian", "mk": "Macedonian", "ml": "Malayalam", "mi": "Maori", "ms": "Malay",
	"no": "Norwegian", "fa": "Persian, Iranian", "pl": "Polish", "pt": "Portuguese", "ps": "Pushto",
	"ro": "Romanian, Rumanian, Moldovan", "ru": "Russian", "sa": "Sanskrit", "sk": "Slovak",
	"sl": "Slovenian", "es": "Spanish", "sr": "Serbian", "sv": "Swedish", "th": "Thai",
	"tr": "Turkish", "uk": "Ukrainian", "vi": "Vietnamese", "cy": "Welsh",
}

// Language returns the language name for an ISO code, or the code itself
// when it is not in the table.
func Language(code string) string {
	if record.IsUnknown(code) {
		return record.Unknown
	}
	code = strings.TrimSpace(code)
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
