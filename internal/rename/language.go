package rename

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the fixed subtitle languages. Code is the ISO 639-1
// code written into subtitle filenames.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (l Language) String() string {
	return l.Name
}

// IsZero reports whether l is the unset language
func (l Language) IsZero() bool {
	return l.Code == ""
}

var languages = []Language{
	{"Arabic", "ar"},
	{"Chinese", "zh"},
	{"Czech", "cs"},
	{"Danish", "da"},
	{"Dutch", "nl"},
	{"English", "en"},
	{"French", "fr"},
	{"German", "de"},
	{"Greek", "el"},
	{"Hebrew", "he"},
	{"Hindi", "hi"},
	{"Icelandic", "is"},
	{"Indonesian", "id"},
	{"Irish", "ga"},
	{"Italian", "it"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
	{"Latin", "la"},
	{"Norwegian", "no"},
	{"Persian", "fa"},
	{"Polish", "pl"},
	{"Portuguese", "pt"},
	{"Russian", "ru"},
	{"Spanish", "es"},
	{"Swedish", "sv"},
	{"Tagalog", "tl"},
	{"Tahitian", "ty"},
	{"Thai", "th"},
	{"Turkish", "tr"},
}

// English is the default subtitle language.
var English = Language{"English", "en"}

var (
	byCode map[string]Language
	byName map[string]Language
)

func init() {
	byCode = make(map[string]Language, len(languages))
	byName = make(map[string]Language, len(languages))
	for _, l := range languages {
		byCode[l.Code] = l
		byName[strings.ToLower(l.Name)] = l
	}
}

// Languages returns the supported languages in display order
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage resolves an ISO 639-1 code, an ISO 639-2 code or an
// English language name to a supported Language.
func LookupLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Language{}, false
	}
	if l, ok := byCode[s]; ok {
		return l, true
	}
	if l, ok := byName[s]; ok {
		return l, true
	}
	if len(s) != 3 {
		return Language{}, false
	}
	base, err := language.ParseBase(s)
	if err != nil {
		return Language{}, false
	}
	l, ok := byCode[base.String()]
	return l, ok
}

// subtitleQualifiers are release tags that sit next to the language code
// without naming one ("hi" is the hearing-impaired tag, not Hindi).
var subtitleQualifiers = map[string]bool{
	"hi":     true,
	"sdh":    true,
	"cc":     true,
	"forced": true,
}

// GuessLanguage looks at the last two name tokens before the extension,
// e.g. "sub.es.srt" or "Movie_eng_forced.srt", skipping qualifier tags.
// A bare two letter code only counts right before the extension or a
// qualifier, so title words like "It" are not read as languages.
func GuessLanguage(filename string, fallback Language) Language {
	base := strings.TrimSuffix(filename, FileExtension(filename))
	tokens := strings.FieldsFunc(base, func(r rune) bool {
		switch r {
		case '.', '_', '-', ' ', '[', ']', '(', ')':
			return true
		}
		return false
	})

	last := len(tokens) - 1
	for last >= 0 && subtitleQualifiers[strings.ToLower(tokens[last])] {
		last--
	}
	for i := last; i >= 0 && i >= last-1; i-- {
		if len(tokens[i]) == 2 && i != last {
			continue
		}
		if l, ok := LookupLanguage(tokens[i]); ok {
			return l
		}
	}
	return fallback
}

// ChooseSubtitles builds one SubtitleChoice per subtitle file with a guessed
// language.
func ChooseSubtitles(files []MediaFile, fallback Language) []SubtitleChoice {
	var out []SubtitleChoice
	for _, f := range files {
		if f.Kind != KindSubtitle {
			continue
		}
		out = append(out, SubtitleChoice{
			SourceFile: f.Name,
			Language:   GuessLanguage(f.Name, fallback),
		})
	}
	return out
}
