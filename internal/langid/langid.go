package langid

import "strings"

// Language is a canonical two-letter subtitle language code.
type Language string

// Supported languages. Auto means "detect from content".
const (
	Auto     Language = "auto"
	Chinese  Language = "zh"
	English  Language = "en"
	Korean   Language = "ko"
	Japanese Language = "ja"
)

type entry struct {
	lang    Language
	code3   string   // ISO 639-2 primary
	alt3    string   // ISO 639-2 alternate (e.g. "chi" vs "zho")
	display string   // Human-readable name
	words   []string // Full word forms
}

var languages = []entry{
	{Chinese, "zho", "chi", "Chinese", []string{"chinese"}},
	{English, "eng", "", "English", []string{"english"}},
	{Korean, "kor", "", "Korean", []string{"korean"}},
	{Japanese, "jpn", "", "Japanese", []string{"japanese"}},
}

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		byCode[string(e.lang)] = e
		byCode[e.code3] = e
		if e.alt3 != "" {
			byCode[e.alt3] = e
		}
		for _, w := range e.words {
			byCode[w] = e
		}
	}
}

// Parse converts a user-supplied language value to a Language. It accepts
// "auto", two-letter codes, ISO 639-2 codes, and full word forms. The second
// return value reports whether the input was recognized.
func Parse(value string) (Language, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == string(Auto) {
		return Auto, value != ""
	}
	if e, ok := byCode[value]; ok {
		return e.lang, true
	}
	return Auto, false
}

// DisplayName returns a human-readable name for a language code.
func (l Language) DisplayName() string {
	if e, ok := byCode[string(l)]; ok {
		return e.display
	}
	if l == Auto {
		return "Auto"
	}
	return strings.ToUpper(string(l))
}

// ISO3 returns the primary ISO 639-2 code, or "und" for unrecognized values.
func (l Language) ISO3() string {
	if e, ok := byCode[string(l)]; ok {
		return e.code3
	}
	return "und"
}
