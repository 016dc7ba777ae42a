package readspeed

import (
	"strings"
	"unicode/utf8"

	"subfix/internal/langid"
)

// ContentType selects the reading-speed table for the target audience.
type ContentType string

// Supported content types.
const (
	Adult    ContentType = "adult"
	Children ContentType = "children"
)

// ParseContentType normalizes a user-supplied content type value.
func ParseContentType(value string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Adult):
		return Adult, value != ""
	case string(Children):
		return Children, true
	}
	return Adult, false
}

// CountLine counts a line under the given language's rule:
//
//	zh: every character counts 1 (plain rune length)
//	en: plain rune length of the trimmed line
//	ko: Hangul 1, ASCII letters/digits/spaces 0.5, everything else 1
//	ja: full-width characters 1, half-width (ASCII) characters 0.5
//
// Fractional totals truncate toward zero.
func CountLine(lang langid.Language, line string) int {
	switch lang {
	case langid.Korean:
		return countKorean(line)
	case langid.Japanese:
		return countJapanese(line)
	case langid.English:
		return utf8.RuneCountInString(strings.TrimSpace(line))
	default:
		return utf8.RuneCountInString(line)
	}
}

func countKorean(line string) int {
	var weight float64
	for _, r := range line {
		switch {
		case langid.Classify(r) == langid.ClassHangul:
			weight++
		case r < 0x80 && (isASCIIAlnum(r) || r == ' '):
			weight += 0.5
		default:
			weight++
		}
	}
	return int(weight)
}

func countJapanese(line string) int {
	var weight float64
	for _, r := range line {
		if r < 0x80 {
			weight += 0.5
		} else {
			weight++
		}
	}
	return int(weight)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// CharacterLimit returns the maximum characters per line for a language.
// SDH material gets a wider budget for Chinese and Japanese.
func CharacterLimit(lang langid.Language, sdhMode bool) int {
	switch lang {
	case langid.Chinese:
		if sdhMode {
			return 18
		}
		return 16
	case langid.Korean:
		return 16
	case langid.Japanese:
		if sdhMode {
			return 16
		}
		return 13
	default:
		return 42
	}
}

// SpeedLimit returns the maximum reading speed in characters per second for a
// language and content type. SDH mode overrides the Japanese limit for both
// content types.
func SpeedLimit(lang langid.Language, content ContentType, sdhMode bool) float64 {
	if lang == langid.Japanese {
		if sdhMode {
			return 7
		}
		return 4
	}
	if content == Children {
		switch lang {
		case langid.Chinese:
			return 7
		case langid.Korean:
			return 9
		default:
			return 17
		}
	}
	switch lang {
	case langid.Chinese:
		return 9
	case langid.Korean:
		return 12
	default:
		return 20
	}
}
