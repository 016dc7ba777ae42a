package langid

import (
	"strings"
	"unicode"
)

// Class is the script class of a single character.
type Class int

// Script classes in detection precedence order.
const (
	ClassOther Class = iota
	ClassHan
	ClassHangul
	ClassKana
	ClassLatin
	ClassCJKPunct
)

// Classify assigns a character to a script class. Full-width forms
// (U+FF00-FFEF) and the CJK symbol block (U+3000-303F) classify as CJK
// punctuation so that they count as full-width units downstream.
func Classify(r rune) Class {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF:
		return ClassHan
	case r >= 0xAC00 && r <= 0xD7AF:
		return ClassHangul
	case r >= 0x3040 && r <= 0x30FF:
		return ClassKana
	case r >= 0x3000 && r <= 0x303F, r >= 0xFF00 && r <= 0xFFEF:
		return ClassCJKPunct
	case unicode.Is(unicode.Latin, r):
		return ClassLatin
	default:
		return ClassOther
	}
}

// Counts holds per-class character totals for a span of text.
type Counts struct {
	Han      int
	Hangul   int
	Kana     int
	Latin    int
	CJKPunct int
	Total    int // non-space characters
}

// Count tallies script classes across a string.
func Count(text string) Counts {
	var c Counts
	for _, r := range text {
		switch Classify(r) {
		case ClassHan:
			c.Han++
		case ClassHangul:
			c.Hangul++
		case ClassKana:
			c.Kana++
		case ClassLatin:
			c.Latin++
		case ClassCJKPunct:
			c.CJKPunct++
		}
		if !unicode.IsSpace(r) {
			c.Total++
		}
	}
	return c
}

// DetectLine infers the language of a single line. Kana presence wins
// outright, then Hangul, then Han, then Latin; a line with no script signal
// reports the fallback (normally the document language).
func DetectLine(line string, fallback Language) Language {
	c := Count(line)
	switch {
	case c.Kana > 0:
		return Japanese
	case c.Hangul > 0:
		return Korean
	case c.Han > 0:
		return Chinese
	case c.Latin > 0:
		return English
	default:
		return fallback
	}
}

// DetectText infers the dominant language of a multi-line span (a block or a
// whole document). Scores weight CJK scripts fully; Han contributes half
// weight to Japanese since Japanese prose mixes kanji with kana, and Latin is
// discounted when CJK characters make up a meaningful share of the text so
// that a bilingual block keeps its CJK language. Ties resolve in the same
// precedence order as DetectLine.
func DetectText(text string, fallback Language) Language {
	c := Count(text)
	if c.Total == 0 {
		return fallback
	}

	latinWeight := 1.0
	cjk := c.Han + c.Hangul + c.Kana
	if float64(cjk) >= 0.1*float64(c.Total) {
		latinWeight = 0.2
	}

	scores := []struct {
		lang  Language
		score float64
	}{
		{Japanese, float64(c.Kana) + 0.5*float64(c.Han)},
		{Korean, float64(c.Hangul)},
		{Chinese, float64(c.Han) + 0.2*float64(c.CJKPunct)},
		{English, float64(c.Latin) * latinWeight},
	}

	best := fallback
	bestScore := 0.0
	for _, s := range scores {
		if s.score > bestScore {
			best = s.lang
			bestScore = s.score
		}
	}
	return best
}

// DetectDocument infers the dominant language across every line of a
// document. English is the fallback for documents with no script signal.
func DetectDocument(lines []string) Language {
	return DetectText(strings.Join(lines, "\n"), English)
}
