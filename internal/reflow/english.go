package reflow

import (
	"strings"

	"subfix/internal/langid"
)

const (
	englishSentenceEndings = ".!?"
	englishPunctuation     = ".,!?;:\"'()[]{}—–-"
)

var englishConjunctions = map[string]bool{
	"and": true, "but": true, "or": true, "nor": true,
	"for": true, "so": true, "yet": true, "because": true,
	"since": true, "although": true, "though": true, "while": true,
	"whereas": true, "however": true, "therefore": true,
	"moreover": true, "furthermore": true, "nevertheless": true,
	"nonetheless": true,
}

var englishPrepositions = map[string]bool{
	"in": true, "on": true, "at": true, "by": true, "for": true,
	"with": true, "from": true, "to": true, "of": true, "about": true,
	"under": true, "over": true, "through": true, "between": true,
	"among": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "across": true, "around": true,
	"behind": true, "beside": true,
}

type englishProcessor struct {
	limit int
}

func (p *englishProcessor) Language() langid.Language { return langid.English }

func (p *englishProcessor) DetectDialogue(lines []string) bool {
	return detectDialogue(lines)
}

func (p *englishProcessor) FormatDialogue(lines []string) []string {
	return formatDialogue(lines, " ")
}

func (p *englishProcessor) SmartMerge(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}
	return foldMerge(lines, " ", p.shouldMerge)
}

// shouldMerge is deliberately aggressive: over-broken English subtitles
// are common and short fragments read worse than full lines.
func (p *englishProcessor) shouldMerge(current, next string) bool {
	if endsWithAny(current, englishSentenceEndings) {
		return false
	}
	if isMarkerLine(current) && isMarkerLine(next) {
		return false
	}

	// Merge whenever the pair fits the budget. Short fragments and
	// connective endings are the common case; keeping them separate
	// reads worse than one full line.
	return len(current)+1+len(next) <= p.limit
}

func (p *englishProcessor) BreakLine(line string, limit int) []string {
	if len(line) <= limit {
		return []string{line}
	}
	if !p.shouldBreak(line, limit) {
		return []string{line}
	}

	pos := findEnglishBreak(line, limit)
	if pos == -1 {
		pos = findWordBoundaryBreak(line, limit)
	}
	if pos == -1 {
		// Never break mid-word.
		return []string{line}
	}

	first := strings.TrimRight(line[:pos], " ")
	second := strings.TrimLeft(line[pos:], " ")

	result := []string{first}
	if second != "" && len(second) < len(line) {
		result = append(result, p.BreakLine(second, limit)...)
	}
	return result
}

// shouldBreak keeps overflow lines intact when breaking would orphan a
// short trailing fragment.
func (p *englishProcessor) shouldBreak(line string, limit int) bool {
	if len(line) <= limit {
		return false
	}
	remaining := strings.TrimSpace(line[limit:])
	if remaining == "" {
		return false
	}
	if len(strings.Fields(remaining)) < 4 {
		return false
	}

	pos := findEnglishBreak(line, limit)
	if pos <= 0 {
		return false
	}
	second := strings.TrimSpace(line[pos:])
	if len(second) < 20 || len(strings.Fields(second)) < 3 {
		return false
	}
	return true
}

// findEnglishBreak looks for a break point near the budget, preferring a
// position just after punctuation, then just before a conjunction, then
// just before a preposition.
func findEnglishBreak(line string, limit int) int {
	start := limit - 20
	if start < 0 {
		start = 0
	}
	end := limit
	if end > len(line) {
		end = len(line)
	}

	for i := end - 1; i >= start; i-- {
		if strings.IndexByte(".,!?;:", line[i]) >= 0 {
			return i + 1
		}
	}

	lower := strings.ToLower(line)
	for _, word := range strings.Fields(line[:end]) {
		clean := strings.Trim(strings.ToLower(word), englishPunctuation)
		if englishConjunctions[clean] {
			if pos := strings.Index(lower, clean); pos >= start && pos <= end {
				return pos
			}
		}
	}
	for _, word := range strings.Fields(line[:end]) {
		clean := strings.Trim(strings.ToLower(word), englishPunctuation)
		if englishPrepositions[clean] {
			if pos := strings.Index(lower, clean); pos >= start && pos <= end {
				return pos
			}
		}
	}
	return -1
}

// findWordBoundaryBreak returns the last space near the budget, or -1.
func findWordBoundaryBreak(line string, limit int) int {
	start := limit - 15
	if start < 0 {
		start = 0
	}
	end := limit + 5
	if end > len(line) {
		end = len(line)
	}
	for i := end - 1; i >= start; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}
