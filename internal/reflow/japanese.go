package reflow

import (
	"strings"

	"subfix/internal/langid"
	"subfix/internal/readspeed"
)

const (
	japanesePunctuation     = "。！？、"
	japaneseSentenceEndings = "。！？"
)

type japaneseProcessor struct {
	limit int
}

func (p *japaneseProcessor) Language() langid.Language { return langid.Japanese }

func (p *japaneseProcessor) DetectDialogue(lines []string) bool {
	return detectDialogue(lines)
}

func (p *japaneseProcessor) FormatDialogue(lines []string) []string {
	return formatDialogue(lines, "")
}

func (p *japaneseProcessor) SmartMerge(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}
	return foldMerge(lines, "", p.shouldMerge)
}

func (p *japaneseProcessor) shouldMerge(current, next string) bool {
	if endsWithAny(current, japaneseSentenceEndings) {
		return false
	}
	if isMarkerLine(current) != isMarkerLine(next) {
		return false
	}
	merged := readspeed.CountLine(langid.Japanese, current) +
		readspeed.CountLine(langid.Japanese, next)
	return merged <= p.limit
}

// BreakLine splits against the weighted Japanese count: half-width
// characters weigh half a cell, so the break index is located where the
// cumulative weight reaches the budget rather than at a fixed rune offset.
func (p *japaneseProcessor) BreakLine(line string, limit int) []string {
	runes := []rune(line)
	count := readspeed.CountLine(langid.Japanese, line)
	if count <= limit {
		return []string{line}
	}
	if count-limit < 3 {
		return []string{line}
	}

	budget := japaneseBudgetIndex(runes, limit)
	pos := findJapaneseBreak(runes, budget)
	if pos == -1 {
		pos = budget
	}

	first := strings.TrimRight(string(runes[:pos]), " ")
	second := strings.TrimLeft(string(runes[pos:]), " ")
	if readspeed.CountLine(langid.Japanese, second) < 5 {
		return []string{line}
	}

	result := []string{first}
	if second != "" && len([]rune(second)) < len(runes) {
		result = append(result, p.BreakLine(second, limit)...)
	}
	return result
}

// japaneseBudgetIndex returns the rune index where the cumulative weighted
// count first exceeds limit.
func japaneseBudgetIndex(runes []rune, limit int) int {
	weight := 0.0
	for i, r := range runes {
		if r < 0x80 {
			weight += 0.5
		} else {
			weight += 1
		}
		if weight > float64(limit) {
			return i
		}
	}
	return len(runes)
}

// findJapaneseBreak prefers breaking just after punctuation, then at a
// transition between full-width and half-width runs.
func findJapaneseBreak(runes []rune, budget int) int {
	start := budget - 10
	if start < 0 {
		start = 0
	}
	end := budget + 3
	if end > len(runes) {
		end = len(runes)
	}

	for i := end - 1; i >= start; i-- {
		if strings.ContainsRune(japanesePunctuation, runes[i]) && i+1 <= budget {
			return i + 1
		}
	}
	for i := end - 1; i > start; i-- {
		if i <= budget && isHalfWidth(runes[i]) != isHalfWidth(runes[i-1]) {
			return i
		}
	}
	return -1
}

func isHalfWidth(r rune) bool { return r < 0x80 }
