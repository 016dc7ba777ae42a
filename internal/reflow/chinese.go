package reflow

import (
	"strings"

	"subfix/internal/langid"
)

const (
	chinesePunctuation     = "。！？，：；“”‘’（）【】《》"
	chineseSentenceEndings = "。！？"
)

// Helper particles that make natural break points when they fall near the
// character budget.
var chineseHelperWords = map[rune]bool{
	'的': true, '地': true, '得': true, '了': true,
	'吧': true, '呢': true, '啊': true, '哦': true,
	'嗯': true, '呀': true, '哇': true, '吗': true,
	'嘛': true,
}

// Connectives that leave a sentence hanging when a line ends on them.
var chineseContinuationWords = map[string]bool{
	"和": true, "或": true, "但": true, "而": true,
	"因为": true, "所以": true, "如果": true, "那么": true,
}

type chineseProcessor struct {
	limit int
}

func (p *chineseProcessor) Language() langid.Language { return langid.Chinese }

func (p *chineseProcessor) DetectDialogue(lines []string) bool {
	return detectDialogue(lines)
}

func (p *chineseProcessor) FormatDialogue(lines []string) []string {
	return formatDialogue(lines, "")
}

func (p *chineseProcessor) SmartMerge(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}
	return foldMerge(lines, "", p.shouldMerge)
}

func (p *chineseProcessor) shouldMerge(current, next string) bool {
	if endsWithAny(current, chineseSentenceEndings) {
		return false
	}
	if isMarkerLine(current) != isMarkerLine(next) {
		return false
	}
	return len([]rune(current))+len([]rune(next)) <= p.limit
}

func (p *chineseProcessor) BreakLine(line string, limit int) []string {
	runes := []rune(line)
	if len(runes) <= limit {
		return []string{line}
	}
	// Overflow under three characters reads better unbroken.
	if len(runes)-limit < 3 {
		return []string{line}
	}

	pos := findChineseBreak(runes, limit)
	if pos == -1 {
		pos = limit
	}

	first := strings.TrimRight(string(runes[:pos]), " ")
	second := strings.TrimLeft(string(runes[pos:]), " ")
	if len([]rune(second)) < 5 {
		return []string{line}
	}

	result := []string{first}
	if second != "" && len([]rune(second)) < len(runes) {
		result = append(result, p.BreakLine(second, limit)...)
	}
	return result
}

// findChineseBreak scans a window near the budget for a break point,
// preferring sentence punctuation, then helper particles, then spaces.
// Returns the index to split at, or -1 when nothing in the window
// qualifies.
func findChineseBreak(runes []rune, limit int) int {
	start := limit - 10
	if start < 0 {
		start = 0
	}
	end := limit + 3
	if end > len(runes) {
		end = len(runes)
	}

	for i := end - 1; i >= start; i-- {
		if strings.ContainsRune(chinesePunctuation, runes[i]) && i+1 <= limit {
			return i + 1
		}
	}
	for i := end - 1; i >= start; i-- {
		if chineseHelperWords[runes[i]] && i+1 <= limit {
			return i + 1
		}
	}
	for i := end - 1; i >= start; i-- {
		if runes[i] == ' ' && i <= limit {
			return i
		}
	}
	return -1
}

// EnsureClosingPunctuation appends a full stop when a block's final line
// reads as a finished sentence without one. Trailing ellipses, music
// markers, and continuations (hanging commas or connectives, very short
// lines) are left alone.
func EnsureClosingPunctuation(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" ||
		endsWithAny(last, chinesePunctuation) ||
		strings.HasSuffix(last, "...") ||
		strings.HasPrefix(last, "♪") ||
		isChineseContinuation(last) {
		return lines
	}
	out := append([]string(nil), lines...)
	out[len(out)-1] = last + "。"
	return out
}

func isChineseContinuation(line string) bool {
	runes := []rune(line)
	if len(runes) == 0 {
		return false
	}
	if strings.ContainsRune("，、", runes[len(runes)-1]) {
		return true
	}
	if fields := strings.Fields(line); len(fields) > 0 && chineseContinuationWords[fields[len(fields)-1]] {
		return true
	}
	return len(runes) < 8
}
