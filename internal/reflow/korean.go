package reflow

import (
	"strings"

	"subfix/internal/langid"
)

const (
	koreanPunctuation     = "。！？，：；“”‘’（）【】《》"
	koreanSentenceEndings = "。！？"
)

// Particles and verb endings that make natural break points. Keys are one
// or two syllables long.
var koreanParticles = map[string]bool{
	"은": true, "는": true, "이": true, "가": true,
	"을": true, "를": true, "에": true, "에서": true,
	"로": true, "으로": true, "와": true, "과": true,
	"의": true, "도": true, "만": true, "까지": true,
	"부터": true, "보다": true, "처럼": true, "다": true,
	"요": true, "죠": true, "네": true, "지": true,
	"니": true, "까": true, "야": true, "아": true,
	"어": true, "고": true, "서": true, "면": true,
	"려고": true, "하고": true,
}

type koreanProcessor struct {
	limit int
}

func (p *koreanProcessor) Language() langid.Language { return langid.Korean }

func (p *koreanProcessor) DetectDialogue(lines []string) bool {
	return detectDialogue(lines)
}

func (p *koreanProcessor) FormatDialogue(lines []string) []string {
	return formatDialogue(lines, " ")
}

func (p *koreanProcessor) SmartMerge(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}
	return foldMerge(lines, " ", p.shouldMerge)
}

func (p *koreanProcessor) shouldMerge(current, next string) bool {
	if endsWithAny(current, koreanSentenceEndings) {
		return false
	}
	if isMarkerLine(current) != isMarkerLine(next) {
		return false
	}
	return len([]rune(current))+1+len([]rune(next)) <= p.limit
}

func (p *koreanProcessor) BreakLine(line string, limit int) []string {
	runes := []rune(line)
	if len(runes) <= limit {
		return []string{line}
	}
	if len(runes)-limit < 3 {
		return []string{line}
	}

	pos := findKoreanBreak(runes, limit)
	if pos == -1 {
		pos = limit
	}

	first := strings.TrimRight(string(runes[:pos]), " ")
	second := strings.TrimLeft(string(runes[pos:]), " ")
	if len([]rune(second)) < 4 {
		return []string{line}
	}

	result := []string{first}
	if second != "" && len([]rune(second)) < len(runes) {
		result = append(result, p.BreakLine(second, limit)...)
	}
	return result
}

// findKoreanBreak scans a window near the budget, preferring punctuation,
// then two-syllable particles, then single syllables, then spaces.
func findKoreanBreak(runes []rune, limit int) int {
	start := limit - 8
	if start < 0 {
		start = 0
	}
	end := limit + 3
	if end > len(runes) {
		end = len(runes)
	}

	for i := end - 1; i >= start; i-- {
		if strings.ContainsRune(koreanPunctuation, runes[i]) && i+1 <= limit {
			return i + 1
		}
	}
	for i := end - 2; i >= start; i-- {
		if i+2 <= len(runes) && koreanParticles[string(runes[i:i+2])] && i+2 <= limit {
			return i + 2
		}
	}
	for i := end - 1; i >= start; i-- {
		if koreanParticles[string(runes[i])] && i+1 <= limit {
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
