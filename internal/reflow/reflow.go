package reflow

import (
	"regexp"
	"strings"

	"subfix/internal/langid"
	"subfix/internal/readspeed"
	"subfix/internal/srtdoc"
)

// Processor reflows lines for one language. Implementations are stateless
// apart from the character budget fixed at construction.
type Processor interface {
	// Language identifies the variant.
	Language() langid.Language
	// DetectDialogue reports whether any line carries a leading dialogue
	// marker.
	DetectDialogue(lines []string) bool
	// FormatDialogue normalizes marker lines to "- content" and folds a
	// continuation line into the preceding speaker turn.
	FormatDialogue(lines []string) []string
	// SmartMerge collapses lines into fewer, longer ones where the
	// combined line stays within the budget and no hard sentence
	// boundary intervenes.
	SmartMerge(lines []string) []string
	// BreakLine splits a line exceeding limit into segments, choosing
	// break points by the variant's priority order. Lines that cannot be
	// broken without an orphan fragment are returned unchanged.
	BreakLine(line string, limit int) []string
}

// ForLanguage selects the processor variant for a language, budgeted with
// that language's character limit. English is the fallback variant.
func ForLanguage(lang langid.Language, sdhMode bool) Processor {
	limit := readspeed.CharacterLimit(lang, sdhMode)
	switch lang {
	case langid.Chinese:
		return &chineseProcessor{limit: limit}
	case langid.Korean:
		return &koreanProcessor{limit: limit}
	case langid.Japanese:
		return &japaneseProcessor{limit: limit}
	default:
		return &englishProcessor{limit: limit}
	}
}

// Process runs the full reflow sequence over a block's lines: dialogue
// normalization, smart merge, then line breaking against limit. The
// sequence is idempotent.
func Process(p Processor, limit int, lines []string) []string {
	out := p.FormatDialogue(lines)
	if len(out) > 1 {
		out = p.SmartMerge(out)
	}
	result := make([]string, 0, len(out))
	for _, line := range out {
		result = append(result, p.BreakLine(line, limit)...)
	}
	return result
}

// ProcessBlock reflows a block in place using the variant and budget for
// the given language.
func ProcessBlock(b *srtdoc.Block, lang langid.Language, sdhMode bool) {
	p := ForLanguage(lang, sdhMode)
	b.Lines = Process(p, readspeed.CharacterLimit(lang, sdhMode), b.Lines)
}

var dialoguePattern = regexp.MustCompile(`^-\s*(.*)$`)

func detectDialogue(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			return true
		}
	}
	return false
}

func isMarkerLine(line string) bool {
	return strings.HasPrefix(line, "- ")
}

// formatDialogue trims lines, drops empties, rewrites marker lines to
// "- content", and folds a non-marker continuation into the preceding
// speaker turn. joiner is "" for scripts written without spaces.
func formatDialogue(lines []string, joiner string) []string {
	dialogue := detectDialogue(lines)
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !dialogue {
			out = append(out, line)
			continue
		}
		if m := dialoguePattern.FindStringSubmatch(line); m != nil {
			out = append(out, "- "+strings.TrimSpace(m[1]))
			continue
		}
		if len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + joiner + line
		} else {
			out = append(out, line)
		}
	}
	return out
}

// foldMerge collapses lines front to back, asking shouldMerge for each
// neighbor pair and joining accepted pairs with joiner.
func foldMerge(lines []string, joiner string, shouldMerge func(current, next string) bool) []string {
	merged := make([]string, 0, len(lines))
	current := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if current != "" && shouldMerge(current, line) {
			current += joiner + line
			continue
		}
		if current != "" {
			merged = append(merged, current)
		}
		current = line
	}
	if current != "" {
		merged = append(merged, current)
	}
	return merged
}

func endsWithAny(s, set string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(set, runes[len(runes)-1])
}
