package sdh

import (
	"regexp"
	"strings"

	"subfix/internal/srtdoc"
)

// Descriptive span patterns. Bracket pairs cover ASCII and full-width
// variants; music markers cover note glyph runs.
var spanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[[^\]]*\]`),
	regexp.MustCompile(`\([^)]*\)`),
	regexp.MustCompile(`（[^）]*）`),
	regexp.MustCompile(`【[^】]*】`),
	regexp.MustCompile(`《[^》]*》`),
	regexp.MustCompile(`［[^］]*］`),
	regexp.MustCompile(`〔[^〕]*〕`),
	regexp.MustCompile(`〈[^〉]*〉`),
	regexp.MustCompile(`[♪🎵🎶]+`),
}

var (
	dialogueMarker = regexp.MustCompile(`^-\s*`)
	doubleMarker   = regexp.MustCompile(`^-\s*-\s*`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// Kind classifies a block's relationship to descriptive content.
type Kind int

const (
	// KindDialogue marks blocks whose lines carry no descriptive spans.
	KindDialogue Kind = iota
	// KindMixed marks blocks where at least one line combines a
	// descriptive span with residual dialogue.
	KindMixed
	// KindSDHOnly marks blocks made up entirely of descriptive spans.
	KindSDHOnly
)

// stripSpans removes every descriptive span from a line.
func stripSpans(line string) string {
	for _, pattern := range spanPatterns {
		line = pattern.ReplaceAllString(line, "")
	}
	return line
}

// anySpan reports whether any line of a block contains a descriptive span.
func anySpan(lines []string) bool {
	for _, line := range lines {
		if hasSpan(line) {
			return true
		}
	}
	return false
}

// hasSpan reports whether the line contains at least one descriptive span.
func hasSpan(line string) bool {
	for _, pattern := range spanPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// residue returns what remains of a line once descriptive spans and the
// dialogue marker are removed.
func residue(line string) string {
	rest := stripSpans(strings.TrimSpace(line))
	rest = dialogueMarker.ReplaceAllString(rest, "")
	return strings.TrimSpace(rest)
}

// IsSDHOnly reports whether every line of the block consists solely of
// descriptive spans (dialogue markers and whitespace aside). Blocks with no
// text at all are not SDH-only.
func IsSDHOnly(lines []string) bool {
	sawText := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sawText = true
		if residue(line) != "" {
			return false
		}
	}
	return sawText
}

// Classify reports how a block relates to descriptive content.
func Classify(lines []string) Kind {
	if IsSDHOnly(lines) {
		return KindSDHOnly
	}
	for _, line := range lines {
		if hasSpan(line) && residue(line) != "" {
			return KindMixed
		}
	}
	return KindDialogue
}

// CleanLine strips descriptive spans from a single line, collapses the
// resulting whitespace, and normalizes a leading dialogue marker to "- ".
// A line reduced to a bare marker becomes empty.
func CleanLine(line string) string {
	cleaned := stripSpans(line)
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = doubleMarker.ReplaceAllString(cleaned, "- ")
	if dialogueMarker.MatchString(cleaned) {
		cleaned = "- " + strings.TrimSpace(dialogueMarker.ReplaceAllString(cleaned, ""))
	}
	if cleaned == "-" || cleaned == "- " {
		return ""
	}
	return cleaned
}

// CleanBlock strips descriptive spans from a block's lines in place,
// dropping lines that end up empty. Returns false when nothing survives.
func CleanBlock(b *srtdoc.Block) bool {
	cleaned := b.Lines[:0]
	for _, line := range b.Lines {
		if out := CleanLine(line); out != "" {
			cleaned = append(cleaned, out)
		}
	}
	b.Lines = cleaned
	return len(b.Lines) > 0
}

// Stats reports the effects of a removal pass.
type Stats struct {
	RemovedBlocks int
	CleanedBlocks int
}

// RemoveFromDocument drops SDH-only blocks, strips descriptive spans from
// mixed blocks, and resequences the surviving blocks to 1..N. A mixed block
// emptied by cleaning degenerates to SDH-only and is dropped too. Timecodes
// of retained blocks are never touched.
func RemoveFromDocument(doc *srtdoc.Document) Stats {
	var stats Stats
	kept := doc.Blocks[:0]
	for _, b := range doc.Blocks {
		if IsSDHOnly(b.Lines) {
			stats.RemovedBlocks++
			continue
		}
		// Blocks without any descriptive span keep their content
		// untouched.
		if !anySpan(b.Lines) {
			kept = append(kept, b)
			continue
		}
		if !CleanBlock(b) {
			stats.RemovedBlocks++
			continue
		}
		stats.CleanedBlocks++
		kept = append(kept, b)
	}
	doc.Blocks = kept
	doc.Resequence()
	return stats
}
