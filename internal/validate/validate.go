// Package validate runs compliance checks over a subtitle document and
// collects violations. Violations are data, not errors: a check never
// mutates text and never aborts the run.
package validate

import (
	"fmt"

	"subfix/internal/langid"
	"subfix/internal/readspeed"
	"subfix/internal/srtdoc"
)

// Kind labels the rule a violation broke.
type Kind string

const (
	KindCharacterLimit Kind = "character_limit"
	KindReadingSpeed   Kind = "reading_speed"
)

// Violation records one failed check. Line is 1-based within the block;
// zero marks a block-level check such as reading speed.
type Violation struct {
	BlockIndex int
	Line       int
	Kind       Kind
	Language   langid.Language
	Limit      float64
	Actual     float64
}

// String renders the violation in report form, e.g.
// "character_limit (17 > 16 zh)".
func (v Violation) String() string {
	if v.Kind == KindReadingSpeed {
		return fmt.Sprintf("%s (%.1f > %.1f %s)", v.Kind, v.Actual, v.Limit, v.Language)
	}
	return fmt.Sprintf("%s (%d > %d %s)", v.Kind, int(v.Actual), int(v.Limit), v.Language)
}

// Options configures a validation run. Language overrides per-block
// detection when set to anything but Auto.
type Options struct {
	Language    langid.Language
	ContentType readspeed.ContentType
	SDHMode     bool
	CheckSpeed  bool
}

// Result aggregates a document's violations.
type Result struct {
	DocumentLanguage langid.Language
	TotalBlocks      int
	CompliantBlocks  int
	Violations       []Violation
}

// ComplianceRate is the percentage of blocks with no violations.
func (r *Result) ComplianceRate() float64 {
	if r.TotalBlocks == 0 {
		return 100
	}
	return float64(r.CompliantBlocks) / float64(r.TotalBlocks) * 100
}

// CountByKind reports how many violations broke the given rule.
func (r *Result) CountByKind(kind Kind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// ByBlock groups the result's violations by block index, preserving
// order within each block.
func (r *Result) ByBlock() map[int][]Violation {
	grouped := make(map[int][]Violation)
	for _, v := range r.Violations {
		grouped[v.BlockIndex] = append(grouped[v.BlockIndex], v)
	}
	return grouped
}

// Document validates every block. The character-limit check runs per
// line, against each line's own detected language; the reading-speed
// check runs per block, against the block's aggregate language.
func Document(doc *srtdoc.Document, opts Options) *Result {
	docLang := opts.Language
	if docLang == langid.Auto {
		docLang = langid.DetectDocument(doc.AllLines())
	}

	result := &Result{
		DocumentLanguage: docLang,
		TotalBlocks:      len(doc.Blocks),
	}
	for _, b := range doc.Blocks {
		violations := Block(b, docLang, opts)
		if len(violations) == 0 {
			result.CompliantBlocks++
		}
		result.Violations = append(result.Violations, violations...)
	}
	return result
}

// Block checks one block. docLang is the fallback for lines whose script
// gives no signal.
func Block(b *srtdoc.Block, docLang langid.Language, opts Options) []Violation {
	var violations []Violation

	// A block may legitimately mix languages, so each line is measured
	// against its own language's limit.
	total := 0
	for i, line := range b.Lines {
		lineLang := langid.DetectLine(line, docLang)
		count := readspeed.CountLine(lineLang, line)
		total += count
		limit := readspeed.CharacterLimit(lineLang, opts.SDHMode)
		if count > limit {
			violations = append(violations, Violation{
				BlockIndex: b.Index,
				Line:       i + 1,
				Kind:       KindCharacterLimit,
				Language:   lineLang,
				Limit:      float64(limit),
				Actual:     float64(count),
			})
		}
	}

	if !opts.CheckSpeed {
		return violations
	}
	seconds := b.TimeCode.Seconds()
	if seconds <= 0 {
		return violations
	}

	blockLang := opts.Language
	if blockLang == langid.Auto {
		blockLang = langid.DetectText(b.Text(), docLang)
	}
	speed := float64(total) / seconds
	limit := readspeed.SpeedLimit(blockLang, opts.ContentType, opts.SDHMode)
	if speed > limit {
		violations = append(violations, Violation{
			BlockIndex: b.Index,
			Kind:       KindReadingSpeed,
			Language:   blockLang,
			Limit:      limit,
			Actual:     speed,
		})
	}
	return violations
}
