// Package report renders collected violations as a derived subtitle
// document, reusing the normal SRT writer so the report can be opened in
// any subtitle tool.
package report

import (
	"fmt"
	"strings"
	"time"

	"subfix/internal/srtdoc"
	"subfix/internal/validate"
)

// The summary block carries a reserved placeholder timecode.
var summaryTimeCode = srtdoc.TimeCode{Start: 0, End: 5 * time.Second}

// Build derives a report document: a summary block followed by one block
// per violated original block. Violated blocks keep their timecode and
// lines verbatim, plus one trailing line listing their violations.
// Indices run sequentially from the summary block.
func Build(doc *srtdoc.Document, result *validate.Result) *srtdoc.Document {
	out := &srtdoc.Document{}
	out.Blocks = append(out.Blocks, summaryBlock(result))

	grouped := result.ByBlock()
	for _, b := range doc.Blocks {
		violations := grouped[b.Index]
		if len(violations) == 0 {
			continue
		}
		copied := b.Clone()
		copied.Lines = append(copied.Lines, violationLine(violations))
		out.Blocks = append(out.Blocks, copied)
	}

	out.Resequence()
	return out
}

func summaryBlock(result *validate.Result) *srtdoc.Block {
	lines := []string{
		"=== VIOLATION SUMMARY ===",
		fmt.Sprintf("Language: %s", result.DocumentLanguage),
		fmt.Sprintf("Compliance: %.1f%% (%d/%d blocks)",
			result.ComplianceRate(), result.CompliantBlocks, result.TotalBlocks),
		fmt.Sprintf("%s: %d", validate.KindCharacterLimit,
			result.CountByKind(validate.KindCharacterLimit)),
		fmt.Sprintf("%s: %d", validate.KindReadingSpeed,
			result.CountByKind(validate.KindReadingSpeed)),
	}
	return &srtdoc.Block{
		Index:    1,
		TimeCode: summaryTimeCode,
		Lines:    lines,
	}
}

func violationLine(violations []validate.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.String())
	}
	return "# VIOLATIONS: " + strings.Join(parts, ", ")
}
