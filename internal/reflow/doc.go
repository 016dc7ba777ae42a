// Package reflow reshapes subtitle block lines to fit per-language
// authoring limits without crossing semantic boundaries.
//
// Four variants (Chinese, English, Korean, Japanese) share one contract:
// dialogue-marker normalization, smart merging of short lines, and
// priority-driven line breaking. Break points prefer punctuation, then
// language-specific cues (softening particles, conjunctions, case
// particles, width transitions), then plain boundaries, and every variant
// enforces a minimum trailing-segment length so breaking never strands an
// orphan fragment. Reflow mutates only a block's lines; index, timecode,
// and classification are untouched.
package reflow
