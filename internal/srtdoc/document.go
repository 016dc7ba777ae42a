package srtdoc

import (
	"strconv"
	"strings"

	"subfix/internal/langid"
)

// Block is one timed subtitle unit.
type Block struct {
	Index    int
	TimeCode TimeCode
	Lines    []string
	Language langid.Language
}

// Text joins the block's lines with newlines.
func (b *Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// IsDialogue reports whether any line carries a leading dialogue marker.
func (b *Block) IsDialogue() bool {
	for _, line := range b.Lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	lines := make([]string, len(b.Lines))
	copy(lines, b.Lines)
	return &Block{Index: b.Index, TimeCode: b.TimeCode, Lines: lines, Language: b.Language}
}

// Document is an ordered sequence of subtitle blocks. Indices form a
// contiguous 1..N run matching sequence order at every observable boundary.
type Document struct {
	Blocks []*Block
}

// Resequence rewrites block indices to a contiguous 1..N run in sequence
// order. Called after any operation that inserts or removes blocks.
func (d *Document) Resequence() {
	for i, b := range d.Blocks {
		b.Index = i + 1
	}
}

// AllLines returns every text line of every block in order.
func (d *Document) AllLines() []string {
	var lines []string
	for _, b := range d.Blocks {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// Format serializes the document to SRT wire format: index, timecode line,
// text lines, blank separator, for every block in order.
func (d *Document) Format() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(strconv.Itoa(b.Index))
		sb.WriteByte('\n')
		sb.WriteString(b.TimeCode.String())
		sb.WriteByte('\n')
		for _, line := range b.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
