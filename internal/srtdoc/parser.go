package srtdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a malformed record. Parsing aborts on the first
// malformed record: skipping one would break the index-contiguity guarantee
// every downstream stage relies on.
type ParseError struct {
	Block  int    // 1-based position of the offending record
	Line   int    // 1-based line number in the input
	Raw    string // offending raw text
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("srt parse: block %d (line %d): %s: %q", e.Block, e.Line, e.Reason, e.Raw)
}

// Parse reads SRT wire format into a Document. The input must already be
// decoded text; encoding concerns live with the caller.
func Parse(content string) (*Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	doc := &Document{}
	pos := 0
	for {
		for pos < len(lines) && strings.TrimSpace(lines[pos]) == "" {
			pos++
		}
		if pos >= len(lines) {
			break
		}

		block, next, err := parseBlock(lines, pos, len(doc.Blocks)+1)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, block)
		pos = next
	}
	return doc, nil
}

func parseBlock(lines []string, pos, blockNum int) (*Block, int, error) {
	indexLine := strings.TrimSpace(lines[pos])
	index, err := strconv.Atoi(indexLine)
	if err != nil || index <= 0 {
		return nil, 0, &ParseError{Block: blockNum, Line: pos + 1, Raw: lines[pos], Reason: "expected numeric subtitle index"}
	}
	pos++

	if pos >= len(lines) {
		return nil, 0, &ParseError{Block: blockNum, Line: pos, Raw: indexLine, Reason: "unexpected end of input after index"}
	}
	tc, err := ParseTimeCode(lines[pos])
	if err != nil {
		return nil, 0, &ParseError{Block: blockNum, Line: pos + 1, Raw: lines[pos], Reason: err.Error()}
	}
	pos++

	// Text lines run until the blank separator; blank lines only ever
	// separate records in the wire format.
	var text []string
	for pos < len(lines) && strings.TrimSpace(lines[pos]) != "" {
		text = append(text, strings.TrimRight(lines[pos], " \t"))
		pos++
	}
	if len(text) == 0 {
		return nil, 0, &ParseError{Block: blockNum, Line: pos, Raw: indexLine, Reason: "record has no text lines"}
	}

	return &Block{Index: index, TimeCode: tc, Lines: text}, pos, nil
}
