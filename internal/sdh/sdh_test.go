package sdh

import (
	"testing"

	"subfix/internal/srtdoc"
)

func TestIsSDHOnly(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"music run", []string{"♪♪"}, true},
		{"bracketed cue", []string{"[ Mobile vibrates ]"}, true},
		{"full-width brackets", []string{"【音楽】"}, true},
		{"full-width parens", []string{"（ため息）"}, true},
		{"marker plus cue", []string{"-[ Chuckles ]"}, true},
		{"two cue lines", []string{"♪♪", "( Thunder )"}, true},
		{"dialogue", []string{"-Cal!"}, false},
		{"mixed", []string{"-[ Sobbing ] Ruth?"}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSDHOnly(tc.lines); got != tc.want {
				t.Fatalf("IsSDHOnly(%v) = %v, want %v", tc.lines, got, tc.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if got := Classify([]string{"♪♪"}); got != KindSDHOnly {
		t.Fatalf("Classify = %v, want SDH-only", got)
	}
	if got := Classify([]string{"-[ Sobbing ] Ruth?"}); got != KindMixed {
		t.Fatalf("Classify = %v, want mixed", got)
	}
	if got := Classify([]string{"-Cal!", "-On my way."}); got != KindDialogue {
		t.Fatalf("Classify = %v, want dialogue", got)
	}
}

func TestCleanLine(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"-[ Sobbing ] Ruth?", "- Ruth?"},
		{"[ Sighs ] Hold on.", "Hold on."},
		{"Hello? [Mobile vibrates]", "Hello?"},
		{"♪♪ keep singing", "keep singing"},
		{"-[ Chuckles ]", ""},
		{"（ため息）もういい", "もういい"},
	}
	for _, tc := range cases {
		if got := CleanLine(tc.in); got != tc.want {
			t.Fatalf("CleanLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

const removalSRT = `1
00:00:01,000 --> 00:00:02,000
♪♪

2
00:00:03,000 --> 00:00:04,000
[ Mobile vibrates ]

3
00:00:05,000 --> 00:00:06,000
-Cal!

4
00:00:07,000 --> 00:00:08,000
-[ Sobbing ] Ruth?

`

func TestRemoveFromDocument(t *testing.T) {
	doc, err := srtdoc.Parse(removalSRT)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	stats := RemoveFromDocument(doc)

	if stats.RemovedBlocks != 2 {
		t.Fatalf("removed = %d, want 2", stats.RemovedBlocks)
	}
	if stats.CleanedBlocks != 1 {
		t.Fatalf("cleaned = %d, want 1", stats.CleanedBlocks)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}
	for i, b := range doc.Blocks {
		if b.Index != i+1 {
			t.Fatalf("index %d at position %d", b.Index, i)
		}
	}
	if doc.Blocks[0].Lines[0] != "-Cal!" {
		t.Fatalf("dialogue block changed: %q", doc.Blocks[0].Lines[0])
	}
	if doc.Blocks[1].Lines[0] != "- Ruth?" {
		t.Fatalf("mixed block not cleaned: %q", doc.Blocks[1].Lines[0])
	}
	// Timecodes of retained blocks are untouched.
	if doc.Blocks[0].TimeCode.String() != "00:00:05,000 --> 00:00:06,000" {
		t.Fatalf("timecode changed: %s", doc.Blocks[0].TimeCode)
	}
}

func TestRemoveDropsBlockEmptiedByCleaning(t *testing.T) {
	doc := &srtdoc.Document{Blocks: []*srtdoc.Block{
		{Index: 1, Lines: []string{"- [Music] ♪"}},
		{Index: 2, Lines: []string{"Still here."}},
	}}
	stats := RemoveFromDocument(doc)
	if stats.RemovedBlocks != 1 || len(doc.Blocks) != 1 {
		t.Fatalf("stats = %+v, blocks = %d", stats, len(doc.Blocks))
	}
	if doc.Blocks[0].Index != 1 || doc.Blocks[0].Lines[0] != "Still here." {
		t.Fatalf("unexpected surviving block: %+v", doc.Blocks[0])
	}
}
