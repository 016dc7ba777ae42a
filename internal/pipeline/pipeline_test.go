package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"subfix/internal/langid"
	"subfix/internal/readspeed"
	"subfix/internal/srtdoc"
)

func defaultOptions() Options {
	return Options{
		Language:    langid.Auto,
		ContentType: readspeed.Adult,
		RemoveSDH:   true,
		CheckSpeed:  true,
	}
}

func TestRunBilingualBlock(t *testing.T) {
	input := "1\n" +
		"00:00:01,000 --> 00:00:05,000\n" +
		"-为什么让她靠近尸体？\n" +
		"-Why did you let her\n" +
		"near the body?\n" +
		"\n"

	result, err := Run(input, defaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Language != langid.Chinese {
		t.Errorf("document language = %q, want zh", result.Language)
	}

	got := result.Document.Blocks[0].Lines
	want := []string{
		"- 为什么让她靠近尸体？",
		"- Why did you let her near the body?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reflowed lines = %q, want %q", got, want)
	}
}

func TestRunRemovesSDHAndResequences(t *testing.T) {
	input := "1\n" +
		"00:00:01,000 --> 00:00:02,000\n" +
		"♪♪\n" +
		"\n" +
		"2\n" +
		"00:00:03,000 --> 00:00:04,000\n" +
		"[ Mobile vibrates ]\n" +
		"\n" +
		"3\n" +
		"00:00:05,000 --> 00:00:06,000\n" +
		"-Cal!\n" +
		"\n"

	result, err := Run(input, defaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.SDHStats.RemovedBlocks != 2 {
		t.Errorf("removed blocks = %d, want 2", result.SDHStats.RemovedBlocks)
	}
	if len(result.Document.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(result.Document.Blocks))
	}
	b := result.Document.Blocks[0]
	if b.Index != 1 {
		t.Errorf("retained block index = %d, want 1", b.Index)
	}
	if !reflect.DeepEqual(b.Lines, []string{"- Cal!"}) {
		t.Errorf("retained lines = %q, want [- Cal!]", b.Lines)
	}
}

func TestRunCheckOnlyLeavesLinesAlone(t *testing.T) {
	input := "1\n" +
		"00:00:01,000 --> 00:00:11,000\n" +
		"-你好\n" +
		"朋友\n" +
		"\n"

	opts := defaultOptions()
	opts.CheckOnly = true
	opts.RemoveSDH = false
	result, err := Run(input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := result.Document.Blocks[0].Lines
	if !reflect.DeepEqual(got, []string{"-你好", "朋友"}) {
		t.Fatalf("check-only modified lines: %q", got)
	}
	if result.Validation == nil {
		t.Fatal("check-only run produced no validation result")
	}
}

func TestRunPropagatesParseError(t *testing.T) {
	_, err := Run("not an srt file\n", defaultOptions())
	if err == nil {
		t.Fatal("Run accepted malformed input")
	}
	var parseErr *srtdoc.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type %T, want *srtdoc.ParseError", err)
	}
}

func TestRunAddsClosingPunctuation(t *testing.T) {
	input := "1\n" +
		"00:00:01,000 --> 00:00:05,000\n" +
		"这件事我们明天再慢慢商量\n" +
		"\n"

	opts := defaultOptions()
	opts.PunctFix = true
	result, err := Run(input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := result.Document.Blocks[0].Lines
	want := []string{"这件事我们明天再慢慢商量。"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}

	opts.PunctFix = false
	result, err = Run(input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got = result.Document.Blocks[0].Lines
	want = []string{"这件事我们明天再慢慢商量"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines without punct fix = %q, want %q", got, want)
	}
}
