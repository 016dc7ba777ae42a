package reflow

import (
	"reflect"
	"testing"

	"subfix/internal/langid"
)

func TestForLanguage(t *testing.T) {
	tests := []struct {
		lang langid.Language
		want langid.Language
	}{
		{langid.Chinese, langid.Chinese},
		{langid.English, langid.English},
		{langid.Korean, langid.Korean},
		{langid.Japanese, langid.Japanese},
		{langid.Auto, langid.English},
	}
	for _, tc := range tests {
		p := ForLanguage(tc.lang, false)
		if p.Language() != tc.want {
			t.Errorf("ForLanguage(%q) selected %q, want %q", tc.lang, p.Language(), tc.want)
		}
	}
}

func TestFormatDialogueNormalizesMarkers(t *testing.T) {
	p := ForLanguage(langid.Chinese, false)
	got := p.FormatDialogue([]string{"-你好", "-再见"})
	want := []string{"- 你好", "- 再见"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatDialogue() = %q, want %q", got, want)
	}
}

func TestFormatDialogueFoldsContinuation(t *testing.T) {
	zh := ForLanguage(langid.Chinese, false)
	got := zh.FormatDialogue([]string{"- 你好", "朋友"})
	want := []string{"- 你好朋友"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chinese FormatDialogue() = %q, want %q", got, want)
	}

	en := ForLanguage(langid.English, false)
	got = en.FormatDialogue([]string{"- Hello there,", "my friend"})
	want = []string{"- Hello there, my friend"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("english FormatDialogue() = %q, want %q", got, want)
	}
}

func TestFormatDialogueLeavesPlainLines(t *testing.T) {
	p := ForLanguage(langid.English, false)
	got := p.FormatDialogue([]string{"First line", "second line"})
	want := []string{"First line", "second line"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatDialogue() = %q, want %q", got, want)
	}
}

func TestChineseSmartMerge(t *testing.T) {
	p := ForLanguage(langid.Chinese, false)

	got := p.SmartMerge([]string{"我们今天", "必须做完"})
	want := []string{"我们今天必须做完"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SmartMerge() = %q, want %q", got, want)
	}

	got = p.SmartMerge([]string{"好的。", "我们走吧"})
	want = []string{"好的。", "我们走吧"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SmartMerge() after sentence ending = %q, want %q", got, want)
	}
}

func TestChineseBreakLine(t *testing.T) {
	p := ForLanguage(langid.Chinese, false)

	got := p.BreakLine("我们今天必须把这件事做完。然后再去吃饭休息一下", 16)
	want := []string{"我们今天必须把这件事做完。", "然后再去吃饭休息一下"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BreakLine() = %q, want %q", got, want)
	}

	// Overflow under three characters stays unbroken.
	short := "这是一个十分漫长而且不会断开的句子呀"
	got = p.BreakLine(short, 16)
	if !reflect.DeepEqual(got, []string{short}) {
		t.Fatalf("BreakLine(short overflow) = %q, want unchanged", got)
	}
}

func TestEnglishBreakLine(t *testing.T) {
	p := ForLanguage(langid.English, false)

	got := p.BreakLine("He opened the door quietly, hoping that nobody inside would hear.", 42)
	want := []string{"He opened the door quietly,", "hoping that nobody inside would hear."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BreakLine() = %q, want %q", got, want)
	}
}

func TestEnglishBreakLineKeepsShortRemainder(t *testing.T) {
	p := ForLanguage(langid.English, false)

	// Fewer than four words past the limit: leave intact.
	line := "This sentence runs slightly past the limit, okay then."
	got := p.BreakLine(line, 42)
	if !reflect.DeepEqual(got, []string{line}) {
		t.Fatalf("BreakLine() = %q, want unchanged", got)
	}
}

func TestEnglishNeverBreaksMidWord(t *testing.T) {
	p := ForLanguage(langid.English, false)
	line := "Supercalifragilisticexpialidociousandthensomemorelettersattachedwithoutanyspaces"
	got := p.BreakLine(line, 42)
	if !reflect.DeepEqual(got, []string{line}) {
		t.Fatalf("BreakLine(no boundary) = %q, want unchanged", got)
	}
}

func TestKoreanBreakLine(t *testing.T) {
	p := ForLanguage(langid.Korean, false)

	got := p.BreakLine("오늘은 날씨가 정말 좋아서 우리 모두 산책을 나갔다", 16)
	want := []string{"오늘은 날씨가 정말 좋아서", "우리 모두 산책을 나갔다"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BreakLine() = %q, want %q", got, want)
	}
}

func TestJapaneseBreakLine(t *testing.T) {
	p := ForLanguage(langid.Japanese, false)

	got := p.BreakLine("明日は雨です。だから傘を持って出かけてください", 13)
	want := []string{"明日は雨です。", "だから傘を持って出かけてください"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BreakLine() = %q, want %q", got, want)
	}

	// Half-width characters weigh half a cell: one run over by a single
	// unit stays unbroken.
	line := "OKです、これから始めましょう"
	got = p.BreakLine(line, 13)
	if !reflect.DeepEqual(got, []string{line}) {
		t.Fatalf("BreakLine(weighted overflow) = %q, want unchanged", got)
	}
}

func TestProcessIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		lang  langid.Language
		limit int
		lines []string
	}{
		{"chinese", langid.Chinese, 16, []string{"我们今天必须把这件事做完。然后再去吃饭休息一下"}},
		{"english", langid.English, 42, []string{"He opened the door quietly,", "hoping that nobody inside would hear."}},
		{"korean", langid.Korean, 16, []string{"오늘은 날씨가 정말 좋아서 우리 모두 산책을 나갔다"}},
		{"japanese", langid.Japanese, 13, []string{"明日は雨です。", "だから傘を持って出かけてください"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := ForLanguage(tc.lang, false)
			once := Process(p, tc.limit, tc.lines)
			twice := Process(p, tc.limit, once)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("Process not idempotent: first %q, second %q", once, twice)
			}
		})
	}
}

func TestEnsureClosingPunctuation(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			"adds full stop to finished sentence",
			[]string{"我们今天必须把这件事做完。", "然后再去吃饭休息一下"},
			[]string{"我们今天必须把这件事做完。", "然后再去吃饭休息一下。"},
		},
		{
			"already punctuated",
			[]string{"这件事我们明天再商量。"},
			[]string{"这件事我们明天再商量。"},
		},
		{
			"trailing comma marks a continuation",
			[]string{"我们先去吃饭然后再休息，"},
			[]string{"我们先去吃饭然后再休息，"},
		},
		{
			"hanging connective marks a continuation",
			[]string{"我们去吃饭 然后休息 但"},
			[]string{"我们去吃饭 然后休息 但"},
		},
		{
			"short line marks a continuation",
			[]string{"你好"},
			[]string{"你好"},
		},
		{
			"music marker left alone",
			[]string{"♪♪♪♪♪♪♪♪♪♪"},
			[]string{"♪♪♪♪♪♪♪♪♪♪"},
		},
		{
			"ellipsis left alone",
			[]string{"他说到一半就停下来了..."},
			[]string{"他说到一半就停下来了..."},
		},
		{
			"empty input",
			nil,
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EnsureClosingPunctuation(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("EnsureClosingPunctuation(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
