// Package pipeline wires the processing stages together: parse, language
// detection, SDH removal, reflow, and validation. Each stage consumes the
// previous stage's complete output; the whole run is pure computation
// over in-memory text.
package pipeline

import (
	"subfix/internal/langid"
	"subfix/internal/readspeed"
	"subfix/internal/reflow"
	"subfix/internal/sdh"
	"subfix/internal/srtdoc"
	"subfix/internal/validate"
)

// Options is the fully-resolved configuration for one run.
type Options struct {
	Language    langid.Language
	ContentType readspeed.ContentType
	SDHMode     bool
	RemoveSDH   bool
	PunctFix    bool
	CheckSpeed  bool
	CheckOnly   bool
}

// Result carries the processed document plus everything observed along
// the way.
type Result struct {
	Document   *srtdoc.Document
	Language   langid.Language
	SDHStats   sdh.Stats
	Validation *validate.Result
}

// Run executes the full pipeline over raw SRT content. Parse failures
// abort the whole run; validation findings never do.
func Run(content string, opts Options) (*Result, error) {
	doc, err := srtdoc.Parse(content)
	if err != nil {
		return nil, err
	}

	docLang := opts.Language
	if docLang == langid.Auto {
		docLang = langid.DetectDocument(doc.AllLines())
	}
	for _, b := range doc.Blocks {
		b.Language = langid.DetectText(b.Text(), docLang)
	}

	result := &Result{Document: doc, Language: docLang}
	if opts.RemoveSDH {
		result.SDHStats = sdh.RemoveFromDocument(doc)
	}

	if !opts.CheckOnly {
		for _, b := range doc.Blocks {
			reflowBlock(b, docLang, opts.SDHMode, opts.PunctFix)
		}
	}

	result.Validation = validate.Document(doc, validate.Options{
		Language:    opts.Language,
		ContentType: opts.ContentType,
		SDHMode:     opts.SDHMode,
		CheckSpeed:  opts.CheckSpeed,
	})
	return result, nil
}

// reflowBlock dispatches a block to its language's processor. Bilingual
// blocks are split into runs of consecutive same-language lines, and
// each run is reflowed under its own language's rules so a dialogue pair
// like zh-over-en keeps both halves intact.
func reflowBlock(b *srtdoc.Block, docLang langid.Language, sdhMode, punctFix bool) {
	if !isBilingual(b.Lines, docLang) {
		lang := b.Language
		if lang == langid.Auto || lang == "" {
			lang = docLang
		}
		reflow.ProcessBlock(b, lang, sdhMode)
		if punctFix && lang == langid.Chinese {
			b.Lines = reflow.EnsureClosingPunctuation(b.Lines)
		}
		return
	}

	var out []string
	for _, run := range groupByLanguage(b.Lines, docLang) {
		p := reflow.ForLanguage(run.lang, sdhMode)
		limit := readspeed.CharacterLimit(run.lang, sdhMode)
		lines := reflow.Process(p, limit, run.lines)
		if punctFix && run.lang == langid.Chinese {
			lines = reflow.EnsureClosingPunctuation(lines)
		}
		out = append(out, lines...)
	}
	b.Lines = out
}

func isBilingual(lines []string, docLang langid.Language) bool {
	if len(lines) < 2 {
		return false
	}
	seen := langid.Language("")
	for _, line := range lines {
		if line == "" {
			continue
		}
		lang := langid.DetectLine(line, docLang)
		if seen == "" {
			seen = lang
			continue
		}
		if lang != seen {
			return true
		}
	}
	return false
}

type languageRun struct {
	lang  langid.Language
	lines []string
}

// groupByLanguage splits lines into maximal runs of consecutive lines
// sharing a detected language.
func groupByLanguage(lines []string, docLang langid.Language) []languageRun {
	var runs []languageRun
	for _, line := range lines {
		if line == "" {
			continue
		}
		lang := langid.DetectLine(line, docLang)
		if n := len(runs); n > 0 && runs[n-1].lang == lang {
			runs[n-1].lines = append(runs[n-1].lines, line)
			continue
		}
		runs = append(runs, languageRun{lang: lang, lines: []string{line}})
	}
	return runs
}
