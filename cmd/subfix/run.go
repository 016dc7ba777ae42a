package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subfix/internal/charset"
	"subfix/internal/config"
	"subfix/internal/history"
	"subfix/internal/langid"
	"subfix/internal/pipeline"
	"subfix/internal/readspeed"
	"subfix/internal/report"
	"subfix/internal/validate"
)

// runFlags holds the per-run overrides shared by process, check, and
// batch. Values only take effect when the flag was set on the command
// line; otherwise the configuration defaults win.
type runFlags struct {
	language    string
	contentType string
	sdhMode     bool
	keepSDH     bool
	noPunctFix  bool
	noSpeed     bool
	encoding    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Subtitle language (auto, zh, en, ko, ja)")
	cmd.Flags().StringVar(&f.contentType, "content-type", "", "Content type for reading-speed limits (adult or children)")
	cmd.Flags().BoolVar(&f.sdhMode, "sdh", false, "Apply the relaxed SDH limits")
	cmd.Flags().BoolVar(&f.keepSDH, "keep-sdh", false, "Keep SDH annotations instead of removing them")
	cmd.Flags().BoolVar(&f.noPunctFix, "no-punct-fix", false, "Do not append missing sentence-ending punctuation to Chinese blocks")
	cmd.Flags().BoolVar(&f.noSpeed, "no-speed-check", false, "Skip reading-speed checks")
	cmd.Flags().StringVar(&f.encoding, "force-encoding", "", "Force the input character encoding (e.g. GBK, EUC-KR)")
}

// runOptions is the fully-resolved configuration for processing files.
type runOptions struct {
	pipeline        pipeline.Options
	encoding        string
	outputSuffix    string
	violationSuffix string
}

func resolveRunOptions(cmd *cobra.Command, cfg *config.Config, flags *runFlags) (runOptions, error) {
	opts := runOptions{
		encoding:        cfg.Defaults.ForceEncoding,
		outputSuffix:    cfg.Defaults.OutputSuffix,
		violationSuffix: cfg.Defaults.ViolationSuffix,
	}

	language := cfg.Defaults.Language
	if cmd.Flags().Changed("language") {
		language = flags.language
	}
	lang, ok := langid.Parse(language)
	if !ok {
		return opts, fmt.Errorf("unsupported language %q", language)
	}

	contentType := cfg.Defaults.ContentType
	if cmd.Flags().Changed("content-type") {
		contentType = flags.contentType
	}
	content, ok := readspeed.ParseContentType(contentType)
	if !ok {
		return opts, fmt.Errorf("unsupported content type %q", contentType)
	}

	opts.pipeline = pipeline.Options{
		Language:    lang,
		ContentType: content,
		SDHMode:     cfg.Defaults.SDHMode,
		RemoveSDH:   cfg.Defaults.RemoveSDH,
		PunctFix:    cfg.Defaults.PunctFix,
		CheckSpeed:  cfg.Defaults.CheckSpeed,
	}
	if cmd.Flags().Changed("sdh") {
		opts.pipeline.SDHMode = flags.sdhMode
	}
	if cmd.Flags().Changed("keep-sdh") {
		opts.pipeline.RemoveSDH = !flags.keepSDH
	}
	if cmd.Flags().Changed("no-punct-fix") {
		opts.pipeline.PunctFix = !flags.noPunctFix
	}
	if cmd.Flags().Changed("no-speed-check") {
		opts.pipeline.CheckSpeed = !flags.noSpeed
	}
	if cmd.Flags().Changed("force-encoding") {
		opts.encoding = flags.encoding
	}
	return opts, nil
}

// fileOutcome describes a completed single-file run.
type fileOutcome struct {
	Result     *pipeline.Result
	OutputPath string
	ReportPath string
}

// runFile executes the pipeline over one subtitle file. In check-only
// mode no processed output is written; a violation report is written
// whenever reportPath is non-empty and violations were found.
func runFile(opts runOptions, input, output string, checkOnly, writeReport bool) (*fileOutcome, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	content, err := charset.Decode(data, opts.encoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", input, err)
	}

	popts := opts.pipeline
	popts.CheckOnly = checkOnly
	result, err := pipeline.Run(content, popts)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", input, err)
	}

	outcome := &fileOutcome{Result: result}
	if !checkOnly {
		if output == "" {
			output = suffixedPath(input, opts.outputSuffix)
		}
		if err := os.WriteFile(output, []byte(result.Document.Format()), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		outcome.OutputPath = output
	}

	if writeReport && len(result.Validation.Violations) > 0 {
		reportDoc := report.Build(result.Document, result.Validation)
		reportPath := suffixedPath(input, opts.violationSuffix)
		if err := os.WriteFile(reportPath, []byte(reportDoc.Format()), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", reportPath, err)
		}
		outcome.ReportPath = reportPath
	}
	return outcome, nil
}

func suffixedPath(input, suffix string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return stem + suffix + ext
}

// recordHistory persists the run outcome. History failures are logged
// and swallowed; they never fail the run itself.
func recordHistory(ctx context.Context, logger *slog.Logger, cfg *config.Config, file string, opts runOptions, result *pipeline.Result) string {
	if !cfg.History.Enabled {
		return ""
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return ""
	}
	defer store.Close()

	runID, err := store.Add(ctx, history.Record{
		File:            file,
		Language:        string(result.Language),
		ContentType:     string(opts.pipeline.ContentType),
		SDHMode:         opts.pipeline.SDHMode,
		TotalBlocks:     result.Validation.TotalBlocks,
		RemovedBlocks:   result.SDHStats.RemovedBlocks,
		CharViolations:  result.Validation.CountByKind(validate.KindCharacterLimit),
		SpeedViolations: result.Validation.CountByKind(validate.KindReadingSpeed),
		ComplianceRate:  result.Validation.ComplianceRate(),
	})
	if err != nil {
		logger.Warn("record history", "error", err)
		return ""
	}
	return runID
}
