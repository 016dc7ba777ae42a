package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/logging"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var outputPath string
	var violations bool

	cmd := &cobra.Command{
		Use:   "process <file.srt>",
		Short: "Reflow a subtitle file and write a compliant copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts, err := resolveRunOptions(cmd, cfg, &flags)
			if err != nil {
				return err
			}

			input := args[0]
			outcome, err := runFile(opts, input, outputPath, false, violations)
			if err != nil {
				return err
			}

			result := outcome.Result
			runID := recordHistory(cmd.Context(), logger, cfg, input, opts, result)
			logger.Info("processed subtitle file",
				logging.String(logging.FieldFile, input),
				logging.String(logging.FieldLanguage, string(result.Language)),
				logging.Int(logging.FieldBlocks, result.Validation.TotalBlocks),
				logging.Int(logging.FieldViolations, len(result.Validation.Violations)),
				logging.String(logging.FieldRunID, runID),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Language: %s\n", result.Language.DisplayName())
			fmt.Fprintf(out, "Blocks: %d", result.Validation.TotalBlocks)
			if result.SDHStats.RemovedBlocks > 0 || result.SDHStats.CleanedBlocks > 0 {
				fmt.Fprintf(out, " (%d SDH blocks removed, %d cleaned)", result.SDHStats.RemovedBlocks, result.SDHStats.CleanedBlocks)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Compliance: %.1f%%\n", result.Validation.ComplianceRate())
			fmt.Fprintf(out, "Wrote %s\n", outcome.OutputPath)
			if outcome.ReportPath != "" {
				fmt.Fprintf(out, "Wrote violation report %s\n", outcome.ReportPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: input name with the configured suffix)")
	cmd.Flags().BoolVar(&violations, "violations", false, "Write a violation report SRT next to the input")
	return cmd
}
