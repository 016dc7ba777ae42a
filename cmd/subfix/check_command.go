package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/logging"
	"subfix/internal/validate"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var violations bool

	cmd := &cobra.Command{
		Use:   "check <file.srt>",
		Short: "Validate a subtitle file without modifying it",
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
			outcome, err := runFile(opts, input, "", true, violations)
			if err != nil {
				return err
			}

			result := outcome.Result
			runID := recordHistory(cmd.Context(), logger, cfg, input, opts, result)
			logger.Info("checked subtitle file",
				logging.String(logging.FieldFile, input),
				logging.String(logging.FieldLanguage, string(result.Language)),
				logging.Int(logging.FieldBlocks, result.Validation.TotalBlocks),
				logging.Int(logging.FieldViolations, len(result.Validation.Violations)),
				logging.String(logging.FieldRunID, runID),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Language: %s\n", result.Language.DisplayName())
			fmt.Fprintf(out, "Compliance: %.1f%% (%d/%d blocks)\n",
				result.Validation.ComplianceRate(),
				result.Validation.CompliantBlocks,
				result.Validation.TotalBlocks,
			)
			if len(result.Validation.Violations) > 0 {
				fmt.Fprintln(out, renderViolationTable(result.Validation.Violations))
			}
			if outcome.ReportPath != "" {
				fmt.Fprintf(out, "Wrote violation report %s\n", outcome.ReportPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&violations, "violations", false, "Write a violation report SRT next to the input")
	return cmd
}

func renderViolationTable(violations []validate.Violation) string {
	headers := []string{"Block", "Line", "Rule", "Lang", "Actual", "Limit"}
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		line := "-"
		if v.Line > 0 {
			line = strconv.Itoa(v.Line)
		}
		rows = append(rows, []string{
			strconv.Itoa(v.BlockIndex),
			line,
			string(v.Kind),
			string(v.Language),
			formatMeasure(v.Actual),
			formatMeasure(v.Limit),
		})
	}
	return renderTable(headers, rows, 0, 1, 4, 5)
}
