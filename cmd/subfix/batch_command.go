package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var violations bool
	var checkOnly bool
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Process every subtitle file in a directory",
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

			dir := args[0]
			skip := []string{opts.outputSuffix, opts.violationSuffix}
			files, err := batch.Discover(dir, skip)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No subtitle files found in %s\n", dir)
				return nil
			}

			lock, err := batch.NewLock(cfg.Batch.LockFile)
			if err != nil {
				return err
			}
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			bopts := batch.Options{Workers: cfg.Batch.Workers}
			if cmd.Flags().Changed("workers") {
				bopts.Workers = workers
			}

			summary := batch.Run(cmd.Context(), logger, files, bopts, func(runCtx context.Context, file string) batch.FileResult {
				res := batch.FileResult{File: file}
				outcome, err := runFile(opts, file, "", checkOnly, violations)
				if err != nil {
					res.Err = err
					return res
				}
				result := outcome.Result
				res.Language = string(result.Language)
				res.TotalBlocks = result.Validation.TotalBlocks
				res.Violations = len(result.Validation.Violations)
				res.ComplianceRate = result.Validation.ComplianceRate()
				recordHistory(runCtx, logger, cfg, file, opts, result)
				return res
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderBatchTable(summary))
			fmt.Fprintf(out, "Processed %d file(s), %d failed, %d violation(s)\n",
				summary.Processed, summary.Failed, summary.TotalViolations)
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", summary.Failed)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&violations, "violations", false, "Write violation report SRTs next to the inputs")
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "Validate only; do not write processed copies")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default from config)")
	return cmd
}

func renderBatchTable(summary batch.Summary) string {
	headers := []string{"File", "Lang", "Blocks", "Violations", "Compliance", "Status"}
	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		if res.Err != nil {
			rows = append(rows, []string{res.File, "-", "-", "-", "-", res.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			res.File,
			res.Language,
			strconv.Itoa(res.TotalBlocks),
			strconv.Itoa(res.Violations),
			fmt.Sprintf("%.1f%%", res.ComplianceRate),
			"ok",
		})
	}
	return renderTable(headers, rows, 2, 3, 4)
}
