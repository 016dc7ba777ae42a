package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var file string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent processing runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}

			store, err := history.Open(cmd.Context(), cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if file != "" {
				records, err = store.ForFile(cmd.Context(), file, limit)
			} else {
				records, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&file, "file", "", "Only show runs for this file")
	return cmd
}

func renderHistoryTable(records []history.Record) string {
	headers := []string{"When", "File", "Lang", "SDH", "Blocks", "Removed", "Char", "Speed", "Compliance"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			rec.File,
			rec.Language,
			yesNo(rec.SDHMode),
			strconv.Itoa(rec.TotalBlocks),
			strconv.Itoa(rec.RemovedBlocks),
			strconv.Itoa(rec.CharViolations),
			strconv.Itoa(rec.SpeedViolations),
			fmt.Sprintf("%.1f%%", rec.ComplianceRate),
		})
	}
	return renderTable(headers, rows, 4, 5, 6, 7, 8)
}
