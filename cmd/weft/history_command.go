package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"weft/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "Show recorded batch runs, or one run's per-file outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled (set history.enabled = true)")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunFiles(cmd, store, args[0])
			}
			return printRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}

func printRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.OutputDir,
			run.Strategy,
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Run", "Started", "Library", "Strategy", "Total", "OK", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
	return nil
}

func printRunFiles(cmd *cobra.Command, store *history.Store, runID string) error {
	files, err := store.Files(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "no files recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		status := "ok"
		if !file.Succeeded {
			status = "failed"
		}
		rows = append(rows, []string{file.Source, status, file.Message})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Source", "Status", "Reason"}, rows, nil))
	return nil
}
