package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"weft/internal/batch"
	"weft/internal/history"
	"weft/internal/linker"
	"weft/internal/logging"
	"weft/internal/scan"
)

func newProcessCommand(cmdCtx *commandContext) *cobra.Command {
	var outputDir string
	var strategy string
	var seasonFolders bool
	var workers int
	var renames []string
	var checkOnly bool
	var showLog bool

	cmd := &cobra.Command{
		Use:   "process SOURCE_DIR",
		Short: "Scan a directory and link its media files into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			sourceDir := args[0]

			if outputDir == "" {
				outputDir = cfg.Paths.LibraryDir
			}
			if strategy == "" {
				strategy = cfg.Library.ConflictStrategy
			}
			if !cmd.Flags().Changed("season-folders") {
				seasonFolders = cfg.Library.CreateSeasonFolders
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Library.Workers
			}

			if checkOnly {
				capability := batch.CheckCapability(sourceDir, outputDir)
				fmt.Fprintln(cmd.OutOrStdout(), capability.String())
				if !capability.OK() {
					return fmt.Errorf("hardlink preflight failed")
				}
				return nil
			}

			logger, ring, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			files, err := scan.Directory(sourceDir, logger)
			if err != nil {
				return fmt.Errorf("scan %s: %w", sourceDir, err)
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no media files found under %s\n", sourceDir)
				return nil
			}

			renameMap, err := parseRenames(renames)
			if err != nil {
				return err
			}

			engine := linker.New(logger, cfg.Library.PathMax)
			orchestrator := batch.New(engine, logger)
			result, err := orchestrator.Run(cmd.Context(), batch.Request{
				Sources:        scan.Paths(files),
				OutputDir:      outputDir,
				RenameMap:      renameMap,
				SeasonFolders:  seasonFolders,
				SeasonTemplate: cfg.Library.SeasonFolderTemplate,
				Strategy:       strategy,
				Workers:        workers,
			})
			if err != nil {
				return err
			}

			if cfg.History.Enabled {
				if histErr := recordHistory(cmd, cfg.History.Path, result, outputDir, strategy); histErr != nil {
					logger.Warn("recording run history failed", logging.Error(histErr))
				}
			}

			printResult(cmd, result)
			if showLog {
				printRing(cmd, ring)
			}
			if !result.Success {
				return fmt.Errorf("%d of %d files failed", len(result.Failed), len(result.Processed)+len(result.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Library directory (defaults to paths.library_dir)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Conflict strategy: skip, overwrite, or rename")
	cmd.Flags().BoolVar(&seasonFolders, "season-folders", false, "Group nested targets into season folders")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 uses all CPUs)")
	cmd.Flags().StringArrayVar(&renames, "rename", nil, "Per-file target as SOURCE=RELATIVE_PATH (repeatable)")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only verify hardlink capability, then exit")
	cmd.Flags().BoolVar(&showLog, "show-log", false, "Print captured log entries after the run")

	return cmd
}

func parseRenames(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	renames := make(map[string]string, len(entries))
	for _, entry := range entries {
		source, target, found := strings.Cut(entry, "=")
		if !found || source == "" || target == "" {
			return nil, fmt.Errorf("invalid --rename entry %q: expected SOURCE=RELATIVE_PATH", entry)
		}
		renames[source] = target
	}
	return renames, nil
}

func recordHistory(cmd *cobra.Command, path string, result *batch.Result, outputDir, strategy string) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(cmd.Context(), result, outputDir, strategy)
}

func printResult(cmd *cobra.Command, result *batch.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %s in %s\n", result.RunID, result.Summary, result.Duration.Round(time.Millisecond))

	if len(result.Failed) == 0 {
		return
	}
	rows := make([][]string, 0, len(result.Failed))
	for _, failure := range result.Failed {
		rows = append(rows, []string{failure.Source, failure.Message})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Failed File", "Reason"}, rows, nil))
}

func printRing(cmd *cobra.Command, ring *logging.Ring) {
	out := cmd.OutOrStdout()
	for _, entry := range ring.Snapshot() {
		component := entry.Component
		if component == "" {
			component = "-"
		}
		fmt.Fprintf(out, "%s %s [%s] %s\n",
			entry.Time.Format("15:04:05.000"), entry.Level, component, entry.Message)
	}
}
