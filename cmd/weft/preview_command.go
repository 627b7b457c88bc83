package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weft/internal/batch"
	"weft/internal/scan"
)

func newPreviewCommand(cmdCtx *commandContext) *cobra.Command {
	var outputDir string
	var seasonFolders bool
	var renames []string

	cmd := &cobra.Command{
		Use:   "preview SOURCE_DIR",
		Short: "Show the destinations a process run would use, without linking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Paths.LibraryDir
			}
			if !cmd.Flags().Changed("season-folders") {
				seasonFolders = cfg.Library.CreateSeasonFolders
			}

			logger, _, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}
			files, err := scan.Directory(args[0], logger)
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}

			renameMap, err := parseRenames(renames)
			if err != nil {
				return err
			}

			planned := batch.Preview(batch.Request{
				Sources:        scan.Paths(files),
				OutputDir:      outputDir,
				RenameMap:      renameMap,
				SeasonFolders:  seasonFolders,
				SeasonTemplate: cfg.Library.SeasonFolderTemplate,
			})

			out := cmd.OutOrStdout()
			if len(planned) == 0 {
				fmt.Fprintf(out, "no media files found under %s\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(planned))
			for _, plan := range planned {
				rows = append(rows, []string{plan.Source, plan.Target})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Source", "Target"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Library directory (defaults to paths.library_dir)")
	cmd.Flags().BoolVar(&seasonFolders, "season-folders", false, "Group nested targets into season folders")
	cmd.Flags().StringArrayVar(&renames, "rename", nil, "Per-file target as SOURCE=RELATIVE_PATH (repeatable)")

	return cmd
}
