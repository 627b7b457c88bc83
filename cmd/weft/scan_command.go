package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"weft/internal/scan"
)

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan SOURCE_DIR",
		Short: "List the media files a process run would pick up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			files, err := scan.Directory(args[0], logger)
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "no media files found under %s\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(files))
			for _, file := range files {
				rows = append(rows, []string{
					file.Path,
					string(file.Kind),
					strconv.FormatInt(file.Size, 10),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Path", "Kind", "Bytes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d files\n", len(files))
			return nil
		},
	}
	return cmd
}
