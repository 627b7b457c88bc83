package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weft/internal/linker"
)

func newLinkCommand(cmdCtx *commandContext) *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "link SOURCE TARGET",
		Short: "Hardlink a single file to a destination path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if strategy == "" {
				strategy = cfg.Library.ConflictStrategy
			}

			logger, _, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			engine := linker.New(logger, cfg.Library.PathMax)
			final, err := engine.Resolve(args[0], args[1], strategy)
			if err != nil {
				return fmt.Errorf("link failed (%s): %w", linker.Kind(err), err)
			}
			if final == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s already exists\n", args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linked %s -> %s\n", args[0], final)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Conflict strategy: skip, overwrite, or rename")

	return cmd
}
