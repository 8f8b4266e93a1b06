package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/output"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove intermediate objects and archives",
	Long: `Removes every .o file in the tree and every .a file at the top level, as the
final phase of a build does. Sources, the executable and any other file are
left alone. Useful after a build run with --keep or one that was interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := buildRoot()
		if err != nil {
			return err
		}
		res, err := loadConfig(root)
		if err != nil {
			return err
		}
		cfg := res.Config

		c := &engine.Cleaner{
			Root:      root,
			FS:        fsys.OSFS{},
			Output:    cfg.OutputName(),
			Unsorted:  !cfg.Sorted(),
			OnFailure: reportFailure,
		}
		info("Cleaning up...")
		result, err := c.Clean(cmd.Context())
		if err != nil {
			return fmt.Errorf("clean aborted: %w", err)
		}

		for _, path := range result.Removed {
			detail("removed %s", path)
		}
		info("Removed %d %s, %d %s.",
			len(result.Removed), output.Plural(result.Removed, "file", "files"),
			len(result.Errors), output.Plural(result.Errors, "failure", "failures"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
