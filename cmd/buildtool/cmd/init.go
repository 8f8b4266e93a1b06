package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the starter buildtool.yaml. Every setting is commented out
// so the file alone does not change the zero-configuration behavior.
const initTemplate = `# buildtool configuration
# Every field is optional; delete this file to return to the defaults.
version: 1

# Name of the executable produced at the top level.
# output: buildtool

# Compiler and archiver binaries (name on PATH or absolute path, no flags).
# compiler: cc
# archiver: ar

# Top-level sources that are never compiled.
# exclude:
#   - buildtool.c

# Process directory entries in name order.
# sort_entries: true

# Leave .o and .a files in place after linking.
# keep_intermediates: false

# Time limit for each compiler, archiver or linker run (0s = none).
# tool_timeout: 0s
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter buildtool.yaml configuration",
	Long: `Creates a buildtool.yaml file in the build root with every setting documented
and commented out. buildtool works without it; the file only exists to
override defaults.

Use --force to overwrite an existing configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := buildRoot()
		if err != nil {
			return err
		}
		outPath := projectConfigPath(root)
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Uncomment the settings you want to change")
		info("  2. Run 'buildtool plan' to preview the build")
		info("  3. Run 'buildtool' to build")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
