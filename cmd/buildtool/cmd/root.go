package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath  string
	buildDir    string
	outputName  string
	keep        bool
	toolTimeout time.Duration
	verbose     bool
	quiet       bool
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "buildtool",
	Short: "Zero-configuration build for nested C source trees",
	Long: `buildtool compiles every C source below the current directory, bundles
each subdirectory's objects into a static archive named after the directory,
moves the archives to the top level, links them with the top-level objects
into one executable, and removes the intermediate objects and archives.

No build file is needed. An optional buildtool.yaml can rename the output,
pick another compiler or archiver, or exclude top-level sources.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildtool %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to project config file (default <dir>/buildtool.yaml)")
	rootCmd.PersistentFlags().StringVar(&buildDir, "dir", ".", "build root directory")
	rootCmd.PersistentFlags().StringVarP(&outputName, "output", "o", "", "executable name (default buildtool)")
	rootCmd.PersistentFlags().BoolVar(&keep, "keep", false, "keep intermediate objects and archives")
	rootCmd.PersistentFlags().DurationVar(&toolTimeout, "tool-timeout", 0, "time limit for each compiler, archiver or linker run (0 = none)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output, including every tool command")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Cancelling ctx stops the build at the next
// tool invocation or directory boundary.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorf("%s", formatError(err))
		return err
	}
	return nil
}
