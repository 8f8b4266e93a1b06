package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Christopher101112/build-tool/internal/config"
	"github.com/Christopher101112/build-tool/internal/output"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the configuration and toolchain",
	Long: `Displays the buildtool version, the config chain with the status of each
layer, the resolved compiler and archiver, and the executable that a build
would produce.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := buildRoot()
		if err != nil {
			return err
		}
		res, err := loadConfig(root)
		if err != nil {
			// Show the chain even when a layer is broken.
			if res != nil {
				printChain(res.Layers)
			}
			return err
		}
		cfg := res.Config

		fmt.Printf("buildtool %s\n", version)
		fmt.Printf("  build root:    %s\n", root)
		printChain(res.Layers)
		fmt.Printf("  compiler:      %s\n", toolStatus(cfg.CompilerName()))
		fmt.Printf("  archiver:      %s\n", toolStatus(cfg.ArchiverName()))
		fmt.Printf("  output:        %s\n", outputStatus(filepath.Join(root, cfg.OutputName())))
		fmt.Printf("  exclude:       %v\n", cfg.Excluded())
		fmt.Printf("  sorted:        %v\n", cfg.Sorted())
		fmt.Printf("  keep:          %v\n", cfg.Keep())
		if cfg.ToolTimeout > 0 {
			fmt.Printf("  tool timeout:  %s\n", cfg.ToolTimeout)
		}
		return nil
	},
}

func printChain(layers []config.ConfigLayerInfo) {
	fmt.Println("  config chain:")
	for _, layer := range layers {
		status := "not found"
		switch {
		case layer.Err != nil:
			status = "error"
		case layer.Loaded:
			status = "loaded"
		}
		fmt.Printf("    %-10s %s (%s)\n", string(layer.Level)+":", layer.Path, status)
	}
}

// toolStatus resolves name on PATH.
func toolStatus(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return name + " (not found)"
	}
	return path
}

func outputStatus(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return path + " (not built)"
	}
	return fmt.Sprintf("%s (%s)", path, output.Filesize(fi.Size()))
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
