package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Christopher101112/build-tool/internal/config"
	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/output"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a build would do without running any tool",
	Long: `Walks the tree and prints every directory with the sources it would compile
and the archive it would produce, followed by the final link command. Nothing
is compiled, written, moved or removed.`,
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

		pl := &engine.Planner{
			Root:     root,
			FS:       fsys.OSFS{},
			Output:   cfg.OutputName(),
			Exclude:  cfg.Excluded(),
			Unsorted: !cfg.Sorted(),
		}
		plan, err := pl.Plan(cmd.Context())
		if err != nil {
			return fmt.Errorf("plan aborted: %w", err)
		}
		for i := range plan.Errors {
			reportFailure(&plan.Errors[i])
		}

		required("%s", renderPlan(plan, out()))
		required("%s", toolchain.QuoteCommand(linkArgv(cfg, plan)))
		return nil
	},
}

// renderPlan draws the plan as a directory tree. Directories that produce an
// archive are labelled with it; excluded root sources are marked.
func renderPlan(plan *engine.Plan, p *output.Printer) string {
	tree := output.NewVisualFileTree(plan.Root)
	for _, d := range plan.Dirs {
		rel := filepath.ToSlash(d.Rel)
		if rel != "." {
			label := path.Base(rel) + "/"
			if d.Archive != "" {
				label += " -> " + d.Archive
			}
			tree.InsertDir(rel, label)
		}
		for _, src := range d.Sources {
			tree.InsertPath(path.Join(rel, src), "")
		}
	}
	for _, src := range plan.Excluded {
		tree.InsertPath(src, p.Dim("(excluded) "))
	}
	return strings.TrimRight(tree.Render(), "\n")
}

func linkArgv(cfg *config.Config, plan *engine.Plan) []string {
	argv := []string{cfg.CompilerName()}
	argv = append(argv, plan.Objects...)
	argv = append(argv, plan.Archives...)
	return append(argv, "-o", plan.Output)
}

func init() {
	rootCmd.AddCommand(planCmd)
}
