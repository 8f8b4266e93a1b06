package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/output"
)

// runBuild is the root command: walk, link, then clean up.
func runBuild(cmd *cobra.Command, args []string) error {
	root, err := buildRoot()
	if err != nil {
		return err
	}
	res, err := loadConfig(root)
	if err != nil {
		return err
	}
	cfg := res.Config

	p := &engine.Pipeline{
		Root:      root,
		FS:        fsys.OSFS{},
		Toolchain: newToolchain(cfg, root),
		Output:    cfg.OutputName(),
		Exclude:   cfg.Excluded(),
		Keep:      cfg.Keep(),
		Unsorted:  !cfg.Sorted(),
		OnPhase:   announcePhase,
		OnFailure: reportFailure,
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("build aborted: %w", err)
	}

	summarize(result)
	if !result.Link.Linked() {
		required("All processes completed, but %s was not produced.", cfg.OutputName())
		return nil
	}
	required("All processes completed. Use ./%s to run the executable.", cfg.OutputName())
	return nil
}

func announcePhase(ph engine.Phase) {
	switch ph {
	case engine.PhaseWalk:
		info("Entering directory subsystem...")
		info("Creating .a, .o files...")
	case engine.PhaseLink:
		info("Linking...")
	case engine.PhaseCleanup:
		info("Cleaning up...")
	}
}

func summarize(result *engine.BuildResult) {
	if w := result.Walk; w != nil {
		detail("%d %s visited, %d %s compiled, %d %s created",
			len(w.Visited), output.Plural(w.Visited, "directory", "directories"),
			len(w.Compiled), output.Plural(w.Compiled, "source", "sources"),
			len(w.Archives), output.Plural(w.Archives, "archive", "archives"))
	}
	if l := result.Link; l != nil && l.Linked() {
		detail("linked %s from %d %s and %d %s",
			l.Output,
			len(l.Objects), output.Plural(l.Objects, "object", "objects"),
			len(l.Archives), output.Plural(l.Archives, "archive", "archives"))
	}
	if c := result.Clean; c != nil {
		for _, path := range c.Removed {
			detail("removed %s", path)
		}
	}
	if errs := result.Errors(); len(errs) > 0 {
		info("%d %s reported.", len(errs), output.Plural(errs, "failure", "failures"))
	}
}
