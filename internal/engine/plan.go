package engine

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
)

// PlannedDir describes what a build would do in one directory.
type PlannedDir struct {
	Rel     string   // path relative to the root, "." for the root
	Sources []string // sources that would be compiled
	Archive string   // archive that would be produced, empty if none
}

// Plan is the dry-run view of a build.
type Plan struct {
	Root     string
	Dirs     []PlannedDir // pre-order
	Excluded []string     // root sources skipped by the exclusion list
	Objects  []string     // object names the linker would receive
	Archives []string     // archive names the linker would receive
	Output   string
	Errors   []StepError
}

// Planner walks the tree like Walker and Linker but never runs a tool.
type Planner struct {
	Root     string
	FS       fsys.FS
	Output   string
	Exclude  []string
	Unsorted bool
}

// Plan computes the build plan.
func (p *Planner) Plan(ctx context.Context) (*Plan, error) {
	root := filepath.Clean(p.Root)
	plan := &Plan{Root: root, Output: p.Output}
	if plan.Output == "" {
		plan.Output = DefaultOutput
	}

	st := &planState{plan: plan}
	if err := p.visit(ctx, root, root, st); err != nil {
		return plan, err
	}

	excluded := make(map[string]bool, len(p.Exclude))
	for _, name := range p.Exclude {
		excluded[name] = true
	}

	var rootObjects []string
	for _, src := range namesOf(st.rootEntries, classify.Source) {
		if excluded[src] {
			plan.Excluded = append(plan.Excluded, src)
			continue
		}
		plan.Dirs[0].Sources = append(plan.Dirs[0].Sources, src)
		rootObjects = append(rootObjects, classify.ObjectName(src))
	}

	plan.Objects = mergeNames(namesOf(st.rootEntries, classify.Object), rootObjects, true)
	plan.Archives = mergeNames(namesOf(st.rootEntries, classify.Archive), st.archives, true)
	return plan, nil
}

type planState struct {
	plan        *Plan
	rootEntries []fsys.Entry
	archives    []string
}

func (p *Planner) visit(ctx context.Context, root, dir string, st *planState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := listDir(p.FS, dir, !p.Unsorted)
	if err != nil {
		st.plan.Errors = append(st.plan.Errors, StepError{Kind: KindDirectoryAccess, Path: dir, Err: err})
		return nil
	}
	plan := st.plan

	rel, relErr := filepath.Rel(root, dir)
	if relErr != nil {
		rel = dir
	}
	idx := len(plan.Dirs)
	plan.Dirs = append(plan.Dirs, PlannedDir{Rel: rel})

	if dir == root {
		st.rootEntries = entries
	} else {
		sources := namesOf(entries, classify.Source)
		plan.Dirs[idx].Sources = sources
		if len(sources) > 0 {
			name := classify.ArchiveName(dir)
			plan.Dirs[idx].Archive = name
			st.archives = append(st.archives, name)
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := p.visit(ctx, root, filepath.Join(dir, e.Name), st); err != nil {
			return err
		}
	}
	return nil
}

// ArchiveDirs returns the relative paths of directories that would produce
// an archive, sorted.
func (pl *Plan) ArchiveDirs() []string {
	var dirs []string
	for _, d := range pl.Dirs {
		if d.Archive != "" {
			dirs = append(dirs, d.Rel)
		}
	}
	sort.Strings(dirs)
	return dirs
}
