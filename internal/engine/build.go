package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// Pipeline orchestrates a full build: walk, link, then cleanup.
// Each phase finishes completely before the next one starts.
type Pipeline struct {
	Root      string
	FS        fsys.FS
	Toolchain toolchain.Toolchain
	Output    string
	Exclude   []string

	// Keep skips the cleanup phase, leaving objects and archives in place.
	Keep bool

	Unsorted bool

	OnPhase   func(Phase)
	OnFailure FailureFunc
}

// Run executes the pipeline. A non-nil error means the build was aborted by
// a fatal failure; the phases that ran are still reported in the result.
func (p *Pipeline) Run(ctx context.Context) (*BuildResult, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving build root: %w", err)
	}
	fs := p.FS
	if fs == nil {
		fs = fsys.OSFS{}
	}

	result := &BuildResult{}

	p.phase(PhaseWalk)
	walker := &Walker{Root: root, FS: fs, Toolchain: p.Toolchain, Unsorted: p.Unsorted, OnFailure: p.OnFailure}
	result.Walk, err = walker.Walk(ctx)
	if err != nil {
		return result, err
	}

	p.phase(PhaseLink)
	linker := &Linker{
		Root:      root,
		FS:        fs,
		Toolchain: p.Toolchain,
		Output:    p.Output,
		Exclude:   p.Exclude,
		Unsorted:  p.Unsorted,
		OnFailure: p.OnFailure,
	}
	result.Link, err = linker.Link(ctx)
	if err != nil {
		return result, err
	}

	if p.Keep {
		return result, nil
	}

	p.phase(PhaseCleanup)
	cleaner := &Cleaner{Root: root, FS: fs, Output: linker.output(), Unsorted: p.Unsorted, OnFailure: p.OnFailure}
	result.Clean, err = cleaner.Clean(ctx)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (p *Pipeline) phase(ph Phase) {
	if p.OnPhase != nil {
		p.OnPhase(ph)
	}
}
