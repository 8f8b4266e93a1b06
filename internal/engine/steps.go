package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/sandbox"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// FailureFunc is notified of every non-fatal failure as it is recorded.
type FailureFunc func(err *StepError)

func (f FailureFunc) notify(err *StepError) {
	if f != nil {
		f(err)
	}
}

// listDir reads dir once into memory. The result is filtered as many times as
// needed by the caller instead of re-reading the directory.
func listDir(fs fsys.FS, dir string, sorted bool) ([]fsys.Entry, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	if sorted {
		fsys.SortEntries(entries)
	}
	return entries, nil
}

// namesOf returns the names of regular files in entries whose kind is k.
func namesOf(entries []fsys.Entry, k classify.Kind) []string {
	var names []string
	for _, e := range entries {
		if e.IsFile() && classify.Classify(e.Name) == k {
			names = append(names, e.Name)
		}
	}
	return names
}

// mergeNames appends extra names to names, dropping duplicates.
func mergeNames(names []string, extra []string, sorted bool) []string {
	seen := make(map[string]bool, len(names)+len(extra))
	var out []string
	for _, n := range append(append([]string{}, names...), extra...) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	if sorted {
		sort.Strings(out)
	}
	return out
}

// compileSource runs the compiler on one source. Failures are always fatal.
func compileSource(ctx context.Context, tc toolchain.Toolchain, dir, name string) (string, error) {
	obj, err := tc.Compile(ctx, dir, name)
	if err != nil {
		return "", &StepError{Kind: KindCompile, Path: filepath.Join(dir, name), Err: err}
	}
	return obj, nil
}

// archiveDir bundles objects in dir into <base(dir)>.a and moves the archive
// to root.
func archiveDir(ctx context.Context, tc toolchain.Toolchain, fs fsys.FS, root, dir string, objects []string) (ArchiveAction, *StepError) {
	name := classify.ArchiveName(dir)
	built, err := tc.Archive(ctx, dir, name, objects)
	if err != nil {
		return ArchiveAction{}, &StepError{Kind: KindArchive, Path: filepath.Join(dir, name), Err: err}
	}

	dest := filepath.Join(root, name)
	if err := sandbox.Move(fs, root, built, dest); err != nil {
		return ArchiveAction{}, &StepError{
			Kind: KindRelocate,
			Path: built,
			Err:  fmt.Errorf("moving to %s: %w", dest, err),
		}
	}

	return ArchiveAction{Dir: dir, Name: name, Path: dest}, nil
}
