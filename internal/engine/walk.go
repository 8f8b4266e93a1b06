package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// Walker performs the depth-first descent that compiles every non-root
// directory's sources and deposits one archive per such directory at Root.
type Walker struct {
	Root      string
	FS        fsys.FS
	Toolchain toolchain.Toolchain

	// Unsorted keeps the filesystem's listing order instead of sorting by name.
	Unsorted bool

	OnFailure FailureFunc
}

// Walk visits every directory under Root exactly once. Children are fully
// processed before their parent's own sources. The returned error is non-nil
// only for a fatal failure; the result is valid up to that point either way.
func (w *Walker) Walk(ctx context.Context) (*WalkResult, error) {
	result := &WalkResult{}
	root := filepath.Clean(w.Root)
	if err := w.descend(ctx, root, root, result); err != nil {
		return result, err
	}
	return result, nil
}

func (w *Walker) descend(ctx context.Context, root, dir string, result *WalkResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := listDir(w.FS, dir, !w.Unsorted)
	if err != nil {
		w.record(result, &StepError{Kind: KindDirectoryAccess, Path: dir, Err: err})
		return nil
	}
	result.Visited = append(result.Visited, dir)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.descend(ctx, root, filepath.Join(dir, e.Name), result); err != nil {
			return err
		}
	}

	// The root's own sources are compiled and linked by the Linker.
	if dir == root {
		return nil
	}

	var compiled []string
	for _, src := range namesOf(entries, classify.Source) {
		if err := ctx.Err(); err != nil {
			return err
		}
		obj, err := compileSource(ctx, w.Toolchain, dir, src)
		if err != nil {
			return err
		}
		result.Compiled = append(result.Compiled, obj)
		compiled = append(compiled, filepath.Base(obj))
	}
	if len(compiled) == 0 {
		return nil
	}

	objects := mergeNames(compiled, namesOf(entries, classify.Object), !w.Unsorted)
	action, serr := archiveDir(ctx, w.Toolchain, w.FS, root, dir, objects)
	if serr != nil {
		w.record(result, serr)
		return nil
	}

	for _, prev := range result.Archives {
		if prev.Name == action.Name {
			w.record(result, &StepError{
				Kind: KindRelocate,
				Path: action.Path,
				Err:  fmt.Errorf("archive from %s replaced the one built from %s", dir, prev.Dir),
			})
			break
		}
	}
	result.Archives = append(result.Archives, action)
	return nil
}

func (w *Walker) record(result *WalkResult, err *StepError) {
	result.Errors = append(result.Errors, *err)
	w.OnFailure.notify(err)
}
