package engine

import (
	"context"
	"path/filepath"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/sandbox"
)

// Cleaner removes intermediate artifacts: objects everywhere, archives at
// Root only. Sources, the executable and unrelated files are left alone.
type Cleaner struct {
	Root   string
	FS     fsys.FS
	Output string // never removed, even if misnamed

	Unsorted bool

	OnFailure FailureFunc
}

// Clean traverses the tree independently of any earlier walk. Removal
// failures are recorded; the only returned error is context cancellation.
func (c *Cleaner) Clean(ctx context.Context) (*CleanResult, error) {
	result := &CleanResult{}
	root := filepath.Clean(c.Root)
	if err := c.clean(ctx, root, root, result); err != nil {
		return result, err
	}
	return result, nil
}

func (c *Cleaner) clean(ctx context.Context, root, dir string, result *CleanResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := listDir(c.FS, dir, !c.Unsorted)
	if err != nil {
		c.record(result, &StepError{Kind: KindDirectoryAccess, Path: dir, Err: err})
		return nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := c.clean(ctx, root, filepath.Join(dir, e.Name), result); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if !e.IsFile() || !c.removable(root, dir, e.Name) {
			continue
		}
		path := filepath.Join(dir, e.Name)
		if err := sandbox.Remove(c.FS, root, path); err != nil {
			c.record(result, &StepError{Kind: KindCleanup, Path: path, Err: err})
			continue
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		result.Removed = append(result.Removed, rel)
	}
	return nil
}

func (c *Cleaner) removable(root, dir, name string) bool {
	atRoot := dir == root
	if atRoot && c.Output != "" && name == c.Output {
		return false
	}
	switch classify.Classify(name) {
	case classify.Object:
		return true
	case classify.Archive:
		return atRoot
	}
	return false
}

func (c *Cleaner) record(result *CleanResult, err *StepError) {
	result.Errors = append(result.Errors, *err)
	c.OnFailure.notify(err)
}
