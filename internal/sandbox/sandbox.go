// Package sandbox confines moves and deletions to the build root.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Christopher101112/build-tool/internal/fsys"
)

// ValidatePath checks if targetPath is safely within root.
// targetPath may be absolute or relative to root. Symlinks are resolved for
// the longest existing prefix. Returns the resolved absolute path.
func ValidatePath(root, targetPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving build root: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving build root symlinks: %w", err)
	}

	candidate := targetPath
	if filepath.IsAbs(candidate) {
		// Re-anchor absolute paths under the unresolved root onto the real root.
		rel, relErr := filepath.Rel(absRoot, filepath.Clean(candidate))
		if relErr != nil {
			return "", fmt.Errorf("path '%s' is outside the build root '%s'", targetPath, realRoot)
		}
		candidate = rel
	}
	candidate = filepath.Clean(filepath.Join(realRoot, candidate))

	resolved, err := resolveExistingPath(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	// Trailing separator avoids matching "root2" for "root".
	rootPrefix := realRoot + string(filepath.Separator)
	if resolved != realRoot && !strings.HasPrefix(resolved, rootPrefix) {
		return "", fmt.Errorf("path '%s' resolves to '%s' which is outside the build root '%s'", targetPath, resolved, realRoot)
	}

	return resolved, nil
}

// resolveExistingPath resolves symlinks for the longest existing prefix of the path,
// then appends the non-existing suffix.
func resolveExistingPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == path {
		return path, nil
	}

	resolvedDir, err := resolveExistingPath(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

// Move renames oldpath to newpath after checking both lie within root.
func Move(fs fsys.FS, root, oldpath, newpath string) error {
	from, err := ValidatePath(root, oldpath)
	if err != nil {
		return err
	}
	to, err := ValidatePath(root, newpath)
	if err != nil {
		return err
	}
	return fs.Rename(from, to)
}

// Remove deletes a file within root.
func Remove(fs fsys.FS, root, path string) error {
	resolved, err := ValidatePath(root, path)
	if err != nil {
		return err
	}
	return fs.Remove(resolved)
}
