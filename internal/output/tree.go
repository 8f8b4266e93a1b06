package output

import (
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
)

// VisualFileTree renders slash-separated relative paths as a tree.
type VisualFileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func NewVisualFileTree(rootLabel string) VisualFileTree {
	return VisualFileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t VisualFileTree) getDir(dirPath string) gotree.Tree {
	return t.dirNode(dirPath, "")
}

func (t VisualFileTree) dirNode(dirPath string, label string) (dir gotree.Tree) {
	if dirPath == "." || dirPath == "" {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentDir := t.getDir(filepath.Dir(dirPath))
		if label == "" {
			label = filepath.Base(dirPath) + "/"
		}
		dir = parentDir.Add(label)
		t.dirs[dirPath] = dir
	}
	return
}

// InsertDir adds a directory node with a custom label. It has no effect if
// the directory is already present, so parents must be inserted first for
// their labels to apply.
func (t VisualFileTree) InsertDir(dirPath string, label string) {
	t.dirNode(filepath.Clean(dirPath), label)
}

// InsertPath adds a file node under its directory, creating directories as
// needed.
func (t VisualFileTree) InsertPath(filePath string, nodePrefix string) {
	file := filepath.Base(filePath)
	dir := t.getDir(filepath.Dir(filepath.Clean(filePath)))
	dir.Add(nodePrefix + file)
}

func (t VisualFileTree) Render() string {
	return t.tree.Print()
}
