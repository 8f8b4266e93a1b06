package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
)

// fakeToolchain writes marker files instead of running real tools. Archive
// and executable contents list their members, one per line.
type fakeToolchain struct {
	mu          sync.Mutex
	compiled    []string // "dir/source"
	archived    []string // "dir/name"
	links       int
	failCompile map[string]bool // source file name
	failArchive map[string]bool // archive name
	failLink    error
}

func (f *fakeToolchain) Compile(ctx context.Context, dir, source string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCompile[source] {
		return "", fmt.Errorf("%s: syntax error", source)
	}
	f.compiled = append(f.compiled, filepath.Join(dir, source))
	obj := filepath.Join(dir, classify.ObjectName(source))
	if err := os.WriteFile(obj, []byte("object of "+source+"\n"), 0644); err != nil {
		return "", err
	}
	return obj, nil
}

func (f *fakeToolchain) Archive(ctx context.Context, dir, name string, objects []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failArchive[name] {
		return "", fmt.Errorf("ar: cannot create %s", name)
	}
	f.archived = append(f.archived, filepath.Join(dir, name))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(objects, "\n")+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeToolchain) Link(ctx context.Context, dir string, objects, archives []string, output string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links++
	if f.failLink != nil {
		return f.failLink
	}
	members := append(append([]string{}, objects...), archives...)
	return os.WriteFile(filepath.Join(dir, output), []byte(strings.Join(members, "\n")+"\n"), 0755)
}

// countingFS counts ReadDir calls per directory and can fail selected ones.
type countingFS struct {
	fsys.OSFS
	mu      sync.Mutex
	reads   map[string]int
	failDir map[string]error
}

func newCountingFS() *countingFS {
	return &countingFS{reads: make(map[string]int), failDir: make(map[string]error)}
}

func (c *countingFS) ReadDir(dir string) ([]fsys.Entry, error) {
	c.mu.Lock()
	c.reads[dir]++
	err := c.failDir[dir]
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.OSFS.ReadDir(dir)
}

// writeTree creates files (paths relative to root, "/" separated). Paths
// ending in "/" create empty directories.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("// "+p+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// listTree returns every regular file under root, relative and sorted.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Fields(string(data))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// scenarioTree is root/{a.c, sub1/{b.c}, sub2/{c.c, sub2sub/{d.c}}}.
func scenarioTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, "a.c", "sub1/b.c", "sub2/c.c", "sub2/sub2sub/d.c")
	return root
}
