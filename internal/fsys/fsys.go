// Package fsys is the filesystem layer the build engine is written against.
package fsys

import (
	"os"
	"sort"
)

// EntryType discriminates directory entries.
type EntryType int

const (
	EntryOther EntryType = iota
	EntryFile
	EntryDir
)

// Entry is one name from a directory listing.
type Entry struct {
	Name string
	Type EntryType
}

// IsDir reports whether the entry is a real directory that may be descended
// into. The "." and ".." self/parent references never qualify.
func (e Entry) IsDir() bool {
	return e.Type == EntryDir && e.Name != "." && e.Name != ".."
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool {
	return e.Type == EntryFile
}

// FS abstracts filesystem operations for testing.
type FS interface {
	ReadDir(dir string) ([]Entry, error)
	Stat(path string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(path string) error
}

// OSFS implements FS using the real operating system filesystem.
// Symlinks are reported as EntryOther and are never followed.
type OSFS struct{}

func (OSFS) ReadDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		typ := EntryOther
		switch {
		case de.Type().IsDir():
			typ = EntryDir
		case de.Type().IsRegular():
			typ = EntryFile
		}
		entries = append(entries, Entry{Name: de.Name(), Type: typ})
	}
	return entries, nil
}

func (OSFS) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSFS) Rename(oldpath, newpath string) error  { return os.Rename(oldpath, newpath) }
func (OSFS) Remove(path string) error              { return os.Remove(path) }

// SortEntries orders entries by name in place.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
