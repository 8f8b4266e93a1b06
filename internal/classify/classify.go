// Package classify maps file names to build artifact kinds.
package classify

import (
	"path/filepath"
	"strings"
)

// Kind is the build role of a file, derived from its name alone.
type Kind int

const (
	Other Kind = iota
	Source
	Object
	Archive
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Object:
		return "object"
	case Archive:
		return "archive"
	default:
		return "other"
	}
}

// Classify inspects the final two characters of name.
// Names shorter than two characters are always Other.
func Classify(name string) Kind {
	if len(name) < 2 || name[len(name)-2] != '.' {
		return Other
	}
	switch name[len(name)-1] {
	case 'c':
		return Source
	case 'o':
		return Object
	case 'a':
		return Archive
	}
	return Other
}

// ObjectName returns the object file name the compiler produces for a source
// file name, e.g. "main.c" -> "main.o".
func ObjectName(source string) string {
	return strings.TrimSuffix(source, ".c") + ".o"
}

// ArchiveName returns the archive name for a directory path, built from the
// directory's base name, e.g. "/src/widgets" -> "widgets.a".
func ArchiveName(dir string) string {
	return filepath.Base(filepath.Clean(dir)) + ".a"
}
