package output

import (
	"strings"
	"testing"
)

func TestVisualFileTree(t *testing.T) {
	tree := NewVisualFileTree(".")
	tree.InsertDir("sub2", "sub2/ -> sub2.a")
	tree.InsertPath("a.c", "")
	tree.InsertPath("sub2/c.c", "")
	tree.InsertPath("sub2/sub2sub/d.c", "")

	got := tree.Render()
	for _, want := range []string{"sub2/ -> sub2.a", "a.c", "c.c", "sub2sub/", "d.c"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered tree missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "sub2/") != 1 {
		t.Errorf("directory inserted twice:\n%s", got)
	}
	if !strings.HasPrefix(got, ".\n") {
		t.Errorf("tree should start with the root label:\n%s", got)
	}
}

func TestIndent(t *testing.T) {
	if got := Indent(2, "a\nb"); got != "  a\n  b" {
		t.Errorf("Indent = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if Plural(1, "archive", "archives") != "archive" {
		t.Error("singular")
	}
	if Plural([]string{"a", "b"}, "archive", "archives") != "archives" {
		t.Error("plural slice")
	}
	if Plural(0, "archive", "archives") != "archives" {
		t.Error("zero")
	}
}

func TestFilesize(t *testing.T) {
	tests := map[int64]string{
		10:      "10 bytes",
		4096:    "4 KiB (4096 bytes)",
		3 << 20: "3.0 MiB (3145728 bytes)",
	}
	for in, want := range tests {
		if got := Filesize(in); got != want {
			t.Errorf("Filesize(%d) = %q, want %q", in, got, want)
		}
	}
}
