package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestLinkScenario(t *testing.T) {
	root := scenarioTree(t)
	tc := &fakeToolchain{}
	fs := newCountingFS()

	if _, err := (&Walker{Root: root, FS: fs, Toolchain: tc}).Walk(context.Background()); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	l := &Linker{Root: root, FS: fs, Toolchain: tc}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !result.Linked() {
		t.Fatalf("not linked: %v", result.Errors)
	}
	if result.Output != filepath.Join(root, "buildtool") {
		t.Errorf("output = %q", result.Output)
	}

	if !equalStrings(result.Objects, []string{"a.o"}) {
		t.Errorf("objects = %v, want [a.o]", result.Objects)
	}
	wantArchives := []string{"sub1.a", "sub2.a", "sub2sub.a"}
	if !equalStrings(result.Archives, wantArchives) {
		t.Errorf("archives = %v, want %v", result.Archives, wantArchives)
	}

	got := readLines(t, filepath.Join(root, "buildtool"))
	want := []string{"a.o", "sub1.a", "sub2.a", "sub2sub.a"}
	if !equalStrings(got, want) {
		t.Errorf("link inputs = %v, want %v", got, want)
	}
	if tc.links != 1 {
		t.Errorf("linker invoked %d times, want 1", tc.links)
	}
}

func TestLinkExcludesBuildToolSource(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c", "buildtool.c")

	tc := &fakeToolchain{}
	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: tc, Exclude: DefaultExclude}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	if !equalStrings(result.Objects, []string{"main.o"}) {
		t.Errorf("objects = %v, want [main.o]", result.Objects)
	}
	for _, c := range tc.compiled {
		if filepath.Base(c) == "buildtool.c" {
			t.Error("excluded source was compiled")
		}
	}
}

func TestLinkCustomOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c")

	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: &fakeToolchain{}, Output: "app"}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !exists(filepath.Join(root, "app")) {
		t.Error("custom output not produced")
	}
	if result.Output != filepath.Join(root, "app") {
		t.Errorf("output = %q", result.Output)
	}
}

func TestLinkRejectsArtifactLikeOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c")

	tc := &fakeToolchain{}
	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: tc, Output: "prog.o"}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if result.Linked() || len(result.Errors) != 1 || result.Errors[0].Kind != KindLink {
		t.Errorf("expected a link failure, got %+v", result)
	}
	if tc.links != 0 {
		t.Error("linker should not run")
	}
}

func TestLinkNothingToLink(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "README.md")

	tc := &fakeToolchain{}
	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: tc}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(&result.Errors[0], errNothingToLink) {
		t.Errorf("errors = %v, want nothing-to-link", result.Errors)
	}
	if tc.links != 0 {
		t.Error("linker should not run with no inputs")
	}
}

func TestLinkFailureIsRecorded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c")

	tc := &fakeToolchain{failLink: errors.New("undefined reference to `widget'")}
	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: tc}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("link failure must not be returned as fatal: %v", err)
	}
	if result.Linked() {
		t.Error("Linked() should be false")
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != KindLink {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestLinkRootCompileFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c")

	tc := &fakeToolchain{failCompile: map[string]bool{"main.c": true}}
	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: tc}
	_, err := l.Link(context.Background())
	if !IsFatal(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if tc.links != 0 {
		t.Error("linker should not run after a compile failure")
	}
}

func TestLinkIncludesPreexistingRootArtifacts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.c", "vendor.o", "libextra.a")

	l := &Linker{Root: root, FS: newCountingFS(), Toolchain: &fakeToolchain{}}
	result, err := l.Link(context.Background())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !equalStrings(result.Objects, []string{"main.o", "vendor.o"}) {
		t.Errorf("objects = %v", result.Objects)
	}
	if !equalStrings(result.Archives, []string{"libextra.a"}) {
		t.Errorf("archives = %v", result.Archives)
	}
}
