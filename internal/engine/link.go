package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Christopher101112/build-tool/internal/classify"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// DefaultOutput is the executable name used when none is configured.
const DefaultOutput = "buildtool"

// DefaultExclude lists root sources that belong to the build tool itself.
var DefaultExclude = []string{"buildtool.c"}

var errNothingToLink = errors.New("no objects or archives at the build root")

// Linker compiles the root's own sources and links every object and archive
// at Root into a single executable. It must run after the Walker returns.
type Linker struct {
	Root      string
	FS        fsys.FS
	Toolchain toolchain.Toolchain
	Output    string   // default DefaultOutput
	Exclude   []string // root source names never compiled

	Unsorted bool

	OnFailure FailureFunc
}

// Link returns an error only for a fatal root compile failure. Link failures
// are recorded in the result.
func (l *Linker) Link(ctx context.Context) (*LinkResult, error) {
	result := &LinkResult{}
	root := filepath.Clean(l.Root)
	output := l.output()

	if classify.Classify(output) != classify.Other {
		l.record(result, &StepError{
			Kind: KindLink,
			Path: filepath.Join(root, output),
			Err:  fmt.Errorf("output name %q looks like a build artifact", output),
		})
		return result, nil
	}

	entries, err := listDir(l.FS, root, !l.Unsorted)
	if err != nil {
		l.record(result, &StepError{Kind: KindDirectoryAccess, Path: root, Err: err})
		return result, nil
	}

	excluded := make(map[string]bool, len(l.Exclude))
	for _, name := range l.Exclude {
		excluded[name] = true
	}

	var compiled []string
	for _, src := range namesOf(entries, classify.Source) {
		if excluded[src] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		obj, err := compileSource(ctx, l.Toolchain, root, src)
		if err != nil {
			return result, err
		}
		result.Compiled = append(result.Compiled, obj)
		compiled = append(compiled, filepath.Base(obj))
	}

	result.Objects = mergeNames(namesOf(entries, classify.Object), compiled, !l.Unsorted)
	result.Archives = namesOf(entries, classify.Archive)

	if len(result.Objects) == 0 && len(result.Archives) == 0 {
		l.record(result, &StepError{Kind: KindLink, Path: filepath.Join(root, output), Err: errNothingToLink})
		return result, nil
	}

	if err := l.Toolchain.Link(ctx, root, result.Objects, result.Archives, output); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		l.record(result, &StepError{Kind: KindLink, Path: filepath.Join(root, output), Err: err})
		return result, nil
	}

	result.Output = filepath.Join(root, output)
	return result, nil
}

func (l *Linker) output() string {
	if l.Output == "" {
		return DefaultOutput
	}
	return l.Output
}

func (l *Linker) record(result *LinkResult, err *StepError) {
	result.Errors = append(result.Errors, *err)
	l.OnFailure.notify(err)
}
