// Package toolchain invokes the external compiler, archiver and linker.
//
// Commands are always run as structured argument lists with the working
// directory set on the process, never through a shell. Quote and
// QuoteCommand exist only to display commands to the operator.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/Christopher101112/build-tool/internal/classify"
)

const (
	DefaultCompiler = "cc"
	DefaultArchiver = "ar"
)

// waitDelay bounds how long a cancelled tool's output is drained.
const waitDelay = 500 * time.Millisecond

// Toolchain turns sources into objects, objects into archives, and
// objects plus archives into an executable.
type Toolchain interface {
	// Compile compiles source (a file name inside dir) and returns the path
	// of the object it produced next to the source.
	Compile(ctx context.Context, dir, source string) (string, error)

	// Archive bundles objects (file names inside dir) into an archive called
	// name inside dir and returns its path.
	Archive(ctx context.Context, dir, name string, objects []string) (string, error)

	// Link links objects and archives (file names inside dir) into output.
	Link(ctx context.Context, dir string, objects, archives []string, output string) error
}

// ToolError reports a failed tool invocation.
type ToolError struct {
	Dir    string
	Argv   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed", QuoteCommand(e.Argv))
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg + ": " + e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// GCC drives a cc/ar compatible toolchain.
type GCC struct {
	Compiler string // default "cc"
	Archiver string // default "ar"

	// Timeout bounds every single invocation. Zero means no bound.
	Timeout time.Duration

	// Trace, if set, is called before each command runs.
	Trace func(dir string, argv []string)
}

func (g *GCC) Compile(ctx context.Context, dir, source string) (string, error) {
	argv := []string{g.compiler(), "-c", source}
	if err := g.run(ctx, dir, argv); err != nil {
		return "", err
	}
	return filepath.Join(dir, classify.ObjectName(source)), nil
}

func (g *GCC) Archive(ctx context.Context, dir, name string, objects []string) (string, error) {
	argv := append([]string{g.archiver(), "-rc", name}, objects...)
	if err := g.run(ctx, dir, argv); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Link places objects before archives so the archives can satisfy the
// objects' undefined symbols.
func (g *GCC) Link(ctx context.Context, dir string, objects, archives []string, output string) error {
	argv := make([]string, 0, len(objects)+len(archives)+3)
	argv = append(argv, g.compiler())
	argv = append(argv, objects...)
	argv = append(argv, archives...)
	argv = append(argv, "-o", output)
	return g.run(ctx, dir, argv)
}

func (g *GCC) run(ctx context.Context, dir string, argv []string) error {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	if g.Trace != nil {
		g.Trace(dir, argv)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	// cc forks cc1 and as, which inherit the output pipe. Kill them with the
	// driver and stop waiting on the pipe shortly after.
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return &ToolError{Dir: dir, Argv: argv, Output: out.String(), Err: err}
	}
	return nil
}

func (g *GCC) compiler() string {
	if g.Compiler == "" {
		return DefaultCompiler
	}
	return g.Compiler
}

func (g *GCC) archiver() string {
	if g.Archiver == "" {
		return DefaultArchiver
	}
	return g.Archiver
}

// Quote returns a shell-safe rendering of s.
func Quote(s string) string {
	return shellescape.Quote(s)
}

// QuoteCommand renders argv as a single shell-safe command line.
func QuoteCommand(argv []string) string {
	return shellescape.QuoteCommand(argv)
}
