package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Christopher101112/build-tool/internal/config"
	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/output"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

var printer *output.Printer

// out returns the shared printer, creating it from the global flags on first
// use.
func out() *output.Printer {
	if printer == nil {
		printer = output.NewPrinter(output.ClassesFor(quiet, verbose), output.EscapesAllowed(noColor, os.Stdout))
	}
	return printer
}

// buildRoot returns the absolute build root.
func buildRoot() (string, error) {
	abs, err := filepath.Abs(buildDir)
	if err != nil {
		return "", fmt.Errorf("resolving build root: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("build root: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("build root %s is not a directory", abs)
	}
	return abs, nil
}

// projectConfigPath returns the project-level config file for root.
func projectConfigPath(root string) string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(root, config.FileName)
}

// loadConfig loads the layered configuration for root and applies command
// line overrides on top of it.
func loadConfig(root string) (*config.LayeredResult, error) {
	res, err := config.LoadLayered(config.DiscoverOptions{
		ProjectPath: projectConfigPath(root),
		NoInherit:   config.EnvNoInherit(),
	})
	if err != nil {
		return res, fmt.Errorf("loading config: %w", err)
	}

	cfg := res.Config
	if outputName != "" {
		cfg.Output = outputName
	}
	if keep {
		t := true
		cfg.KeepIntermediates = &t
	}
	if toolTimeout != 0 {
		cfg.ToolTimeout = toolTimeout
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return res, fmt.Errorf("invalid options: %w", &config.ValidationError{Errors: errs})
	}
	return res, nil
}

// newToolchain creates the cc/ar toolchain described by cfg. In verbose mode
// every command is echoed relative to root.
func newToolchain(cfg *config.Config, root string) *toolchain.GCC {
	return &toolchain.GCC{
		Compiler: cfg.CompilerName(),
		Archiver: cfg.ArchiverName(),
		Timeout:  cfg.ToolTimeout,
		Trace: func(dir string, argv []string) {
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				rel = dir
			}
			detail("%s %s", out().Dim("["+rel+"]"), toolchain.QuoteCommand(argv))
		},
	}
}

// reportFailure prints a non-fatal failure as soon as it is recorded.
func reportFailure(err *engine.StepError) {
	errorf("%s", formatError(err))
}

// formatError keeps the first line of err on the error prefix line and
// indents the rest, which is usually compiler or linker output.
func formatError(err error) string {
	head, rest, found := strings.Cut(strings.TrimRight(err.Error(), "\n"), "\n")
	if !found {
		return head
	}
	return head + "\n" + output.Indent(4, rest)
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	out().Out(output.Normal, format+"\n", args...)
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	out().Out(output.Verbose, "  "+format+"\n", args...)
}

// required prints a line even in quiet mode.
func required(format string, args ...any) {
	out().Out(output.Required, format+"\n", args...)
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	out().Out(output.Error, out().Alert("error:")+" "+format+"\n", args...)
}
