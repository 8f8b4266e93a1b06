package config

import "time"

// Config represents a buildtool.yaml file. Every field is optional: an empty
// Config describes the zero-configuration build.
type Config struct {
	Version int `yaml:"version"`

	// Output is the executable name produced at the build root.
	Output string `yaml:"output,omitempty"`

	// Compiler and Archiver name the tool binaries (path or name on PATH).
	Compiler string `yaml:"compiler,omitempty"`
	Archiver string `yaml:"archiver,omitempty"`

	// Exclude lists root-level source names that are never compiled.
	Exclude []string `yaml:"exclude,omitempty"`

	// SortEntries orders directory listings by name. Default true.
	SortEntries *bool `yaml:"sort_entries,omitempty"`

	// KeepIntermediates skips the cleanup pass. Default false.
	KeepIntermediates *bool `yaml:"keep_intermediates,omitempty"`

	// ToolTimeout bounds each compiler/archiver/linker invocation. Zero means
	// no bound.
	ToolTimeout time.Duration `yaml:"tool_timeout,omitempty"`
}

const (
	DefaultOutput   = "buildtool"
	DefaultCompiler = "cc"
	DefaultArchiver = "ar"
)

// DefaultExclude is the self-exclusion list applied when none is configured.
var DefaultExclude = []string{"buildtool.c"}

// Default returns the zero-configuration settings.
func Default() *Config {
	return &Config{Version: 1}
}

// OutputName returns the configured output or the default.
func (c *Config) OutputName() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}

// CompilerName returns the configured compiler or the default.
func (c *Config) CompilerName() string {
	if c.Compiler == "" {
		return DefaultCompiler
	}
	return c.Compiler
}

// ArchiverName returns the configured archiver or the default.
func (c *Config) ArchiverName() string {
	if c.Archiver == "" {
		return DefaultArchiver
	}
	return c.Archiver
}

// Excluded returns the exclusion list, falling back to DefaultExclude.
func (c *Config) Excluded() []string {
	if len(c.Exclude) == 0 {
		return DefaultExclude
	}
	return c.Exclude
}

// Sorted reports whether directory listings are sorted.
func (c *Config) Sorted() bool {
	return c.SortEntries == nil || *c.SortEntries
}

// Keep reports whether intermediates survive the build.
func (c *Config) Keep() bool {
	return c.KeepIntermediates != nil && *c.KeepIntermediates
}
