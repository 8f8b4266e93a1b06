// Package buildtool provides the public Go library API for buildtool.
//
// A Client builds a nested C source tree into one executable: every
// subdirectory with sources becomes a static archive at the root, and the
// root objects are linked with those archives.
//
// # Basic Usage
//
//	client, err := buildtool.New(buildtool.Options{Root: "/path/to/project"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Preview the archives and link inputs
//	plan, err := client.Plan(ctx)
//
//	// Compile, archive, link, and clean up
//	result, err := client.Build(ctx)
package buildtool

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Christopher101112/build-tool/internal/config"
	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/fsys"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// Builder runs the full walk, link and cleanup pipeline.
type Builder interface {
	Build(ctx context.Context) (*BuildResult, error)
}

// Cleaner removes intermediate objects and archives.
type Cleaner interface {
	Clean(ctx context.Context) (*CleanResult, error)
}

// Planner reports what a build would do without running any tool.
type Planner interface {
	Plan(ctx context.Context) (*Plan, error)
}

// Options configures a buildtool client.
type Options struct {
	// Root is the build root. Default: the current directory.
	Root string

	// ConfigPath is the project config file. Default: <Root>/buildtool.yaml.
	// A missing file means zero configuration.
	ConfigPath string

	// NoInherit skips the system and user config layers.
	NoInherit bool

	// Toolchain overrides the cc/ar toolchain described by the config.
	Toolchain Toolchain

	// OnFailure, if set, is called for every non-fatal failure as it happens.
	OnFailure func(*StepError)
}

// Client is the main entry point for the buildtool library.
// It implements Builder, Cleaner, and Planner.
type Client struct {
	root      string
	cfg       *config.Config
	toolchain Toolchain
	onFailure engine.FailureFunc
}

// New creates a Client, loading the layered configuration for the root.
func New(opts Options) (*Client, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving build root: %w", err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(abs, config.FileName)
	}
	res, err := config.LoadLayered(config.DiscoverOptions{
		ProjectPath: cfgPath,
		NoInherit:   opts.NoInherit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tc := opts.Toolchain
	if tc == nil {
		tc = &toolchain.GCC{
			Compiler: res.Config.CompilerName(),
			Archiver: res.Config.ArchiverName(),
			Timeout:  res.Config.ToolTimeout,
		}
	}

	return &Client{
		root:      abs,
		cfg:       res.Config,
		toolchain: tc,
		onFailure: opts.OnFailure,
	}, nil
}

// Root returns the absolute build root.
func (c *Client) Root() string {
	return c.root
}

// Output returns the absolute path of the executable a build produces.
func (c *Client) Output() string {
	return filepath.Join(c.root, c.cfg.OutputName())
}

// Build compiles, archives, links and, unless keep_intermediates is set,
// cleans up. A non-nil error means a fatal failure aborted the build.
func (c *Client) Build(ctx context.Context) (*BuildResult, error) {
	p := &engine.Pipeline{
		Root:      c.root,
		FS:        fsys.OSFS{},
		Toolchain: c.toolchain,
		Output:    c.cfg.OutputName(),
		Exclude:   c.cfg.Excluded(),
		Keep:      c.cfg.Keep(),
		Unsorted:  !c.cfg.Sorted(),
		OnFailure: c.onFailure,
	}
	return p.Run(ctx)
}

// Clean removes intermediate objects and root archives.
func (c *Client) Clean(ctx context.Context) (*CleanResult, error) {
	cl := &engine.Cleaner{
		Root:      c.root,
		FS:        fsys.OSFS{},
		Output:    c.cfg.OutputName(),
		Unsorted:  !c.cfg.Sorted(),
		OnFailure: c.onFailure,
	}
	return cl.Clean(ctx)
}

// Plan reports what Build would do.
func (c *Client) Plan(ctx context.Context) (*Plan, error) {
	pl := &engine.Planner{
		Root:     c.root,
		FS:       fsys.OSFS{},
		Output:   c.cfg.OutputName(),
		Exclude:  c.cfg.Excluded(),
		Unsorted: !c.cfg.Sorted(),
	}
	return pl.Plan(ctx)
}
