package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Christopher101112/build-tool/internal/classify"
)

// Load reads and validates a buildtool.yaml configuration file.
func Load(path string) (*Config, error) {
	cfg, err := parse(path)
	if err != nil {
		return nil, err
	}
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return cfg, nil
}

func parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg as YAML atomically using a temp file and rename.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp config %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp config to %s: %w", path, err)
	}
	return nil
}

// LayeredResult is the outcome of loading every discovered config layer.
type LayeredResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadLayered loads every layer returned by DiscoverPaths, skipping missing
// files, merges them from lowest to highest precedence, and validates the
// result. With no files at all, the result is Default().
func LoadLayered(opts DiscoverOptions) (*LayeredResult, error) {
	result := &LayeredResult{Layers: DiscoverPaths(opts)}

	var loaded []*Config
	for i := range result.Layers {
		layer := &result.Layers[i]
		cfg, err := parse(layer.Path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			layer.Err = err
			return result, err
		}
		layer.Loaded = true
		loaded = append(loaded, cfg)
	}

	merged := Default()
	if len(loaded) > 0 {
		var err error
		merged, err = MergeAll(loaded)
		if err != nil {
			return result, err
		}
		if merged.Version == 0 {
			merged.Version = 1
		}
	}

	if errs := Validate(merged); len(errs) > 0 {
		return result, &ValidationError{Errors: errs}
	}
	result.Config = merged
	return result, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d; only version 1 is supported", cfg.Version))
	}

	if cfg.Output != "" {
		switch {
		case strings.ContainsAny(cfg.Output, `/\`):
			errs = append(errs, fmt.Sprintf("output '%s': must be a file name, not a path", cfg.Output))
		case cfg.Output == "." || cfg.Output == "..":
			errs = append(errs, fmt.Sprintf("output '%s': not a valid file name", cfg.Output))
		case classify.Classify(cfg.Output) != classify.Other:
			errs = append(errs, fmt.Sprintf("output '%s': ends in a %s extension and would be removed by cleanup", cfg.Output, classify.Classify(cfg.Output)))
		}
	}

	for i, name := range cfg.Exclude {
		prefix := fmt.Sprintf("exclude[%d]", i)
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, fmt.Sprintf("%s: empty name", prefix))
		case strings.ContainsAny(name, `/\`):
			errs = append(errs, fmt.Sprintf("%s: '%s' must be a root-level file name, not a path", prefix, name))
		}
	}

	for _, tool := range []struct{ field, value string }{
		{"compiler", cfg.Compiler},
		{"archiver", cfg.Archiver},
	} {
		if msg := checkToolName(tool.value); msg != "" {
			errs = append(errs, fmt.Sprintf("%s '%s': %s", tool.field, tool.value, msg))
		}
	}

	if cfg.ToolTimeout < 0 {
		errs = append(errs, fmt.Sprintf("tool_timeout %s: must not be negative", cfg.ToolTimeout))
	}

	return errs
}

// checkToolName rejects values that look like a command line. Whitespace is
// allowed in the directories of a path ("/opt/gcc 13/bin/gcc") but not in the
// binary name itself.
func checkToolName(name string) string {
	base := name[strings.LastIndexAny(name, `/\`)+1:]
	switch {
	case strings.TrimSpace(name) != name:
		return "surrounding whitespace; flags are not supported, name the binary only"
	case strings.ContainsAny(base, " \t"):
		return "contains whitespace; flags are not supported, name the binary only"
	}
	return ""
}
