package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FileName is the name of the optional per-project config file, looked up
// in the build root.
const FileName = "buildtool.yaml"

const configDirName = "buildtool"

// ConfigLevel names where a config layer comes from.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo is one candidate config file. Loaded is set once the file
// was read; Err is set if it exists but could not be parsed.
type ConfigLayerInfo struct {
	Err    error
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions selects the config files a build reads.
//
// A machine-wide layer lets an administrator point every build at another
// compiler, a user layer holds personal defaults such as keep_intermediates,
// and the project layer travels with the source tree. --config only replaces
// the project layer's path; the machine and user layers still apply unless
// NoInherit is set, so a build behaves the same whether its config file sits
// in the tree or elsewhere.
type DiscoverOptions struct {
	// ProjectPath is the project layer, normally <root>/buildtool.yaml or the
	// --config value.
	ProjectPath string

	// SystemConfigPath and UserConfigPath replace the OS default locations.
	// A nonexistent path disables the layer.
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit reads the project layer only, for reproducible builds that
	// must not depend on the machine they run on.
	NoInherit bool
}

// DiscoverPaths lists the config layers to try, lowest precedence first.
// A file reachable from two levels is only read once, at the lower level.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	candidates := []ConfigLayerInfo{{Level: LevelProject, Path: opts.ProjectPath}}
	if !opts.NoInherit {
		candidates = []ConfigLayerInfo{
			{Level: LevelSystem, Path: orDefault(opts.SystemConfigPath, defaultSystemConfigPath)},
			{Level: LevelUser, Path: orDefault(opts.UserConfigPath, defaultUserConfigPath)},
			{Level: LevelProject, Path: opts.ProjectPath},
		}
	}

	var layers []ConfigLayerInfo
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Path == "" {
			continue
		}
		key, err := filepath.Abs(c.Path)
		if err != nil {
			key = c.Path
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		layers = append(layers, c)
	}
	return layers
}

func orDefault(path string, def func() string) string {
	if path != "" {
		return path
	}
	return def()
}

// defaultSystemConfigPath is /etc/buildtool/buildtool.yaml, or the
// ProgramData equivalent on Windows.
func defaultSystemConfigPath() string {
	if runtime.GOOS == "windows" {
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, FileName)
	}
	return filepath.Join("/etc", configDirName, FileName)
}

// defaultUserConfigPath is buildtool/buildtool.yaml under the user config
// directory, or empty when there is none (no HOME in a sandboxed build).
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, FileName)
}

// EnvNoInherit reports whether BUILDTOOL_NO_INHERIT asks for project-only
// configuration ("1" or "true", any case).
func EnvNoInherit() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("BUILDTOOL_NO_INHERIT")))
	return v == "1" || v == "true"
}
