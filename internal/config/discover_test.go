package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDiscoverPathsAllLevels(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      "./buildtool.yaml",
		SystemConfigPath: "/etc/buildtool/buildtool.yaml",
		UserConfigPath:   "/home/user/.config/buildtool/buildtool.yaml",
	})

	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}

	want := []ConfigLevel{LevelSystem, LevelUser, LevelProject}
	for i, level := range want {
		if layers[i].Level != level {
			t.Errorf("layers[%d].Level = %q, want %q", i, layers[i].Level, level)
		}
	}
}

func TestDiscoverPathsDeduplication(t *testing.T) {
	samePath, err := filepath.Abs("./buildtool.yaml")
	if err != nil {
		t.Fatal(err)
	}

	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      samePath,
		SystemConfigPath: samePath,
		UserConfigPath:   "/other/path/buildtool.yaml",
	})

	if len(layers) != 2 {
		t.Fatalf("expected 2 layers (deduped), got %d", len(layers))
	}
	if layers[0].Level != LevelSystem || layers[1].Level != LevelUser {
		t.Errorf("levels = %q, %q", layers[0].Level, layers[1].Level)
	}
}

func TestDiscoverPathsNoInherit(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      "./buildtool.yaml",
		SystemConfigPath: "/etc/buildtool/buildtool.yaml",
		UserConfigPath:   "/home/user/.config/buildtool/buildtool.yaml",
		NoInherit:        true,
	})

	if len(layers) != 1 {
		t.Fatalf("expected only the project layer, got %d", len(layers))
	}
	if layers[0].Level != LevelProject {
		t.Errorf("level = %q", layers[0].Level)
	}
}

func TestDefaultSystemConfigPath(t *testing.T) {
	p := defaultSystemConfigPath()
	if p == "" {
		t.Fatal("system config path should not be empty")
	}

	switch runtime.GOOS {
	case "linux", "darwin":
		if p != "/etc/buildtool/buildtool.yaml" {
			t.Errorf("system path = %q, want /etc/buildtool/buildtool.yaml", p)
		}
	case "windows":
		if !filepath.IsAbs(p) {
			t.Errorf("system path should be absolute on Windows, got %q", p)
		}
	}
}

func TestDefaultUserConfigPath(t *testing.T) {
	p := defaultUserConfigPath()
	if p == "" {
		t.Skip("os.UserConfigDir() not available")
	}
	if !filepath.IsAbs(p) {
		t.Errorf("user path should be absolute, got %q", p)
	}
}

func TestEnvNoInherit(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"0", false},
		{"", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Setenv("BUILDTOOL_NO_INHERIT", tt.value)
		if got := EnvNoInherit(); got != tt.want {
			t.Errorf("EnvNoInherit with %q = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestDiscoverPathsExplicitProjectKeepsInheritedLayers(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      "/elsewhere/custom.yaml",
		SystemConfigPath: "/etc/buildtool/buildtool.yaml",
		UserConfigPath:   "/home/user/.config/buildtool/buildtool.yaml",
	})
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}
	if layers[2].Path != "/elsewhere/custom.yaml" {
		t.Errorf("project layer = %q", layers[2].Path)
	}
}

func TestDiscoverPathsSkipsEmptyProject(t *testing.T) {
	layers := DiscoverPaths(DiscoverOptions{NoInherit: true})
	if len(layers) != 0 {
		t.Errorf("layers = %v, want none", layers)
	}
}
