package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeLegacyFields(t *testing.T) {
	tests := []struct {
		name string
		in   Build
		want Build
	}{
		{
			name: "legacy fields fold in",
			in:   Build{LegacyBuildDir: "out", LegacyCmakeArgs: "-DX=1"},
			want: Build{WorkingDir: "out", Arguments: "-DX=1", Generator: DefaultGenerator},
		},
		{
			name: "current fields win",
			in: Build{
				WorkingDir: "build", Arguments: "-DY=2",
				LegacyBuildDir: "out", LegacyCmakeArgs: "-DX=1",
				Generator: "Ninja",
			},
			want: Build{WorkingDir: "build", Arguments: "-DY=2", Generator: "Ninja"},
		},
		{
			name: "blank generator defaults",
			in:   Build{Generator: "  "},
			want: Build{Generator: DefaultGenerator},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			if got.WorkingDir != tt.want.WorkingDir {
				t.Errorf("WorkingDir = %q, want %q", got.WorkingDir, tt.want.WorkingDir)
			}
			if got.Arguments != tt.want.Arguments {
				t.Errorf("Arguments = %q, want %q", got.Arguments, tt.want.Arguments)
			}
			if got.Generator != tt.want.Generator {
				t.Errorf("Generator = %q, want %q", got.Generator, tt.want.Generator)
			}
			if got.LegacyBuildDir != "" || got.LegacyCmakeArgs != "" {
				t.Errorf("legacy fields not cleared: %q %q", got.LegacyBuildDir, got.LegacyCmakeArgs)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	const doc = `
catalog_url: https://example.com/cmake.json
install_root: /opt/cmkit
build:
  tool: "3.31.2"
  source_dir: src
  build_dir: out
  cmake_args: "-DCMAKE_VERBOSE_MAKEFILE=ON"
  build_type: Release
  clean_build: true
  steps:
    - args: all
      env: ["VERBOSE=1"]
    - with_cmake: true
      args: "--target install"
`
	path := filepath.Join(t.TempDir(), "cmkit.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CatalogURL != "https://example.com/cmake.json" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.InstallRoot != "/opt/cmkit" {
		t.Errorf("InstallRoot = %q", cfg.InstallRoot)
	}

	b := cfg.Build
	if b.Tool != "3.31.2" {
		t.Errorf("Tool = %q, want 3.31.2", b.Tool)
	}
	if b.SourceDir != "src" {
		t.Errorf("SourceDir = %q, want src", b.SourceDir)
	}
	if b.WorkingDir != "out" {
		t.Errorf("WorkingDir = %q, want out (folded from build_dir)", b.WorkingDir)
	}
	if b.Arguments != "-DCMAKE_VERBOSE_MAKEFILE=ON" {
		t.Errorf("Arguments = %q, want the folded cmake_args value", b.Arguments)
	}
	if b.Generator != DefaultGenerator {
		t.Errorf("Generator = %q, want the default", b.Generator)
	}
	if !b.CleanBuild {
		t.Error("CleanBuild = false, want true")
	}
	if len(b.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(b.Steps))
	}
	if b.Steps[0].Args != "all" || b.Steps[0].WithCmake {
		t.Errorf("step 1 = %+v", b.Steps[0])
	}
	if len(b.Steps[0].Env) != 1 || b.Steps[0].Env[0] != "VERBOSE=1" {
		t.Errorf("step 1 env = %v", b.Steps[0].Env)
	}
	if !b.Steps[1].WithCmake || b.Steps[1].Args != "--target install" {
		t.Errorf("step 2 = %+v", b.Steps[1])
	}
}

func TestLoadDefaults(t *testing.T) {
	const doc = "build: {}\n"
	path := filepath.Join(t.TempDir(), "cmkit.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Build.Tool != "cmake" {
		t.Errorf("Tool = %q, want cmake", cfg.Build.Tool)
	}
	if cfg.Build.SourceDir != "." {
		t.Errorf("SourceDir = %q, want .", cfg.Build.SourceDir)
	}
	if cfg.Build.Generator != DefaultGenerator {
		t.Errorf("Generator = %q, want %q", cfg.Build.Generator, DefaultGenerator)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of a missing explicit file succeeded, want error")
	}
}
