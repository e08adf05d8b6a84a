// Package config loads the declarative description of a build run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultGenerator is used when a run does not name a generator.
const DefaultGenerator = "Unix Makefiles"

// ToolStep is one user-declared build-tool invocation. Steps run in
// declaration order; a failing step halts the ones after it.
type ToolStep struct {
	// WithCmake routes the step through "<tool> --build <dir>" instead of
	// calling the discovered build tool directly.
	WithCmake bool `mapstructure:"with_cmake"`
	// Args is the raw argument string, tokenized at run time.
	Args string `mapstructure:"args"`
	// Env holds step-local KEY=VALUE overrides.
	Env []string `mapstructure:"env"`
}

// Build describes one build run.
type Build struct {
	Tool          string     `mapstructure:"tool"`
	SourceDir     string     `mapstructure:"source_dir"`
	WorkingDir    string     `mapstructure:"working_dir"`
	Generator     string     `mapstructure:"generator"`
	BuildType     string     `mapstructure:"build_type"`
	PreloadScript string     `mapstructure:"preload_script"`
	Arguments     string     `mapstructure:"arguments"`
	CleanBuild    bool       `mapstructure:"clean_build"`
	Steps         []ToolStep `mapstructure:"steps"`

	// Pre-nested-layout field names, folded into the current ones by
	// normalize right after decode.
	LegacyBuildDir  string `mapstructure:"build_dir"`
	LegacyCmakeArgs string `mapstructure:"cmake_args"`
}

// Config is the full cmkit configuration.
type Config struct {
	CatalogURL  string `mapstructure:"catalog_url"`
	InstallRoot string `mapstructure:"install_root"`
	Build       Build  `mapstructure:"build"`
}

// DefaultInstallRoot returns where tools are installed when the config
// does not say: <user cache dir>/cmkit/tools.
func DefaultInstallRoot() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "cmkit", "tools"), nil
}

// Load reads the configuration file at path (yaml or json; empty path
// loads cmkit.yaml from the current directory when present) and applies
// defaults and the legacy-field transform.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("build.generator", DefaultGenerator)
	v.SetDefault("build.source_dir", ".")
	v.SetDefault("build.tool", "cmake")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("cmkit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Build = normalize(cfg.Build)
	return &cfg, nil
}

// normalize folds legacy flat fields into the canonical struct. It runs
// exactly once, right after decode, before any logic sees the Build.
// Current-layout fields win over their legacy spellings.
func normalize(b Build) Build {
	if b.WorkingDir == "" && b.LegacyBuildDir != "" {
		b.WorkingDir = b.LegacyBuildDir
	}
	if b.Arguments == "" && b.LegacyCmakeArgs != "" {
		b.Arguments = b.LegacyCmakeArgs
	}
	b.LegacyBuildDir = ""
	b.LegacyCmakeArgs = ""
	if strings.TrimSpace(b.Generator) == "" {
		b.Generator = DefaultGenerator
	}
	return b
}
