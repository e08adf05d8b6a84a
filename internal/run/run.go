// Package run sequences a build: prepare the build directory, configure,
// discover the actual build tool from the generated cache, then execute
// the declared build-tool steps in order, failing fast.
package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/cmkit/cmkit/internal/cmcache"
	"github.com/cmkit/cmkit/internal/config"
	"github.com/cmkit/cmkit/internal/exec"
	"github.com/cmkit/cmkit/internal/invoke"
	"github.com/cmkit/cmkit/internal/nodefs"
)

// EnvBuildTool is the variable that carries the discovered build tool
// (e.g. /usr/bin/make) forward to subsequent steps.
const EnvBuildTool = cmcache.BuildToolKey

// ExitError reports a pipeline stage whose process exited nonzero.
type ExitError struct {
	Stage string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Stage, e.Code)
}

// Runner drives one build run. A Runner has no internal parallelism:
// every process invocation blocks, and steps execute strictly in order
// because later steps depend on environment state set by earlier ones.
type Runner struct {
	Backend exec.Backend
	FS      nodefs.FS
	Logger  *log.Logger

	// Workspace anchors relative source and build directories.
	Workspace string

	// Out receives the combined output of every launched process.
	Out io.Writer

	// Export, when set, receives the discovered build tool so later,
	// unrelated stages of an environment-sharing host can see it.
	Export func(key, value string)
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

// Run executes the pipeline for b using the tool executable at cmakeBin,
// starting from the base environment. Cancellation of ctx terminates any
// in-flight process and surfaces as exec.ErrCanceled, distinct from
// ordinary step failure.
func (r *Runner) Run(ctx context.Context, b config.Build, cmakeBin string, base invoke.Env) error {
	expand := base.Expand

	sourceDir := r.resolve(expand(b.SourceDir))
	buildDir := sourceDir
	if b.WorkingDir != "" {
		buildDir = r.resolve(expand(b.WorkingDir))
	}

	// Prepare the build directory. Deleting is refused when the build
	// directory is the source directory: cleaning must never destroy
	// sources.
	if b.CleanBuild {
		if buildDir == sourceDir {
			r.logger().Warn("build dir equals source dir, refusing to clean", "dir", buildDir)
		} else {
			r.logger().Info("cleaning build dir", "dir", buildDir)
			if err := r.FS.RemoveAll(buildDir); err != nil {
				return fmt.Errorf("clean %s: %w", buildDir, err)
			}
		}
	}
	if err := r.FS.MkdirAll(buildDir); err != nil {
		return fmt.Errorf("create build dir %s: %w", buildDir, err)
	}

	// Configure.
	extra, err := invoke.Tokenize(expand(b.Arguments))
	if err != nil {
		return fmt.Errorf("tokenize arguments %q: %w", b.Arguments, err)
	}
	argv := invoke.ConfigureCall(cmakeBin, expand(b.Generator),
		expand(b.PreloadScript), expand(b.BuildType), extra, sourceDir)
	code, err := r.Backend.Run(ctx, argv, buildDir, base.Slice(), r.out())
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Stage: "configure", Code: code}
	}

	// Discover the actual build tool from the generated cache. Absence
	// is a warning, not an error: the pipeline proceeds with the
	// variable unresolved.
	env := base
	cachePath := filepath.Join(buildDir, cmcache.FileName)
	if data, err := r.FS.ReadFile(cachePath); err != nil {
		r.logger().Warn("cannot read cache file", "path", cachePath, "err", err)
	} else if tool, ok := cmcache.BuildTool(data); ok {
		env = env.Set(EnvBuildTool, tool)
		if r.Export != nil {
			r.Export(EnvBuildTool, tool)
		}
	} else {
		r.logger().Warn("no value for variable in cache file",
			"variable", EnvBuildTool, "path", cachePath)
	}

	// Build-tool steps, in declaration order, failing fast.
	for n, cfg := range b.Steps {
		step := &buildStep{cfg: cfg, cmakeBin: cmakeBin, buildDir: buildDir, expand: env.Expand}
		if err := r.RunStep(ctx, step, fmt.Sprintf("step %d", n+1), buildDir, env); err != nil {
			return err
		}
	}
	return nil
}

// RunStep executes a single step in dir with the step's environment
// overlay applied on top of env.
func (r *Runner) RunStep(ctx context.Context, step Step, stage, dir string, env invoke.Env) error {
	argv, err := step.Argv(env)
	if err != nil {
		return err
	}
	overlay, err := step.EnvOverlay(env)
	if err != nil {
		return err
	}
	stepEnv := env.Merge(overlay)

	code, err := r.Backend.Run(ctx, argv, dir, stepEnv.Slice(), r.out())
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Stage: stage, Code: code}
	}
	return nil
}

// resolve anchors a possibly relative path at the workspace.
func (r *Runner) resolve(path string) string {
	if path == "" {
		path = "."
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.Workspace, path)
}

// IsWindows reports whether the execution platform follows Windows path
// conventions. The local backend executes on the controller itself.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
