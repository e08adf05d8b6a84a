package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmkit/cmkit/internal/config"
	"github.com/cmkit/cmkit/internal/exec"
	"github.com/cmkit/cmkit/internal/invoke"
	"github.com/cmkit/cmkit/internal/nodefs"
	"github.com/cmkit/cmkit/internal/run"
)

var (
	buildClean     bool
	buildSource    string
	buildDir       string
	buildGenerator string
	buildType      string
	buildPreload   string
	buildArgs      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build a CMake project",
	Long: `Build provisions the configured CMake release, runs the configure step,
discovers the actual build tool from the generated cache and executes the
declared build-tool steps in order.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Delete the build dir before configuring")
	buildCmd.Flags().StringVar(&buildSource, "source", "", "Source directory")
	buildCmd.Flags().StringVar(&buildDir, "build-dir", "", "Build directory")
	buildCmd.Flags().StringVarP(&buildGenerator, "generator", "G", "", "Build-script generator")
	buildCmd.Flags().StringVar(&buildType, "build-type", "", "CMAKE_BUILD_TYPE value")
	buildCmd.Flags().StringVarP(&buildPreload, "preload", "C", "", "Cache preload script")
	buildCmd.Flags().StringVar(&buildArgs, "args", "", "Extra configure arguments")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyBuildFlags(&cfg.Build)

	logger := newLogger()
	ctx := cmd.Context()

	cmakeBin, err := provision(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to provision cmake: %w", err)
	}
	logger.Debug("using cmake", "bin", cmakeBin)

	workspace, err := os.Getwd()
	if err != nil {
		return err
	}
	runner := &run.Runner{
		Backend:   exec.Local{},
		FS:        nodefs.NewLocal(nil),
		Logger:    logger,
		Workspace: workspace,
		Out:       os.Stdout,
	}
	return runner.Run(ctx, cfg.Build, cmakeBin, invoke.OSEnv())
}

func applyBuildFlags(b *config.Build) {
	if buildClean {
		b.CleanBuild = true
	}
	if buildSource != "" {
		b.SourceDir = buildSource
	}
	if buildDir != "" {
		b.WorkingDir = buildDir
	}
	if buildGenerator != "" {
		b.Generator = buildGenerator
	}
	if buildType != "" {
		b.BuildType = buildType
	}
	if buildPreload != "" {
		b.PreloadScript = buildPreload
	}
	if buildArgs != "" {
		b.Arguments = buildArgs
	}
}
