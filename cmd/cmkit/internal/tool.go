package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmkit/cmkit/internal/config"
	"github.com/cmkit/cmkit/internal/exec"
	"github.com/cmkit/cmkit/internal/invoke"
	"github.com/cmkit/cmkit/internal/nodefs"
	"github.com/cmkit/cmkit/internal/run"
)

// suiteTools are the tools of the CMake suite that can be invoked with
// arbitrary arguments.
var suiteTools = map[string]string{
	"cmake": "CMake",
	"cpack": "CPack",
	"ctest": "CTest",
}

var (
	toolArgs string
	toolDir  string
)

var toolCmd = &cobra.Command{
	Use:   "tool <cmake|cpack|ctest>",
	Short: "Invoke a tool of the CMake suite with arbitrary arguments",
	Long: `Tool runs cmake, cpack or ctest from the provisioned installation in the
working directory. The sibling tool is resolved next to the installed
cmake executable.`,
	Args: cobra.ExactArgs(1),
	RunE: runTool,
}

func init() {
	toolCmd.Flags().StringVar(&toolArgs, "args", "", "Arguments for the tool")
	toolCmd.Flags().StringVar(&toolDir, "dir", "", "Working directory")
	rootCmd.AddCommand(toolCmd)
}

func runTool(cmd *cobra.Command, args []string) error {
	id := args[0]
	if _, ok := suiteTools[id]; !ok {
		return fmt.Errorf("unknown suite tool %q", id)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx := cmd.Context()

	cmakeBin, err := provision(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to provision cmake: %w", err)
	}

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

	env := invoke.OSEnv()
	exe := id
	if run.IsWindows() {
		exe += ".exe"
	}
	step := &run.SuiteStep{
		PrimaryBin: cmakeBin,
		ToolID:     exe,
		Args:       toolArgs,
		Windows:    run.IsWindows(),
	}

	dir := workspace
	if toolDir != "" {
		dir = env.Expand(toolDir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(workspace, dir)
		}
	}
	if err := runner.FS.MkdirAll(dir); err != nil {
		return fmt.Errorf("create working dir %s: %w", dir, err)
	}
	return runner.RunStep(ctx, step, id, dir, env)
}
