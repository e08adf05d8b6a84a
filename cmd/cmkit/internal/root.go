package internal

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cmkit/cmkit/internal/exec"
)

var rootCmd = &cobra.Command{
	Use:   "cmkit",
	Short: "cmkit provisions the CMake suite and drives multi-stage builds",
	Long: `cmkit installs a CMake release for the current platform from a remote
catalog and runs configure, build-tool and suite-tool steps against it.`,
}

var (
	cfgFile string
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "Config file (default cmkit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, exec.ErrCanceled) {
		newLogger().Error("run canceled")
		os.Exit(130)
	}
	newLogger().Error("run failed", "err", err)
	os.Exit(1)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cmkit",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
