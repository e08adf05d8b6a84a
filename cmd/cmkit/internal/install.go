package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmkit/cmkit/internal/config"
)

var installCmd = &cobra.Command{
	Use:   "install [id]",
	Short: "Provision a CMake release and print its executable path",
	Long: `Install fetches, unpacks and normalizes the catalog archive matching the
local platform. Without an id the newest catalog entry is installed.
A release already installed from the same URL is left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Build.Tool = args[0]
	}

	bin, err := provision(cmd.Context(), cfg, newLogger())
	if err != nil {
		return err
	}
	fmt.Println(bin)
	return nil
}
