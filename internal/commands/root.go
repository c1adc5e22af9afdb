package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripallow/tripallow/internal/buildinfo"
	"github.com/tripallow/tripallow/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "tripallow",
		Short:   "Monthly travel-allowance settlement from trip logs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to tripallow.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSettleCommand(&configPath))
	rootCmd.AddCommand(newLogCommand(&configPath))

	return rootCmd
}
