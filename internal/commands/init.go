package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tripallow/tripallow/internal/config"
	"github.com/tripallow/tripallow/internal/settlement"
)

func newInitCommand() *cobra.Command {
	var policy string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default tripallow.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, settlement.Policy(policy), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tripallow project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", string(settlement.PolicyPerHalfDay), "payout policy (per_trip or per_half_day)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing tripallow.yaml")

	return cmd
}

func runInit(dir string, policy settlement.Policy, force bool) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory logs: %w", err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.Policy = policy
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
