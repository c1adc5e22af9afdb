package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tripallow/tripallow/internal/config"
	"github.com/tripallow/tripallow/internal/report"
	"github.com/tripallow/tripallow/internal/runlog"
)

func newLogCommand(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show past settle runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			entries, err := runlog.Read(runLogPath(*configPath, cfg.RunLog.Path))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No settle runs recorded.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tINPUT\tPOLICY\tMONTHS\tEMPLOYEES\tTOTAL")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04"),
					e.Input, e.Policy, e.Months, e.Employees, report.Amount(e.Total))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last n runs")

	return cmd
}
