package commands

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripallow/tripallow/internal/config"
	"github.com/tripallow/tripallow/internal/label"
	"github.com/tripallow/tripallow/internal/logging"
	"github.com/tripallow/tripallow/internal/report"
	"github.com/tripallow/tripallow/internal/runlog"
	"github.com/tripallow/tripallow/internal/settlement"
	"github.com/tripallow/tripallow/internal/sheet"
)

// ErrNothingToSave is returned when no row of the input produced a payout table.
var ErrNothingToSave = errors.New("nothing to save: no valid trips found")

type settleOptions struct {
	policy string
	out    string
	format string
	print  bool
}

func newSettleCommand(configPath *string) *cobra.Command {
	var opts settleOptions

	cmd := &cobra.Command{
		Use:   "settle <file>",
		Short: "Compute monthly travel allowances from a trip log (.xlsx or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(cmd, *configPath, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.policy, "policy", "", "payout policy (per_trip or per_half_day), overrides config")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: next to the input)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format (xlsx or csv), overrides config")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print each month's table")

	return cmd
}

func runSettle(cmd *cobra.Command, configPath, input string, opts settleOptions) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if opts.policy != "" {
		cfg.Policy = settlement.Policy(opts.policy)
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	tbl, err := sheet.DefaultRegistry().Load(input, sheet.ReadOptions{
		SkipRows: cfg.Input.HeaderRow,
		Sheet:    cfg.Input.Sheet,
	})
	if err != nil {
		return err
	}
	if err := checkDateColumn(tbl, cfg.Columns.DateMarker); err != nil {
		return err
	}

	engine, err := settlement.NewEngine(cfg.EngineOptions(), logger)
	if err != nil {
		return err
	}
	res, err := engine.Settle(tbl)
	if err != nil {
		return fmt.Errorf("settling %s: %w", filepath.Base(input), err)
	}
	if res.Empty() {
		return ErrNothingToSave
	}

	if problems := settlement.Validate(res, cfg.Rules); len(problems) > 0 {
		for _, p := range problems {
			logger.Error("Validation failed",
				zap.String("check", p.Check),
				zap.String("month", p.Month),
				zap.String("employee", p.Employee),
				zap.String("description", p.Description))
		}
		return fmt.Errorf("settlement failed %d validation checks, nothing written", len(problems))
	}

	w, err := sheet.NewWriter(cfg.Output.Format)
	if err != nil {
		return err
	}
	outPath := outputPath(input, opts.out, cfg.Output)
	if err := sheet.Save(outPath, w, report.Sheets(res)); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}
	logger.Info("Summary saved", zap.String("path", outPath), zap.String("format", w.Format()))

	out := cmd.OutOrStdout()
	if opts.print {
		if err := report.Render(out, res); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Saved %d month(s) for %d employee(s) to %s (total %s원)\n",
		len(res.Months), res.Employees(), outPath, report.Amount(res.Total()))

	if cfg.RunLog.Enabled {
		entry := runlog.Entry{
			ID:        uuid.NewString(),
			Timestamp: time.Now().UTC().Truncate(time.Second),
			Input:     input,
			Output:    outPath,
			Policy:    string(engine.Policy()),
			Months:    strings.Join(monthLabels(res), ";"),
			Employees: res.Employees(),
			Total:     res.Total(),
		}
		if err := runlog.Append(runLogPath(configPath, cfg.RunLog.Path), []runlog.Entry{entry}); err != nil {
			return fmt.Errorf("writing run log: %w", err)
		}
	}

	return nil
}

// checkDateColumn rejects sheets whose date column is missing or blank.
// An unmapped date column is not checked.
func checkDateColumn(t *sheet.Table, ref sheet.ColumnRef) error {
	if ref.IsZero() {
		return nil
	}
	idx, err := t.Resolve(ref)
	if err != nil {
		return fmt.Errorf("date column: %w", err)
	}
	for _, v := range t.Column(idx) {
		if strings.TrimSpace(v) != "" {
			return nil
		}
	}
	return fmt.Errorf("date %s holds no trip dates", ref)
}

// outputPath places the summary next to the input unless --out is given.
// The configured file name takes the extension of the output format.
func outputPath(input, flagOut string, cfg config.OutputConfig) string {
	if flagOut != "" {
		return flagOut
	}
	name := cfg.FileName
	ext := "." + strings.ToLower(cfg.Format)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
	}
	return filepath.Join(filepath.Dir(input), name)
}

// runLogPath resolves a relative run log path against the config directory.
func runLogPath(configPath, logPath string) string {
	if logPath == "" {
		logPath = runlog.DefaultPath
	}
	if filepath.IsAbs(logPath) {
		return logPath
	}
	return filepath.Join(filepath.Dir(configPath), logPath)
}

func monthLabels(res *settlement.Result) []string {
	labels := slices.Collect(maps.Keys(res.ByLabel()))
	label.SortLabels(labels)
	return labels
}
