// Package settlement turns a trip sheet into per-employee monthly
// travel-allowance tables.
//
// The pipeline runs strictly forward: bind columns, strip repeated header
// rows, normalize fields, drop rows without an employee or a trip date,
// compute daily amounts under the configured Policy, and aggregate per month.
// Amounts stay plain integers; display formatting is left to the caller.
package settlement

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tripallow/tripallow/internal/model"
	"github.com/tripallow/tripallow/internal/normalize"
	"github.com/tripallow/tripallow/internal/sheet"
)

// Result is the outcome of one settlement run.
type Result struct {
	Months  []MonthResult // ascending by month, only months with trips
	Rows    int           // data rows read from the sheet
	Dropped DropStats
}

// Empty reports whether no month had any valid trip.
func (r *Result) Empty() bool {
	return r == nil || len(r.Months) == 0
}

// Month returns the result for month m.
func (r *Result) Month(m int) (MonthResult, bool) {
	for _, mr := range r.Months {
		if mr.Month == m {
			return mr, true
		}
	}
	return MonthResult{}, false
}

// ByLabel maps month labels ("3월") to their summary tables.
func (r *Result) ByLabel() map[string][]model.MonthlySummary {
	out := make(map[string][]model.MonthlySummary, len(r.Months))
	for _, mr := range r.Months {
		out[mr.Label] = mr.Summaries
	}
	return out
}

// Employees returns the number of distinct employees across all months.
func (r *Result) Employees() int {
	seen := make(map[string]struct{})
	for _, mr := range r.Months {
		for _, s := range mr.Summaries {
			seen[s.Employee] = struct{}{}
		}
	}
	return len(seen)
}

// Total returns the capped payout summed over all months.
func (r *Result) Total() int64 {
	var sum int64
	for _, mr := range r.Months {
		sum += mr.Total()
	}
	return sum
}

// Engine runs the settlement pipeline. It holds no state between runs.
type Engine struct {
	opts   Options
	norm   *normalize.Normalizer
	logger *zap.Logger
}

// NewEngine validates opts and returns an Engine. A nil logger discards logs.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if !opts.Policy.Valid() {
		return nil, fmt.Errorf("unknown policy %q", opts.Policy)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		opts:   opts,
		norm:   normalize.New(opts.VehicleToken),
		logger: logger,
	}, nil
}

// Policy returns the payout policy the engine applies.
func (e *Engine) Policy() Policy { return e.opts.Policy }

// Settle computes the monthly tables for t. On a missing required column it
// returns an empty Result together with a *MissingColumnError.
func (e *Engine) Settle(t *sheet.Table) (*Result, error) {
	records, err := Bind(t, e.opts.Columns)
	if err != nil {
		e.logger.Error("Cannot settle trip sheet", zap.Error(err))
		return &Result{}, err
	}

	res := &Result{Rows: len(records)}
	records, res.Dropped.HeaderRows = StripHeaderRows(records, e.opts.HeaderMarker)

	trips := make([]model.Trip, len(records))
	for i, rec := range records {
		trips[i] = e.norm.Normalize(rec)
	}

	valid, stats := Filter(trips)
	res.Dropped.MissingEmployee = stats.MissingEmployee
	res.Dropped.InvalidDate = stats.InvalidDate
	if e.logger.Core().Enabled(zap.DebugLevel) {
		for _, tr := range trips {
			if tr.Employee == "" || !tr.DateValid {
				e.logger.Debug("Dropped trip row",
					zap.Int("row", tr.Record.Row),
					zap.Bool("missing_employee", tr.Employee == ""),
					zap.String("trip_start", tr.Record.TripStart))
			}
		}
	}

	res.Months = Aggregate(e.opts.Policy, e.opts.Rules, valid)

	for _, mr := range res.Months {
		e.logger.Info("Month settled",
			zap.String("month", mr.Label),
			zap.Int("employees", len(mr.Summaries)),
			zap.Int64("total", mr.Total()))
	}
	e.logger.Info("Settlement complete",
		zap.String("policy", string(e.opts.Policy)),
		zap.Int("rows", res.Rows),
		zap.Int("valid_trips", len(valid)),
		zap.Int("dropped", res.Dropped.Total()),
		zap.Int("months", len(res.Months)))

	return res, nil
}
