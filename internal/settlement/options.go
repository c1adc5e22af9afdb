package settlement

import (
	"errors"
	"fmt"

	"github.com/tripallow/tripallow/internal/normalize"
	"github.com/tripallow/tripallow/internal/sheet"
)

// Policy selects how a day's trips turn into a payable amount.
type Policy string

const (
	// PolicyPerTrip pays each trip on its own duration, then caps the day.
	PolicyPerTrip Policy = "per_trip"
	// PolicyPerHalfDay pools trip minutes per AM/PM bucket and pays each
	// bucket once, then caps the day.
	PolicyPerHalfDay Policy = "per_half_day"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyPerTrip || p == PolicyPerHalfDay
}

// Rules are the amount tiers and caps of the allowance scheme.
type Rules struct {
	MinMinutes       int   `yaml:"min_minutes"`       // below this nothing is paid
	FullMinutes      int   `yaml:"full_minutes"`      // from this the full amount is paid
	HalfAmount       int64 `yaml:"half_amount"`       // paid for [MinMinutes, FullMinutes)
	FullAmount       int64 `yaml:"full_amount"`       // paid for >= FullMinutes
	VehicleDeduction int64 `yaml:"vehicle_deduction"` // subtracted when a shared vehicle was used
	DailyCap         int64 `yaml:"daily_cap"`
	MonthlyCap       int64 `yaml:"monthly_cap"`
}

// DefaultRules returns the standard allowance scheme.
func DefaultRules() Rules {
	return Rules{
		MinMinutes:       60,
		FullMinutes:      240,
		HalfAmount:       10000,
		FullAmount:       20000,
		VehicleDeduction: 10000,
		DailyCap:         20000,
		MonthlyCap:       280000,
	}
}

// Validate checks that the tiers are ordered and nothing is negative.
func (r Rules) Validate() error {
	var errs []error
	if r.MinMinutes < 0 {
		errs = append(errs, fmt.Errorf("min_minutes %d is negative", r.MinMinutes))
	}
	if r.FullMinutes < r.MinMinutes {
		errs = append(errs, fmt.Errorf("full_minutes %d is below min_minutes %d", r.FullMinutes, r.MinMinutes))
	}
	if r.HalfAmount < 0 || r.FullAmount < 0 || r.VehicleDeduction < 0 {
		errs = append(errs, errors.New("amounts and deduction must not be negative"))
	}
	if r.FullAmount < r.HalfAmount {
		errs = append(errs, fmt.Errorf("full_amount %d is below half_amount %d", r.FullAmount, r.HalfAmount))
	}
	if r.DailyCap < 0 || r.MonthlyCap < 0 {
		errs = append(errs, errors.New("caps must not be negative"))
	}
	return errors.Join(errs...)
}

// Columns maps trip fields to sheet columns.
type Columns struct {
	Employee   sheet.ColumnRef `yaml:"employee"`
	TripStart  sheet.ColumnRef `yaml:"trip_start"`
	Duration   sheet.ColumnRef `yaml:"duration"`
	Vehicle    sheet.ColumnRef `yaml:"vehicle"`
	StartTime  sheet.ColumnRef `yaml:"start_time"`
	DateMarker sheet.ColumnRef `yaml:"date_marker,omitempty"` // optional
}

// DefaultColumns matches the layout of the trip-log export: labeled columns
// by header, the unlabeled start-time and date columns by letter.
func DefaultColumns() Columns {
	return Columns{
		Employee:   sheet.ColumnRef{Header: "성명"},
		TripStart:  sheet.ColumnRef{Header: "출장시작"},
		Duration:   sheet.ColumnRef{Header: "총출장시간"},
		Vehicle:    sheet.ColumnRef{Header: "공용차량"},
		StartTime:  sheet.ColumnRef{Letter: "J"},
		DateMarker: sheet.ColumnRef{Letter: "N"},
	}
}

// Default tokens of the trip-log export.
const (
	DefaultVehicleToken = normalize.DefaultVehicleToken
	DefaultHeaderMarker = "일자"
)

// Options configure an Engine.
type Options struct {
	Policy       Policy
	Rules        Rules
	Columns      Columns
	VehicleToken string // indicator value meaning "shared vehicle used"
	HeaderMarker string // date-marker value of a repeated header row
}

// DefaultOptions returns the half-day policy with the standard scheme.
func DefaultOptions() Options {
	return Options{
		Policy:       PolicyPerHalfDay,
		Rules:        DefaultRules(),
		Columns:      DefaultColumns(),
		VehicleToken: DefaultVehicleToken,
		HeaderMarker: DefaultHeaderMarker,
	}
}
