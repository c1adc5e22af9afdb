package settlement

import (
	"fmt"
	"strings"

	"github.com/tripallow/tripallow/internal/model"
	"github.com/tripallow/tripallow/internal/sheet"
)

// MissingColumnError reports a required column absent from the input sheet.
type MissingColumnError struct {
	Field  string
	Column sheet.ColumnRef
	Err    error
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %s (%s)", e.Field, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return e.Err }

// DropStats counts the rows kept out of the settlement, by reason.
type DropStats struct {
	HeaderRows      int
	MissingEmployee int
	InvalidDate     int
}

// Total returns the number of dropped rows.
func (d DropStats) Total() int {
	return d.HeaderRows + d.MissingEmployee + d.InvalidDate
}

type boundColumns struct {
	employee   int
	tripStart  int
	duration   int
	vehicle    int
	startTime  int
	dateMarker int // -1 when not mapped
}

// Bind resolves cols against the table header and extracts one TripRecord
// per data row. A required column that cannot be resolved fails the whole
// bind with a *MissingColumnError.
func Bind(t *sheet.Table, cols Columns) ([]model.TripRecord, error) {
	b := boundColumns{dateMarker: -1}

	required := []struct {
		field string
		ref   sheet.ColumnRef
		dst   *int
	}{
		{"employee", cols.Employee, &b.employee},
		{"trip_start", cols.TripStart, &b.tripStart},
		{"duration", cols.Duration, &b.duration},
		{"vehicle", cols.Vehicle, &b.vehicle},
		{"start_time", cols.StartTime, &b.startTime},
	}
	for _, r := range required {
		idx, err := t.Resolve(r.ref)
		if err != nil {
			return nil, &MissingColumnError{Field: r.field, Column: r.ref, Err: err}
		}
		*r.dst = idx
	}

	if !cols.DateMarker.IsZero() {
		if idx, err := t.Resolve(cols.DateMarker); err == nil {
			b.dateMarker = idx
		}
	}

	records := make([]model.TripRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		records = append(records, model.TripRecord{
			Row:        t.FirstRow + i,
			Employee:   sheet.Cell(row, b.employee),
			TripStart:  t.RawCell(i, b.tripStart),
			Duration:   sheet.Cell(row, b.duration),
			Vehicle:    sheet.Cell(row, b.vehicle),
			StartTime:  sheet.Cell(row, b.startTime),
			DateMarker: sheet.Cell(row, b.dateMarker),
		})
	}
	return records, nil
}

// StripHeaderRows drops records whose date marker equals marker; these are
// header rows repeated inside the data. It returns the kept records and the
// number dropped.
func StripHeaderRows(records []model.TripRecord, marker string) ([]model.TripRecord, int) {
	if marker == "" {
		return records, 0
	}
	kept := make([]model.TripRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.DateMarker) == marker {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

// Filter keeps trips that have an employee name and a valid trip date.
func Filter(trips []model.Trip) ([]model.Trip, DropStats) {
	var stats DropStats
	valid := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		switch {
		case t.Employee == "":
			stats.MissingEmployee++
		case !t.DateValid:
			stats.InvalidDate++
		default:
			valid = append(valid, t)
		}
	}
	return valid, stats
}
