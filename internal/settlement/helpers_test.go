package settlement

import (
	"time"

	"github.com/tripallow/tripallow/internal/model"
	"github.com/tripallow/tripallow/internal/sheet"
)

// tripRow is one data row of the default sheet layout.
type tripRow struct {
	name, start, duration, vehicle, clock, marker string
}

// tripTable lays rows out as the trip-log export does: labeled columns A-D,
// the start time in column J and the date marker in column N.
func tripTable(rows ...tripRow) *sheet.Table {
	header := make([]string, 14)
	header[0], header[1], header[2], header[3] = "성명", "출장시작", "총출장시간", "공용차량"

	t := &sheet.Table{Header: header, FirstRow: 3}
	for _, r := range rows {
		row := make([]string, 14)
		row[0], row[1], row[2], row[3] = r.name, r.start, r.duration, r.vehicle
		row[9] = r.clock
		row[13] = r.marker
		t.Rows = append(t.Rows, row)
	}
	return t
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func trip(name string, date time.Time, minutes int, bucket model.Bucket, vehicle bool) model.Trip {
	return model.Trip{
		Employee:        name,
		Date:            date,
		DateValid:       true,
		Month:           int(date.Month()),
		DurationMinutes: minutes,
		Bucket:          bucket,
		VehicleUsed:     vehicle,
	}
}
