package settlement

import (
	"cmp"
	"slices"

	"github.com/tripallow/tripallow/internal/label"
	"github.com/tripallow/tripallow/internal/model"
)

// MonthResult is the settlement table of one calendar month.
type MonthResult struct {
	Month     int
	Label     string // "3월"
	Summaries []model.MonthlySummary
	Daily     []model.DailySummary
}

// Total returns the sum of the capped employee totals.
func (m MonthResult) Total() int64 {
	var sum int64
	for _, s := range m.Summaries {
		sum += s.Total
	}
	return sum
}

// Aggregate partitions valid trips by month (the year is not part of the
// key) and builds one MonthResult per month that has trips, in month order.
func Aggregate(policy Policy, rules Rules, trips []model.Trip) []MonthResult {
	var byMonth [13][]model.Trip
	for _, t := range trips {
		if t.Month >= 1 && t.Month <= 12 {
			byMonth[t.Month] = append(byMonth[t.Month], t)
		}
	}

	var months []MonthResult
	for m := 1; m <= 12; m++ {
		if len(byMonth[m]) == 0 {
			continue
		}
		months = append(months, aggregateMonth(m, policy, rules, byMonth[m]))
	}
	return months
}

func aggregateMonth(month int, policy Policy, rules Rules, trips []model.Trip) MonthResult {
	daily := rules.Daily(policy, trips)

	rows := make(map[string]*model.MonthlySummary)
	get := func(name string) *model.MonthlySummary {
		s, ok := rows[name]
		if !ok {
			s = &model.MonthlySummary{Employee: name}
			rows[name] = s
		}
		return s
	}

	for _, d := range daily {
		get(d.Employee).RawTotal += d.Amount
	}

	// Counts come from the raw trips, before any deduction or cap.
	for _, t := range trips {
		s := get(t.Employee)
		switch t.Bucket {
		case model.BucketAM:
			s.AMTrips++
		case model.BucketPM:
			s.PMTrips++
		}
		if t.VehicleUsed {
			s.VehicleTrips++
		}
		if t.IsLong() {
			if t.VehicleUsed {
				s.LongTripsWithVehicle++
			} else {
				s.LongTripsWithoutVehicle++
			}
		}
	}

	summaries := make([]model.MonthlySummary, 0, len(rows))
	for _, s := range rows {
		s.Total = rules.CapMonthly(s.RawTotal)
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b model.MonthlySummary) int {
		return cmp.Compare(a.Employee, b.Employee)
	})

	return MonthResult{
		Month:     month,
		Label:     label.FormatMonth(month),
		Summaries: summaries,
		Daily:     daily,
	}
}
