package settlement

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/tripallow/tripallow/internal/model"
)

// AmountForMinutes returns the tier amount for a duration.
func (r Rules) AmountForMinutes(mins int) int64 {
	switch {
	case mins < r.MinMinutes:
		return 0
	case mins < r.FullMinutes:
		return r.HalfAmount
	default:
		return r.FullAmount
	}
}

// Deduct applies the shared-vehicle deduction to a positive amount, never
// going below zero.
func (r Rules) Deduct(amount int64, vehicleUsed bool) int64 {
	if !vehicleUsed || amount <= 0 {
		return amount
	}
	return max(amount-r.VehicleDeduction, 0)
}

// CapDaily clips a day's amount to the daily cap.
func (r Rules) CapDaily(amount int64) int64 { return min(amount, r.DailyCap) }

// CapMonthly clips a month's amount to the monthly cap.
func (r Rules) CapMonthly(amount int64) int64 { return min(amount, r.MonthlyCap) }

// TripAmount is the payable amount of a single trip under PolicyPerTrip.
func (r Rules) TripAmount(t model.Trip) int64 {
	return r.Deduct(r.AmountForMinutes(t.DurationMinutes), t.VehicleUsed)
}

type bucketTotal struct {
	minutes     int
	vehicleUsed bool
}

// DayAmount returns the uncapped payable amount for one employee's trips on
// one day.
func (r Rules) DayAmount(policy Policy, trips []model.Trip) int64 {
	var total int64
	if policy == PolicyPerTrip {
		for _, t := range trips {
			total += r.TripAmount(t)
		}
		return total
	}

	// Trips without a start time share a bucket of their own.
	buckets := make(map[model.Bucket]*bucketTotal, 3)
	for _, t := range trips {
		b, ok := buckets[t.Bucket]
		if !ok {
			b = &bucketTotal{}
			buckets[t.Bucket] = b
		}
		b.minutes = addMinutes(b.minutes, t.DurationMinutes)
		b.vehicleUsed = b.vehicleUsed || t.VehicleUsed
	}
	for _, b := range buckets {
		total += r.Deduct(r.AmountForMinutes(b.minutes), b.vehicleUsed)
	}
	return total
}

// addMinutes sums two durations, saturating at math.MaxInt.
func addMinutes(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

type dayKey struct {
	employee string
	date     time.Time
}

// Daily computes one DailySummary per employee and date, ordered by
// employee then date.
func (r Rules) Daily(policy Policy, trips []model.Trip) []model.DailySummary {
	groups := make(map[dayKey][]model.Trip)
	for _, t := range trips {
		k := dayKey{employee: t.Employee, date: t.Date}
		groups[k] = append(groups[k], t)
	}

	keys := make([]dayKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b dayKey) int {
		if c := cmp.Compare(a.employee, b.employee); c != 0 {
			return c
		}
		return a.date.Compare(b.date)
	})

	out := make([]model.DailySummary, 0, len(keys))
	for _, k := range keys {
		raw := r.DayAmount(policy, groups[k])
		out = append(out, model.DailySummary{
			Employee:  k.employee,
			Date:      k.date,
			Amount:    r.CapDaily(raw),
			RawAmount: raw,
		})
	}
	return out
}
