package settlement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripallow/tripallow/internal/model"
)

func TestAmountForMinutes(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		mins int
		want int64
	}{
		{0, 0},
		{59, 0},
		{60, 10000},
		{82, 10000},
		{239, 10000},
		{240, 20000},
		{1000, 20000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.AmountForMinutes(tt.mins), "AmountForMinutes(%d)", tt.mins)
	}
}

func TestAmountForMinutes_Monotonic(t *testing.T) {
	r := DefaultRules()
	prev := r.AmountForMinutes(0)
	for m := 1; m <= 600; m++ {
		cur := r.AmountForMinutes(m)
		assert.GreaterOrEqual(t, cur, prev, "minute %d", m)
		assert.Contains(t, []int64{0, 10000, 20000}, cur)
		prev = cur
	}
}

func TestDeduct(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, int64(10000), r.Deduct(20000, true))
	assert.Equal(t, int64(0), r.Deduct(10000, true))
	assert.Equal(t, int64(0), r.Deduct(0, true))
	assert.Equal(t, int64(20000), r.Deduct(20000, false))

	r.VehicleDeduction = 15000
	assert.Equal(t, int64(0), r.Deduct(10000, true), "floored at zero")
}

func TestCapDaily(t *testing.T) {
	r := DefaultRules()
	for raw := int64(0); raw <= 60000; raw += 5000 {
		assert.Equal(t, min(raw, 20000), r.CapDaily(raw))
	}
}

func TestCapMonthly(t *testing.T) {
	r := DefaultRules()
	for raw := int64(0); raw <= 700000; raw += 20000 {
		assert.Equal(t, min(raw, 280000), r.CapMonthly(raw))
	}
}

func TestDayAmount_SingleLongTripWithVehicle(t *testing.T) {
	r := DefaultRules()
	trips := []model.Trip{trip("Kim", day(2025, 3, 4), 250, model.BucketAM, true)}

	assert.Equal(t, int64(10000), r.DayAmount(PolicyPerHalfDay, trips))
	assert.Equal(t, int64(10000), r.DayAmount(PolicyPerTrip, trips))
}

func TestDayAmount_HalfDayBucketsWithVehicle(t *testing.T) {
	r := DefaultRules()
	d := day(2025, 3, 4)
	trips := []model.Trip{
		trip("Park", d, 30, model.BucketAM, false),
		trip("Park", d, 70, model.BucketPM, true),
	}
	assert.Equal(t, int64(0), r.DayAmount(PolicyPerHalfDay, trips))
}

func TestDayAmount_BucketPoolsMinutes(t *testing.T) {
	r := DefaultRules()
	d := day(2025, 3, 4)
	trips := []model.Trip{
		trip("Park", d, 40, model.BucketAM, false),
		trip("Park", d, 40, model.BucketAM, false),
	}
	assert.Equal(t, int64(10000), r.DayAmount(PolicyPerHalfDay, trips), "80 pooled minutes")
	assert.Equal(t, int64(0), r.DayAmount(PolicyPerTrip, trips), "each trip under an hour")
}

func TestDayAmount_VehicleAnywhereInBucketDeductsOnce(t *testing.T) {
	r := DefaultRules()
	d := day(2025, 3, 4)
	trips := []model.Trip{
		trip("Park", d, 200, model.BucketPM, false),
		trip("Park", d, 100, model.BucketPM, true),
	}
	// 300 minutes -> 20000, one deduction.
	assert.Equal(t, int64(10000), r.DayAmount(PolicyPerHalfDay, trips))
	// 10000 + (10000-10000).
	assert.Equal(t, int64(10000), r.DayAmount(PolicyPerTrip, trips))
}

func TestDayAmount_UnknownBucketStandsAlone(t *testing.T) {
	r := DefaultRules()
	d := day(2025, 3, 4)
	trips := []model.Trip{
		trip("Park", d, 90, model.BucketAM, false),
		trip("Park", d, 90, model.BucketUnknown, false),
	}
	assert.Equal(t, int64(20000), r.DayAmount(PolicyPerHalfDay, trips))
}

func TestDayAmount_HugeBucketSaturates(t *testing.T) {
	r := DefaultRules()
	d := day(2025, 3, 4)
	trips := []model.Trip{
		trip("Park", d, math.MaxInt-10, model.BucketAM, false),
		trip("Park", d, math.MaxInt-10, model.BucketAM, false),
	}
	assert.Equal(t, int64(20000), r.DayAmount(PolicyPerHalfDay, trips))
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, 300, addMinutes(200, 100))
	assert.Equal(t, math.MaxInt, addMinutes(math.MaxInt, 1))
	assert.Equal(t, math.MaxInt, addMinutes(math.MaxInt-5, math.MaxInt-5))
}

func TestDaily_CapsAndOrders(t *testing.T) {
	r := DefaultRules()
	trips := []model.Trip{
		trip("Lee", day(2025, 3, 5), 300, model.BucketAM, false),
		trip("Kim", day(2025, 3, 5), 300, model.BucketAM, false),
		trip("Kim", day(2025, 3, 5), 300, model.BucketPM, false),
		trip("Kim", day(2025, 3, 4), 90, model.BucketPM, false),
	}

	daily := r.Daily(PolicyPerHalfDay, trips)
	assert.Equal(t, []model.DailySummary{
		{Employee: "Kim", Date: day(2025, 3, 4), Amount: 10000, RawAmount: 10000},
		{Employee: "Kim", Date: day(2025, 3, 5), Amount: 20000, RawAmount: 40000},
		{Employee: "Lee", Date: day(2025, 3, 5), Amount: 20000, RawAmount: 20000},
	}, daily)
}
