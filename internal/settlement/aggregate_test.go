package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripallow/tripallow/internal/model"
)

func TestAggregate_SingleTrip(t *testing.T) {
	trips := []model.Trip{trip("Kim", day(2025, 3, 4), 250, model.BucketAM, true)}

	months := Aggregate(PolicyPerHalfDay, DefaultRules(), trips)
	require.Len(t, months, 1)
	assert.Equal(t, 3, months[0].Month)
	assert.Equal(t, "3월", months[0].Label)
	assert.Equal(t, []model.MonthlySummary{{
		Employee:             "Kim",
		Total:                10000,
		RawTotal:             10000,
		AMTrips:              1,
		VehicleTrips:         1,
		LongTripsWithVehicle: 1,
	}}, months[0].Summaries)
}

func TestAggregate_MonthlyCap(t *testing.T) {
	var trips []model.Trip
	for d := 1; d <= 30; d++ {
		trips = append(trips, trip("Kim", day(2025, 4, d), 300, model.BucketAM, false))
	}

	months := Aggregate(PolicyPerHalfDay, DefaultRules(), trips)
	require.Len(t, months, 1)
	s := months[0].Summaries[0]
	assert.Equal(t, int64(600000), s.RawTotal)
	assert.Equal(t, int64(280000), s.Total)
	assert.Equal(t, 30, s.LongTripsWithoutVehicle)
	assert.Len(t, months[0].Daily, 30)
}

func TestAggregate_CountsUseRawTrips(t *testing.T) {
	d := day(2025, 5, 2)
	trips := []model.Trip{
		trip("Kim", d, 300, model.BucketAM, true),
		trip("Kim", d, 300, model.BucketPM, false),
		trip("Kim", d, 10, model.BucketPM, true),
		trip("Kim", d, 10, model.BucketUnknown, false),
	}

	months := Aggregate(PolicyPerHalfDay, DefaultRules(), trips)
	require.Len(t, months, 1)
	s := months[0].Summaries[0]
	assert.Equal(t, int64(20000), s.Total, "capped daily")
	assert.Equal(t, 1, s.AMTrips)
	assert.Equal(t, 2, s.PMTrips)
	assert.Equal(t, 2, s.VehicleTrips)
	assert.Equal(t, 1, s.LongTripsWithVehicle)
	assert.Equal(t, 1, s.LongTripsWithoutVehicle)
}

func TestAggregate_PartitionsAndSorts(t *testing.T) {
	trips := []model.Trip{
		trip("Park", day(2025, 7, 1), 90, model.BucketAM, false),
		trip("Kim", day(2025, 7, 1), 90, model.BucketAM, false),
		trip("Lee", day(2025, 1, 9), 90, model.BucketPM, false),
		trip("Kim", day(2024, 7, 3), 90, model.BucketPM, false),
	}

	months := Aggregate(PolicyPerTrip, DefaultRules(), trips)
	require.Len(t, months, 2)
	assert.Equal(t, 1, months[0].Month)
	assert.Equal(t, 7, months[1].Month)

	july := months[1]
	require.Len(t, july.Summaries, 2, "one row per employee")
	assert.Equal(t, "Kim", july.Summaries[0].Employee)
	assert.Equal(t, "Park", july.Summaries[1].Employee)
	assert.Equal(t, int64(20000), july.Summaries[0].Total, "July of both years share a sheet")
	assert.Equal(t, int64(30000), july.Total())
}

func TestAggregate_NoTrips(t *testing.T) {
	assert.Empty(t, Aggregate(PolicyPerHalfDay, DefaultRules(), nil))
}
