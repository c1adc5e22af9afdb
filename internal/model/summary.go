package model

import "time"

// DailySummary is the payable amount for one employee on one day.
type DailySummary struct {
	Employee  string
	Date      time.Time
	Amount    int64 // capped
	RawAmount int64 // before the daily cap
}

// MonthlySummary is one employee's row in a month's settlement table.
type MonthlySummary struct {
	Employee                string
	Total                   int64 // capped
	RawTotal                int64 // sum of capped daily amounts, before the monthly cap
	AMTrips                 int
	PMTrips                 int
	VehicleTrips            int
	LongTripsWithVehicle    int
	LongTripsWithoutVehicle int
}
