package model

import "time"

// Bucket is the half-day a trip started in.
type Bucket string

const (
	BucketAM      Bucket = "AM"
	BucketPM      Bucket = "PM"
	BucketUnknown Bucket = "unknown"
)

// TripRecord is one raw row of the trip sheet, cell values as read.
type TripRecord struct {
	Row        int // 1-based sheet row, for diagnostics
	Employee   string
	TripStart  string
	Duration   string // e.g. "1시간22분"
	StartTime  string // free text containing an HH:MM
	Vehicle    string // shared-vehicle indicator, compared to a token
	DateMarker string
}

// Trip is a TripRecord with its derived fields filled in.
type Trip struct {
	Record          TripRecord
	Employee        string
	Date            time.Time // midnight UTC; zero if !DateValid
	DateValid       bool
	Month           int // 1-12, 0 if !DateValid
	DurationMinutes int
	StartClock      string // "" when no HH:MM was found
	Bucket          Bucket
	VehicleUsed     bool
}

// LongTripMinutes is the duration from which a trip counts as a long trip.
const LongTripMinutes = 240

// IsLong reports whether the trip lasted four hours or more.
func (t Trip) IsLong() bool {
	return t.DurationMinutes >= LongTripMinutes
}
