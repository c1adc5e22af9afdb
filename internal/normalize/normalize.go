// Package normalize derives typed trip fields from the free-text cells of a
// trip sheet. Nothing in here fails: unparseable input degrades to a zero
// duration, an unknown bucket, or an invalid date.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tripallow/tripallow/internal/model"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)시간`)
	minutesPattern = regexp.MustCompile(`(\d+)분`)
	clockPattern   = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// DefaultVehicleToken marks a trip that used a shared vehicle.
const DefaultVehicleToken = "사용"

// ParseDuration converts text such as "1시간22분" to minutes.
// A missing hours or minutes component counts as zero; a total that does
// not fit in an int is unparseable and also yields zero.
func ParseDuration(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	hours := captureInt(hoursPattern, text)
	minutes := captureInt(minutesPattern, text)
	if hours > math.MaxInt/60 || minutes > math.MaxInt-hours*60 {
		return 0
	}
	return hours*60 + minutes
}

func captureInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ExtractClock returns the first H:MM or HH:MM substring of text, or "".
func ExtractClock(text string) string {
	return clockPattern.FindString(text)
}

// ClassifyBucket puts a clock string into a half-day bucket.
// Anything from 12:00 on is PM.
func ClassifyBucket(clock string) model.Bucket {
	m := clockPattern.FindStringSubmatchIndex(clock)
	if m == nil || m[0] != 0 {
		return model.BucketUnknown
	}
	hour, _ := strconv.Atoi(clock[m[2]:m[3]])
	minute, _ := strconv.Atoi(clock[m[4]:m[5]])
	if hour > 23 || minute > 59 {
		return model.BucketUnknown
	}
	if hour < 12 {
		return model.BucketAM
	}
	return model.BucketPM
}

// IsVehicleUsed reports whether the trimmed indicator equals token.
func IsVehicleUsed(text, token string) bool {
	return strings.TrimSpace(text) == token
}

// Normalizer fills in the derived fields of trip records.
type Normalizer struct {
	VehicleToken string
}

// New returns a Normalizer using token as the shared-vehicle marker.
// An empty token falls back to DefaultVehicleToken.
func New(token string) *Normalizer {
	if token == "" {
		token = DefaultVehicleToken
	}
	return &Normalizer{VehicleToken: token}
}

// Normalize derives a Trip from rec.
func (n *Normalizer) Normalize(rec model.TripRecord) model.Trip {
	trip := model.Trip{
		Record:          rec,
		Employee:        strings.TrimSpace(rec.Employee),
		DurationMinutes: ParseDuration(rec.Duration),
		StartClock:      ExtractClock(rec.StartTime),
		VehicleUsed:     IsVehicleUsed(rec.Vehicle, n.VehicleToken),
	}
	trip.Bucket = ClassifyBucket(trip.StartClock)

	if ts, ok := ParseTripStart(rec.TripStart); ok {
		trip.Date = ts
		trip.DateValid = true
		trip.Month = int(ts.Month())
	}
	return trip
}
