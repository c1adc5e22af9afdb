package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Serial day numbers outside this range are treated as plain numbers, not
// dates (20000 is 1954-10-03, 80000 is 2119-01-10).
const (
	minSerialDay = 20000
	maxSerialDay = 80000
)

var tripStartLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006년 1월 2일 15:04",
	"2006년 1월 2일",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"1/2/06",
	"01-02-06",
	time.RFC3339,
}

var (
	serialPattern        = regexp.MustCompile(`^\d+(\.\d+)?$`)
	embeddedDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})[-./](\d{1,2})[-./](\d{1,2})`),
		regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`),
	}
)

// ParseTripStart parses a trip-start cell and returns its calendar date at
// midnight UTC. It accepts Excel serial numbers, the common layouts Excel
// and hand-typed sheets produce, and text with an embedded YYYY-MM-DD or
// Korean YYYY년 M월 D일 date.
func ParseTripStart(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	if serialPattern.MatchString(s) {
		if t, ok := parseSerial(s); ok {
			return dateOf(t), true
		}
	}

	for _, layout := range tripStartLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t), true
		}
	}

	for _, re := range embeddedDatePatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return embeddedDate(m)
		}
	}
	return time.Time{}, false
}

func embeddedDate(m []string) (time.Time, bool) {
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as 2025-02-31.
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// parseSerial splits an Excel serial into whole days and seconds without
// going through float arithmetic on the time-of-day part.
func parseSerial(s string) (time.Time, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return time.Time{}, false
	}
	days := d.Floor()
	if days.LessThan(decimal.NewFromInt(minSerialDay)) || days.GreaterThan(decimal.NewFromInt(maxSerialDay)) {
		return time.Time{}, false
	}
	base, err := excelize.ExcelDateToTime(float64(days.IntPart()), false)
	if err != nil {
		return time.Time{}, false
	}
	secs := d.Sub(days).Mul(decimal.NewFromInt(86400)).Round(0).IntPart()
	return base.Add(time.Duration(secs) * time.Second), true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
