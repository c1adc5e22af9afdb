package label

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MonthSuffix follows the month number in a sheet label ("3월").
const MonthSuffix = "월"

// ErrInvalidLabel is returned for labels that are not "<1-12>월".
var ErrInvalidLabel = errors.New("invalid month label")

// FormatMonth returns the sheet label for a month, e.g. "3월".
func FormatMonth(month int) string {
	return strconv.Itoa(month) + MonthSuffix
}

// ParseMonth parses "3월" (surrounding spaces allowed) into 3.
func ParseMonth(s string) (int, error) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), MonthSuffix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d out of range", ErrInvalidLabel, month)
	}
	return month, nil
}

// SortLabels orders month labels numerically. Unparseable labels go last,
// in lexical order.
func SortLabels(labels []string) {
	key := func(s string) int {
		m, err := ParseMonth(s)
		if err != nil {
			return 999
		}
		return m
	}
	slices.SortStableFunc(labels, func(a, b string) int {
		if ka, kb := key(a), key(b); ka != kb {
			return ka - kb
		}
		return strings.Compare(a, b)
	})
}
