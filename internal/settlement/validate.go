package settlement

import (
	"fmt"

	"github.com/tripallow/tripallow/internal/label"
)

// ValidationError describes one output invariant a Result violates.
type ValidationError struct {
	Check       string
	Month       string
	Employee    string
	Description string
}

func (e ValidationError) Error() string {
	if e.Employee == "" {
		return fmt.Sprintf("%s [%s]: %s", e.Check, e.Month, e.Description)
	}
	return fmt.Sprintf("%s [%s %s]: %s", e.Check, e.Month, e.Employee, e.Description)
}

// Validate re-checks the invariants of a settlement result against rules:
// month labels, one sorted row per employee, non-negative capped amounts,
// and totals that agree with the daily breakdown.
func Validate(res *Result, rules Rules) []ValidationError {
	if res == nil {
		return nil
	}
	var errs []ValidationError

	prevMonth := 0
	for _, mr := range res.Months {
		if mr.Month < 1 || mr.Month > 12 {
			errs = append(errs, ValidationError{
				Check:       "month-range",
				Month:       mr.Label,
				Description: fmt.Sprintf("month %d outside 1..12", mr.Month),
			})
		}
		if mr.Month <= prevMonth {
			errs = append(errs, ValidationError{
				Check:       "month-order",
				Month:       mr.Label,
				Description: fmt.Sprintf("month %d follows month %d", mr.Month, prevMonth),
			})
		}
		prevMonth = mr.Month
		if want := label.FormatMonth(mr.Month); mr.Label != want {
			desc := fmt.Sprintf("label should be %q", want)
			if m, err := label.ParseMonth(mr.Label); err == nil && m != mr.Month {
				desc = fmt.Sprintf("label names month %d but holds month %d", m, mr.Month)
			}
			errs = append(errs, ValidationError{
				Check:       "month-label",
				Month:       mr.Label,
				Description: desc,
			})
		}

		dailySum := make(map[string]int64)
		for _, d := range mr.Daily {
			if d.Amount < 0 {
				errs = append(errs, ValidationError{
					Check:       "non-negative",
					Month:       mr.Label,
					Employee:    d.Employee,
					Description: fmt.Sprintf("daily amount %d on %s", d.Amount, d.Date.Format("2006-01-02")),
				})
			}
			if d.Amount > rules.DailyCap {
				errs = append(errs, ValidationError{
					Check:       "daily-cap",
					Month:       mr.Label,
					Employee:    d.Employee,
					Description: fmt.Sprintf("daily amount %d on %s exceeds %d", d.Amount, d.Date.Format("2006-01-02"), rules.DailyCap),
				})
			}
			dailySum[d.Employee] += d.Amount
		}

		for i, s := range mr.Summaries {
			if i > 0 && mr.Summaries[i-1].Employee >= s.Employee {
				errs = append(errs, ValidationError{
					Check:       "employee-order",
					Month:       mr.Label,
					Employee:    s.Employee,
					Description: fmt.Sprintf("follows %q", mr.Summaries[i-1].Employee),
				})
			}
			if s.Total < 0 {
				errs = append(errs, ValidationError{
					Check:       "non-negative",
					Month:       mr.Label,
					Employee:    s.Employee,
					Description: fmt.Sprintf("total %d", s.Total),
				})
			}
			if s.Total > rules.MonthlyCap {
				errs = append(errs, ValidationError{
					Check:       "monthly-cap",
					Month:       mr.Label,
					Employee:    s.Employee,
					Description: fmt.Sprintf("total %d exceeds %d", s.Total, rules.MonthlyCap),
				})
			}
			if s.RawTotal != dailySum[s.Employee] {
				errs = append(errs, ValidationError{
					Check:       "daily-sum",
					Month:       mr.Label,
					Employee:    s.Employee,
					Description: fmt.Sprintf("raw total %d != sum of daily amounts %d", s.RawTotal, dailySum[s.Employee]),
				})
			}
			if want := rules.CapMonthly(s.RawTotal); s.Total != want {
				errs = append(errs, ValidationError{
					Check:       "monthly-cap",
					Month:       mr.Label,
					Employee:    s.Employee,
					Description: fmt.Sprintf("total %d should be %d", s.Total, want),
				})
			}
		}
	}
	return errs
}
