// Package report presents settlement results: the exported per-month sheets
// and the terminal tables printed by `tripallow settle --print`.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/tripallow/tripallow/internal/model"
	"github.com/tripallow/tripallow/internal/settlement"
	"github.com/tripallow/tripallow/internal/sheet"
)

// Columns is the header of every month table.
var Columns = []string{
	"성명",
	"총지급액",
	"오전출장횟수",
	"오후출장횟수",
	"공용차량사용횟수",
	"4시간이상(공용차량O)",
	"4시간이상(공용차량X)",
}

// Amount formats a payout with thousands separators, e.g. "150,000".
func Amount(v int64) string {
	return humanize.Comma(v)
}

// Row returns the table cells of one summary in Columns order.
func Row(s model.MonthlySummary) []any {
	return []any{
		s.Employee,
		Amount(s.Total),
		s.AMTrips,
		s.PMTrips,
		s.VehicleTrips,
		s.LongTripsWithVehicle,
		s.LongTripsWithoutVehicle,
	}
}

// Sheets converts a result into one output sheet per month, in month order.
func Sheets(res *settlement.Result) []sheet.Sheet {
	if res.Empty() {
		return nil
	}
	out := make([]sheet.Sheet, 0, len(res.Months))
	for _, mr := range res.Months {
		rows := make([][]any, len(mr.Summaries))
		for i, s := range mr.Summaries {
			rows[i] = Row(s)
		}
		out = append(out, sheet.Sheet{
			Name:   mr.Label,
			Header: Columns,
			Rows:   rows,
		})
	}
	return out
}

// Title is the heading printed above a month table.
func Title(mr settlement.MonthResult) string {
	return fmt.Sprintf("%s 정산 결과 (총 지급액: %s원)", mr.Label, Amount(mr.Total()))
}

// Render prints every month of res as a numbered table.
func Render(w io.Writer, res *settlement.Result) error {
	if res.Empty() {
		_, err := fmt.Fprintln(w, "No trips to settle.")
		return err
	}

	for i, mr := range res.Months {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := renderMonth(w, mr); err != nil {
			return fmt.Errorf("rendering %s: %w", mr.Label, err)
		}
	}
	return nil
}

func renderMonth(w io.Writer, mr settlement.MonthResult) error {
	if _, err := fmt.Fprintln(w, Title(mr)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "No.\t%s\t\n", strings.Join(Columns, "\t"))
	for i, s := range mr.Summaries {
		cells := make([]string, 0, len(Columns)+1)
		cells = append(cells, fmt.Sprint(i+1))
		for _, c := range Row(s) {
			cells = append(cells, fmt.Sprint(c))
		}
		fmt.Fprintf(tw, "%s\t\n", strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
