package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tripallow/tripallow/internal/commands"
	"github.com/tripallow/tripallow/internal/config"
)

func runTripallow(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeProject writes a tripallow.yaml that logs to a file inside dir.
func writeProject(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.Default()
	cfg.Log.OutputPath = filepath.Join(dir, "tripallow.log")
	cfg.Log.Level = "debug"
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

// tripCells lays out one row of the trip-log export: labeled columns A-D,
// the start time in column J and the date in column N.
func tripCells(name, start, duration, vehicle, clock, date string) []any {
	row := make([]any, 14)
	for i := range row {
		row[i] = ""
	}
	row[0], row[1], row[2], row[3] = name, start, duration, vehicle
	row[9] = clock
	row[13] = date
	return row
}

// writeTrips builds a trip-log workbook with a metadata row above the header.
func writeTrips(t *testing.T, path string, rows ...[]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	all := [][]any{
		{"출장 내역 조회"},
		tripCells("성명", "출장시작", "총출장시간", "공용차량", "", ""),
	}
	all = append(all, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

// standardTrips covers two months, a repeated header row and a nameless row.
func standardTrips() [][]any {
	return [][]any{
		tripCells("김철수", "2025-03-04 09:15", "4시간10분", "사용", "09:15", "2025-03-04"),
		tripCells("김철수", "2025-03-04 14:00", "1시간", "", "14:00", "2025-03-04"),
		tripCells("성명", "출장시작", "총출장시간", "공용차량", "", "일자"),
		tripCells("", "2025-03-05 10:00", "5시간", "", "10:00", "2025-03-05"),
		tripCells("이영희", "2025-04-02 13:00", "2시간", "", "13:00", "2025-04-02"),
	}
}
