package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads Office Open XML workbooks.
type XLSXReader struct{}

// Format returns the reader name.
func (x *XLSXReader) Format() string { return "xlsx" }

// Read returns the formatted cell text of one worksheet, with the unformatted
// values alongside in Table.Raw.
func (x *XLSXReader) Read(r io.Reader, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := opts.Sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	if name == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading raw values of sheet %q: %w", name, err)
	}

	t, err := fromRows(rows, opts.SkipRows)
	if err != nil {
		return nil, err
	}
	if skip := max(opts.SkipRows, 0) + 1; len(raw) > skip {
		t.Raw = raw[skip:]
	}
	return t, nil
}

// XLSXWriter writes one worksheet per Sheet.
type XLSXWriter struct{}

// Format returns the writer name.
func (x *XLSXWriter) Format() string { return "xlsx" }

// Write encodes sheets as a workbook to w.
func (x *XLSXWriter) Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DCE6F1"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("adding sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if len(s.Header) == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(len(s.Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.Name, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return f.SetColWidth(s.Name, "A", last, 18)
}
