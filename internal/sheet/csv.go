package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// CSVReader reads comma-separated exports of the trip sheet.
type CSVReader struct{}

// Format returns the reader name.
func (c *CSVReader) Format() string { return "csv" }

// Read parses r, tolerating ragged rows and a leading byte-order mark.
func (c *CSVReader) Read(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return fromRows(records, opts.SkipRows)
}

// CSVWriter writes all sheets into one CSV, prefixing each row with the
// sheet name. The header comes from the first sheet.
type CSVWriter struct {
	SheetColumn string // header of the prefix column
}

// Format returns the writer name.
func (c *CSVWriter) Format() string { return "csv" }

// Write encodes sheets to w.
func (c *CSVWriter) Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	// Excel needs the BOM to detect UTF-8.
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)

	prefix := c.SheetColumn
	if prefix == "" {
		prefix = "sheet"
	}
	if err := cw.Write(append([]string{prefix}, sheets[0].Header...)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range sheets {
		for i, row := range s.Rows {
			rec := make([]string, 0, len(row)+1)
			rec = append(rec, s.Name)
			for _, v := range row {
				rec = append(rec, fmt.Sprint(v))
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", s.Name, i+2, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
