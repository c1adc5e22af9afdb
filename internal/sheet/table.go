// Package sheet moves tabular data between spreadsheet files and memory.
// Readers produce a Table of string cells; writers take named Sheets.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrColumnNotFound is returned when a ColumnRef does not match the table.
var ErrColumnNotFound = errors.New("column not found")

// Table is a header row followed by data rows, all cells as display text.
// Readers that can see through cell number formats also fill Raw with the
// stored values, row for row.
type Table struct {
	Header   []string
	Rows     [][]string
	Raw      [][]string // nil when the source has no formatting
	FirstRow int        // 1-based sheet row number of Rows[0]
}

// ColumnRef identifies a column either by its exact header text or, for
// unlabeled columns, by its spreadsheet letter. Letter wins when both are set.
type ColumnRef struct {
	Header string `yaml:"header,omitempty"`
	Letter string `yaml:"letter,omitempty"`
}

// IsZero reports whether the reference names no column at all.
func (c ColumnRef) IsZero() bool {
	return c.Header == "" && c.Letter == ""
}

func (c ColumnRef) String() string {
	if c.Letter != "" {
		return "column " + strings.ToUpper(c.Letter)
	}
	return fmt.Sprintf("%q", c.Header)
}

// Width returns the widest row length, header included.
func (t *Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Resolve returns the 0-based index of the referenced column.
func (t *Table) Resolve(ref ColumnRef) (int, error) {
	if ref.Letter != "" {
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(ref.Letter)))
		if err != nil {
			return -1, fmt.Errorf("%s: %w", ref, err)
		}
		if n > t.Width() {
			return -1, fmt.Errorf("%s: %w", ref, ErrColumnNotFound)
		}
		return n - 1, nil
	}
	want := strings.TrimSpace(ref.Header)
	if want == "" {
		return -1, fmt.Errorf("empty column reference: %w", ErrColumnNotFound)
	}
	for i, h := range t.Header {
		if strings.TrimSpace(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %w", ref, ErrColumnNotFound)
}

// Cell returns row[idx], or "" when the row is shorter than idx.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// RawCell returns the stored value of data row i at column idx, falling back
// to the display text when the table has no raw values or the cell is empty.
// A date cell's raw value is its serial number, whatever its number format.
func (t *Table) RawCell(i, idx int) string {
	if i < len(t.Raw) {
		if v := Cell(t.Raw[i], idx); v != "" {
			return v
		}
	}
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	return Cell(t.Rows[i], idx)
}

// Column returns every cell of column idx, one per data row.
func (t *Table) Column(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = Cell(r, idx)
	}
	return out
}
