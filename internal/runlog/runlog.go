// Package runlog keeps a CSV ledger of settle runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry records one successful settle run.
type Entry struct {
	ID        string    // random run id
	Timestamp time.Time // when the summary was written, UTC
	Input     string    // trip sheet as given on the command line
	Output    string    // summary file written
	Policy    string    // payout policy applied
	Months    string    // month labels in month order, joined with ";"
	Employees int       // distinct employees across all months
	Total     int64     // capped payout summed over all months
}

// Header is the CSV header of the run log.
const Header = "id,timestamp,input,output,policy,months,employees,total"

// DefaultPath is the run log location relative to the working directory.
const DefaultPath = "logs/settle-log.csv"

const (
	numFields    = 8
	colID        = 0
	colTimestamp = 1
	colInput     = 2
	colOutput    = 3
	colPolicy    = 4
	colMonths    = 5
	colEmployees = 6
	colTotal     = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colInput] = e.Input
	row[colOutput] = e.Output
	row[colPolicy] = e.Policy
	row[colMonths] = e.Months
	row[colEmployees] = strconv.Itoa(e.Employees)
	row[colTotal] = strconv.FormatInt(e.Total, 10)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	employees, err := strconv.Atoi(record[colEmployees])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing employees %q: %w", record[colEmployees], err)
	}
	total, err := strconv.ParseInt(record[colTotal], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing total %q: %w", record[colTotal], err)
	}

	return Entry{
		ID:        record[colID],
		Timestamp: ts,
		Input:     record[colInput],
		Output:    record[colOutput],
		Policy:    record[colPolicy],
		Months:    record[colMonths],
		Employees: employees,
		Total:     total,
	}, nil
}

// Append writes entries to the log at path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
