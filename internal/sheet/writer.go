package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sheet is one named output table.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Writer encodes a set of sheets to a stream.
type Writer interface {
	Write(w io.Writer, sheets []Sheet) error
	Format() string
}

// NewWriter returns the writer for format ("xlsx" or "csv").
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "xlsx", "":
		return &XLSXWriter{}, nil
	case "csv":
		return &CSVWriter{SheetColumn: "월"}, nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Save writes sheets to path, creating its directory if needed.
func Save(path string, w Writer, sheets []Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := w.Write(f, sheets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
