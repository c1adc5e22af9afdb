package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for a file extension no reader handles.
var ErrUnknownFormat = errors.New("unknown sheet format")

// ReadOptions control how a Reader locates the header row.
type ReadOptions struct {
	SkipRows int    // metadata rows above the header
	Sheet    string // worksheet name; first sheet when empty (xlsx only)
}

// Reader converts a spreadsheet stream into a Table.
type Reader interface {
	Read(r io.Reader, opts ReadOptions) (*Table, error)
	Format() string
}

// Registry holds readers keyed by format name (the file extension).
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate sheet format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// DefaultRegistry returns a registry with the xlsx and csv readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&CSVReader{})
	return r
}

// Load reads the file at path with the reader matching its extension.
func (r *Registry) Load(path string, opts ReadOptions) (*Table, error) {
	rd := r.Get(filepath.Ext(path))
	if rd == nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := rd.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// fromRows splits raw rows into header and data after skipping metadata rows.
func fromRows(rows [][]string, skip int) (*Table, error) {
	if skip < 0 {
		skip = 0
	}
	if len(rows) <= skip {
		return nil, fmt.Errorf("no header row after skipping %d rows", skip)
	}
	return &Table{
		Header:   rows[skip],
		Rows:     rows[skip+1:],
		FirstRow: skip + 2,
	}, nil
}
