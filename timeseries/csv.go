package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a record that could not be turned into an observation.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CSVOptions holds options for delimited-file loading.
type CSVOptions struct {
	ValueColumn int    // Zero-based column holding the observation
	DateColumn  int    // Zero-based column holding the date index
	HasHeader   bool   // Whether the first record is a header
	Delimiter   rune   // Field delimiter (default: ';')
	Name        string // Name given to the loaded series
	Sheet       string // Worksheet to read for spreadsheet input (default: first)
}

// DefaultCSVOptions returns the options for the `value;date` layout without
// a header row.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: 0,
		DateColumn:  1,
		HasHeader:   false,
		Delimiter:   ';',
		Name:        "Observations",
	}
}

// Load loads a series from path, choosing the reader by file extension.
func Load(filename string, opts *CSVOptions) (*Series, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return LoadXLSX(filename, opts)
	}
	return LoadCSV(filename, opts)
}

// LoadCSV loads a time series from a delimited text file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader. An input with no
// records yields an empty series and no error.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if opts.HasHeader {
		if _, err := reader.Read(); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	b := newBuilder(opts)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if err := b.add(line, record); err != nil {
			return nil, err
		}
	}

	return b.series(), nil
}

// builder accumulates records of either input kind into a series.
type builder struct {
	opts       *CSVOptions
	width      int
	values     []float64
	timestamps []time.Time
}

func newBuilder(opts *CSVOptions) *builder {
	return &builder{
		opts:  opts,
		width: max(opts.ValueColumn, opts.DateColumn) + 1,
	}
}

func (b *builder) add(line int, record []string) error {
	if len(record) != b.width {
		return &ParseError{
			Line:   line,
			Column: len(record),
			Err:    fmt.Errorf("expected %d fields, got %d", b.width, len(record)),
		}
	}

	valStr := strings.TrimSpace(strings.Trim(record[b.opts.ValueColumn], "\""))
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return &ParseError{Line: line, Column: b.opts.ValueColumn + 1, Err: err}
	}

	ts, err := ParseDate(record[b.opts.DateColumn])
	if err != nil {
		return &ParseError{Line: line, Column: b.opts.DateColumn + 1, Err: err}
	}

	b.values = append(b.values, val)
	b.timestamps = append(b.timestamps, ts)
	return nil
}

func (b *builder) series() *Series {
	values, timestamps := b.values, b.timestamps
	if values == nil {
		values, timestamps = []float64{}, []time.Time{}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       b.opts.Name,
	}
}
