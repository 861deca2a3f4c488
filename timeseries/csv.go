package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV reading and writing.
type CSVOptions struct {
	DateColumn  string // Column name for dates (default: "ds")
	ValueColumn string // Column name for values (default: "y")
	DateFormat  string // Date format (default: "2006-01-02")
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV handling.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "ds",
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		Delimiter:   ',',
	}
}

// missingTokens are the cells read back as gaps.
var missingTokens = map[string]bool{"": true, "NA": true, "NaN": true, "null": true}

// ReadCSV reads a series with a header row. Rows whose value cell is empty
// or one of NA, NaN, null become gaps, so the row count is preserved.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	valueIdx, dateIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		switch h {
		case opts.ValueColumn:
			valueIdx = i
		case opts.DateColumn:
			dateIdx = i
		}
	}
	if valueIdx == -1 {
		return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
	}

	var values []float64
	var timestamps []time.Time

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		valStr := strings.TrimSpace(record[valueIdx])
		val := Missing
		if !missingTokens[valStr] {
			val, err = strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		values = append(values, val)

		if dateIdx >= 0 {
			ts, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			timestamps = append(timestamps, ts)
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no data found in CSV")
	}

	return &Series{Timestamps: timestamps, Values: values}, nil
}

// WriteCSV writes the series with a header row. Gaps are written as empty
// cells; the date column is included when the series has timestamps.
func WriteCSV(w io.Writer, series *Series, opts *CSVOptions) error {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	writer := csv.NewWriter(w)
	writer.Comma = opts.Delimiter

	withDates := series.HasTimestamps()
	header := []string{opts.ValueColumn}
	if withDates {
		header = []string{opts.DateColumn, opts.ValueColumn}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		cell := ""
		if !IsMissing(v) {
			cell = strconv.FormatFloat(v, 'f', -1, 64)
		}
		row := []string{cell}
		if withDates {
			row = []string{series.Timestamps[i].Format(opts.DateFormat), cell}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the series to a file with default options.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, series, nil); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
