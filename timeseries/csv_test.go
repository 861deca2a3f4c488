package timeseries

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestReadCSV(t *testing.T) {
	csvData := `ds,y
2024-01-01,0.5
2024-01-02,1.5
2024-01-03,-2`

	series, err := ReadCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	assertValues(t, series.Values, []float64{0.5, 1.5, -2})
	if !series.HasTimestamps() {
		t.Fatal("Expected timestamps")
	}
	if series.Timestamps[1].Format("2006-01-02") != "2024-01-02" {
		t.Errorf("Unexpected timestamp %s", series.Timestamps[1])
	}
}

func TestReadCSVKeepsGaps(t *testing.T) {
	csvData := `ds,y
2024-01-01,100
2024-01-02,NA
2024-01-03,
2024-01-04,null
2024-01-05,104`

	series, err := ReadCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	assertValues(t, series.Values, []float64{100, Missing, Missing, Missing, 104})
	if series.Count() != 2 {
		t.Errorf("Expected 2 present values, got %d", series.Count())
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	csvData := `date;polls;votes
2024-01-01;3;10
2024-01-08;5;12`

	opts := DefaultCSVOptions()
	opts.DateColumn = "date"
	opts.ValueColumn = "votes"
	opts.Delimiter = ';'

	series, err := ReadCSV(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	assertValues(t, series.Values, []float64{10, 12})
}

func TestReadCSVErrors(t *testing.T) {
	testCases := []struct {
		name    string
		csvData string
	}{
		{"missing value column", "ds,x\n2024-01-01,1"},
		{"bad number", "ds,y\n2024-01-01,abc"},
		{"bad date", "ds,y\n01/01/2024,1"},
		{"no rows", "ds,y\n"},
		{"empty", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.csvData), nil); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	s, _ := NewWithTimestamps(
		[]time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)},
		[]float64{1.25, Missing, 3},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	expected := "ds,y\n2024-05-06,1.25\n2024-05-07,\n2024-05-08,3\n"
	if buf.String() != expected {
		t.Errorf("Unexpected CSV output:\n%s", buf.String())
	}

	back, err := ReadCSV(&buf, nil)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	assertValues(t, back.Values, s.Values)
}

func TestWriteCSVWithoutTimestamps(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, New([]float64{1, 2}), nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != "y\n1\n2\n" {
		t.Errorf("Unexpected CSV output:\n%s", buf.String())
	}
}

func TestDefaultCSVOptions(t *testing.T) {
	opts := DefaultCSVOptions()

	if opts.ValueColumn != "y" {
		t.Errorf("Expected default value column 'y', got '%s'", opts.ValueColumn)
	}
	if opts.DateColumn != "ds" {
		t.Errorf("Expected default date column 'ds', got '%s'", opts.DateColumn)
	}
	if opts.DateFormat != "2006-01-02" {
		t.Errorf("Expected default date format '2006-01-02', got '%s'", opts.DateFormat)
	}
	if opts.Delimiter != ',' {
		t.Errorf("Expected default delimiter ',', got '%c'", opts.Delimiter)
	}
}
