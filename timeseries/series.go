// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrInvalidWindow is returned when a smoothing window is smaller than 1.
var ErrInvalidWindow = errors.New("window must be at least 1")

// Missing marks an absent observation. Gaps are carried as NaN and are never
// treated as zero.
var Missing = math.NaN()

// IsMissing reports whether v marks an absent observation.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new series from values without timestamps.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series, gaps included.
func (s *Series) Len() int {
	return len(s.Values)
}

// Count returns the number of present values.
func (s *Series) Count() int {
	n := 0
	for _, v := range s.Values {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// HasTimestamps reports whether every value has a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) > 0 && len(s.Timestamps) == len(s.Values)
}

// Mean calculates the arithmetic mean of the present values.
func (s *Series) Mean() float64 {
	sum, n := 0.0, 0
	for _, v := range s.Values {
		if IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Min returns the minimum present value.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if IsMissing(v) {
			continue
		}
		if IsMissing(min) || v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum present value.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if IsMissing(v) {
			continue
		}
		if IsMissing(max) || v > max {
			max = v
		}
	}
	return max
}

// IsChronological reports whether timestamps never decrease.
// A series without timestamps is ordered by index and always chronological.
func (s *Series) IsChronological() bool {
	for i := 1; i < len(s.Timestamps); i++ {
		if s.Timestamps[i].Before(s.Timestamps[i-1]) {
			return false
		}
	}
	return true
}

// SortByTime returns a copy of the series ordered by timestamp.
// The sort is stable so equal timestamps keep their input order.
func (s *Series) SortByTime() *Series {
	out := s.Copy()
	if !out.HasTimestamps() {
		return out
	}
	sort.Stable(byTime{out})
	return out
}

type byTime struct{ s *Series }

func (b byTime) Len() int           { return len(b.s.Values) }
func (b byTime) Less(i, j int) bool { return b.s.Timestamps[i].Before(b.s.Timestamps[j]) }
func (b byTime) Swap(i, j int) {
	b.s.Timestamps[i], b.s.Timestamps[j] = b.s.Timestamps[j], b.s.Timestamps[i]
	b.s.Values[i], b.s.Values[j] = b.s.Values[j], b.s.Values[i]
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// MovingAverage returns the centered moving average of the series.
// See the package-level MovingAverage for the window rules.
func (s *Series) MovingAverage(window int) (*Series, error) {
	values, err := MovingAverage(s.Values, window)
	if err != nil {
		return nil, err
	}
	return s.derive(values, "_ma"), nil
}

// TrailingAverage returns the trailing moving average of the series.
func (s *Series) TrailingAverage(window int) (*Series, error) {
	values, err := TrailingAverage(s.Values, window)
	if err != nil {
		return nil, err
	}
	return s.derive(values, "_trailing_ma"), nil
}

func (s *Series) derive(values []float64, suffix string) *Series {
	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name + suffix,
	}
}

// MovingAverage computes a centered moving average with the same length as
// values. An even window is widened by one so the window stays symmetric.
// Near the edges the window is clipped to the available neighbours and the
// mean is taken over the values actually present; gaps are skipped, and an
// index whose whole window is missing stays missing.
func MovingAverage(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	result := make([]float64, len(values))
	for i := range values {
		result[i] = meanRange(values, i-half, i+half)
	}
	return result, nil
}

// TrailingAverage computes a moving average over the window ending at each
// index, with the same length as values. Early indices average over the
// values seen so far; gaps are skipped as in MovingAverage.
func TrailingAverage(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	result := make([]float64, len(values))
	for i := range values {
		result[i] = meanRange(values, i-window+1, i)
	}
	return result, nil
}

// meanRange averages the present values in [lo, hi] clipped to bounds.
func meanRange(values []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values)-1 {
		hi = len(values) - 1
	}

	sum, n := 0.0, 0
	for j := lo; j <= hi; j++ {
		if IsMissing(values[j]) {
			continue
		}
		sum += values[j]
		n++
	}
	if n == 0 {
		return Missing
	}
	return sum / float64(n)
}
