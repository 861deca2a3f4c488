// Package timeseries provides time series data structures and smoothing.
//
// A Series pairs values with optional timestamps. Absent observations are
// carried as NaN (see Missing and IsMissing) and every operation in this
// package skips them rather than reading them as zero.
//
// # Creating a Series
//
//	values := []float64{0.4, 1.2, timeseries.Missing, 0.8}
//	series, err := timeseries.NewWithTimestamps(days, values)
//
// # Smoothing
//
// The centered moving average keeps the input length. Even windows are
// widened by one, and edge points average over the neighbours that exist:
//
//	smoothed, err := timeseries.MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
//	// [1.5 2 3 4 4.5]
//
//	weekly, err := series.MovingAverage(7)    // centered
//	trailing, err := series.TrailingAverage(7) // window ending at each point
//
// # CSV
//
// Series are exported as "ds,y" rows with empty cells for gaps:
//
//	err := timeseries.WriteCSV(w, series, nil)
//	back, err := timeseries.ReadCSV(r, nil)
package timeseries
