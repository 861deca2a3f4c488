package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when fewer than two usable points remain.
var ErrInsufficientData = errors.New("at least two points are required")

// Point is a single (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Fit holds the parameters of a straight-line fit y = Intercept + Slope*x.
// For a power-law fit the line lives in log-log space.
//
// A fit over points with no spread in x is degenerate: Slope and Intercept
// are NaN or infinite and Finite reports false. Such a fit is returned
// without an error and callers must check Finite before drawing it.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64 // in the fitted space; NaN when degenerate
	N         int     // points used
}

// Finite reports whether the slope and intercept are usable numbers.
func (f Fit) Finite() bool {
	return !math.IsNaN(f.Slope) && !math.IsInf(f.Slope, 0) &&
		!math.IsNaN(f.Intercept) && !math.IsInf(f.Intercept, 0)
}

// LineAt evaluates the fitted line at x.
func (f Fit) LineAt(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// PowerAt evaluates the power law exp(Intercept) * x^Slope described by a
// log-log fit.
func (f Fit) PowerAt(x float64) float64 {
	return math.Exp(f.Intercept) * math.Pow(x, f.Slope)
}

// FitLinear fits y = a + b*x by ordinary least squares using the closed-form
// sums in a single pass. Points with a NaN coordinate are skipped.
func FitLinear(points []Point) (Fit, error) {
	var xs, ys []float64
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return fitXY(xs, ys)
}

// FitPowerLaw fits y = a * x^b by least squares on (ln x, ln y).
// Every x and y must be positive; use PositivePoints to filter beforehand.
// Points with a NaN coordinate are skipped.
func FitPowerLaw(points []Point) (Fit, error) {
	var xs, ys []float64
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		xs = append(xs, math.Log(p.X))
		ys = append(ys, math.Log(p.Y))
	}
	return fitXY(xs, ys)
}

func fitXY(xs, ys []float64) (Fit, error) {
	n := len(xs)
	if n < 2 {
		return Fit{}, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	nf := float64(n)
	slope := (nf*sumXY - sumX*sumY) / (nf*sumXX - sumX*sumX)
	if constant(xs) {
		// Rounding can leave a tiny non-zero denominator for identical x.
		slope = math.NaN()
	}
	intercept := (sumY - slope*sumX) / nf

	fit := Fit{Slope: slope, Intercept: intercept, N: n, RSquared: math.NaN()}
	if fit.Finite() {
		fit.RSquared = stat.RSquared(xs, ys, nil, intercept, slope)
	}
	return fit, nil
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// PositivePoints returns the points whose coordinates are both positive.
// Missing (NaN) coordinates are dropped as well.
func PositivePoints(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.X > 0 && p.Y > 0 {
			out = append(out, p)
		}
	}
	return out
}
