// Package stats provides least-squares fits for chart trend lines.
//
// # Linear Fit
//
// FitLinear fits y = a + b*x with the closed-form least-squares sums:
//
//	fit, err := stats.FitLinear(points)
//	fmt.Printf("y = %.3f + %.3f x (R²=%.3f)\n", fit.Intercept, fit.Slope, fit.RSquared)
//
// # Power Law
//
// FitPowerLaw fits y = a * x^b by regressing ln y on ln x. The returned Fit
// holds b as Slope and ln a as Intercept; PowerAt evaluates the curve.
// Logarithms need positive coordinates, so filter first:
//
//	fit, err := stats.FitPowerLaw(stats.PositivePoints(points))
//	if err == nil && fit.Finite() {
//	    y := fit.PowerAt(10)
//	}
//
// # Degenerate Input
//
// Fewer than two usable points return ErrInsufficientData. Points with a
// NaN coordinate are skipped. When every x is equal the slope is undefined
// and the fit comes back with NaN parameters; callers check Finite before
// drawing a trend.
package stats
