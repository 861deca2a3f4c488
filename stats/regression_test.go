package stats

import (
	"errors"
	"math"
	"testing"
)

func TestFitPowerLawSquare(t *testing.T) {
	fit, err := FitPowerLaw([]Point{{1, 1}, {2, 4}, {3, 9}})
	if err != nil {
		t.Fatalf("FitPowerLaw failed: %v", err)
	}

	if math.Abs(fit.Slope-2.0) > 1e-9 {
		t.Errorf("Expected slope 2, got %.12f", fit.Slope)
	}
	if math.Abs(fit.Intercept) > 1e-9 {
		t.Errorf("Expected intercept 0, got %.12f", fit.Intercept)
	}
	if math.Abs(fit.RSquared-1) > 1e-9 {
		t.Errorf("Expected R² 1, got %.12f", fit.RSquared)
	}
	if fit.N != 3 {
		t.Errorf("Expected 3 points used, got %d", fit.N)
	}
	if !fit.Finite() {
		t.Error("Expected finite fit")
	}
}

func TestFitPowerLawScaled(t *testing.T) {
	// y = 5 * x^0.5
	var points []Point
	for _, x := range []float64{1, 4, 9, 16, 100, 400} {
		points = append(points, Point{X: x, Y: 5 * math.Sqrt(x)})
	}

	fit, err := FitPowerLaw(points)
	if err != nil {
		t.Fatalf("FitPowerLaw failed: %v", err)
	}
	if math.Abs(fit.Slope-0.5) > 1e-9 {
		t.Errorf("Expected slope 0.5, got %f", fit.Slope)
	}
	if math.Abs(fit.Intercept-math.Log(5)) > 1e-9 {
		t.Errorf("Expected intercept ln 5, got %f", fit.Intercept)
	}
	if math.Abs(fit.PowerAt(25)-25) > 1e-6 {
		t.Errorf("Expected PowerAt(25) = 25, got %f", fit.PowerAt(25))
	}
}

func TestFitPowerLawInsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single", []Point{{2, 3}}},
		{"single after gaps", []Point{{2, 3}, {math.NaN(), 4}, {5, math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FitPowerLaw(tt.points); !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Expected ErrInsufficientData, got %v", err)
			}
			if _, err := FitLinear(tt.points); !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Expected ErrInsufficientData from FitLinear, got %v", err)
			}
		})
	}
}

func TestFitPowerLawOrderInvariant(t *testing.T) {
	points := []Point{{3, 7}, {10, 31}, {1, 2}, {42, 300}, {7, 15}, {2, 2}}
	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}
	rotated := append(append([]Point{}, points[2:]...), points[:2]...)

	base, err := FitPowerLaw(points)
	if err != nil {
		t.Fatalf("FitPowerLaw failed: %v", err)
	}

	for _, perm := range [][]Point{reversed, rotated} {
		fit, err := FitPowerLaw(perm)
		if err != nil {
			t.Fatalf("FitPowerLaw failed: %v", err)
		}
		if math.Abs(fit.Slope-base.Slope) > 1e-10 || math.Abs(fit.Intercept-base.Intercept) > 1e-10 {
			t.Errorf("Fit depends on order: %+v vs %+v", fit, base)
		}
	}
}

func TestFitPowerLawDegenerate(t *testing.T) {
	fit, err := FitPowerLaw([]Point{{3, 1}, {3, 5}, {3, 9}})
	if err != nil {
		t.Fatalf("Degenerate fit should not error, got %v", err)
	}
	if fit.Finite() {
		t.Errorf("Expected non-finite fit for constant x, got %+v", fit)
	}
	if !math.IsNaN(fit.RSquared) {
		t.Errorf("Expected NaN R² for degenerate fit, got %f", fit.RSquared)
	}
}

func TestFitLinearExactLine(t *testing.T) {
	tests := []struct {
		name      string
		slope     float64
		intercept float64
	}{
		{"rising", 2.5, -1},
		{"falling", -0.75, 10},
		{"flat", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var points []Point
			for x := -3.0; x <= 5; x++ {
				points = append(points, Point{X: x, Y: tt.intercept + tt.slope*x})
			}

			fit, err := FitLinear(points)
			if err != nil {
				t.Fatalf("FitLinear failed: %v", err)
			}
			if math.Abs(fit.Slope-tt.slope) > 1e-9 {
				t.Errorf("Expected slope %f, got %f", tt.slope, fit.Slope)
			}
			if math.Abs(fit.Intercept-tt.intercept) > 1e-9 {
				t.Errorf("Expected intercept %f, got %f", tt.intercept, fit.Intercept)
			}
			if math.Abs(fit.LineAt(10)-(tt.intercept+10*tt.slope)) > 1e-9 {
				t.Errorf("LineAt(10) = %f", fit.LineAt(10))
			}
		})
	}
}

func TestFitLinearSkipsGaps(t *testing.T) {
	fit, err := FitLinear([]Point{{0, 1}, {1, math.NaN()}, {2, 5}, {math.NaN(), 100}, {4, 9}})
	if err != nil {
		t.Fatalf("FitLinear failed: %v", err)
	}
	if fit.N != 3 {
		t.Errorf("Expected 3 points used, got %d", fit.N)
	}
	if math.Abs(fit.Slope-2) > 1e-9 || math.Abs(fit.Intercept-1) > 1e-9 {
		t.Errorf("Expected y = 1 + 2x, got %+v", fit)
	}
}

func TestPositivePoints(t *testing.T) {
	in := []Point{{1, 2}, {0, 3}, {-1, 4}, {5, 0}, {math.NaN(), 1}, {6, 7}}
	out := PositivePoints(in)

	if len(out) != 2 {
		t.Fatalf("Expected 2 positive points, got %d", len(out))
	}
	if out[0] != (Point{1, 2}) || out[1] != (Point{6, 7}) {
		t.Errorf("Unexpected points: %v", out)
	}
}
