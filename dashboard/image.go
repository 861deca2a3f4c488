package dashboard

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/sartorproj/polldash/stats"
	"github.com/sartorproj/polldash/timeseries"
)

// Image formats accepted by RenderImage.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	imageWidth  = 1024
	imageHeight = 480
)

// RenderImage draws fig as a static SVG or PNG. Missing values are skipped.
// Log axes are drawn as base-10 logarithms of the values.
func RenderImage(w io.Writer, fig *Figure, format string) error {
	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	graph, err := imageChart(fig)
	if err != nil {
		return err
	}
	return graph.Render(provider, w)
}

func imageChart(fig *Figure) (*chart.Chart, error) {
	graph := &chart.Chart{
		Title:  fig.Title,
		Width:  imageWidth,
		Height: imageHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: axisLabel(fig.XAxis)},
	}
	if len(fig.YAxes) > 0 {
		graph.YAxis = chart.YAxis{Name: axisLabel(fig.YAxes[0])}
	}
	if len(fig.YAxes) > 1 {
		graph.YAxisSecondary = chart.YAxis{Name: axisLabel(fig.YAxes[1])}
	}

	switch {
	case fig.Scatter != nil:
		graph.Series = scatterSeries(fig)
	case fig.TimeAxis():
		graph.XAxis.ValueFormatter = chart.TimeValueFormatterWithFormat("2006-01-02")
		for _, s := range fig.Series {
			if ts, ok := timeSeries(s, fig.Times); ok {
				graph.Series = append(graph.Series, ts)
			}
		}
	default:
		xs := make([]float64, len(fig.Categories))
		for i, label := range fig.Categories {
			xs[i] = float64(i)
			graph.XAxis.Ticks = append(graph.XAxis.Ticks, chart.Tick{Value: float64(i), Label: label})
		}
		for _, s := range fig.Series {
			if cs, ok := continuousSeries(s.Name, yAxisType(s.YAxis), xs, s.Values); ok {
				graph.Series = append(graph.Series, cs)
			}
		}
	}

	if len(graph.Series) == 0 {
		return nil, ErrEmptyFigure
	}
	padRanges(graph)
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

// span tracks the extent of the values drawn on one axis.
type span struct {
	min, max float64
	set      bool
}

func (s *span) add(v float64) {
	if !s.set {
		s.min, s.max, s.set = v, v, true
		return
	}
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

func (s span) flat() bool {
	return s.set && s.min == s.max
}

// padRanges gives an explicit range to every axis whose values are all
// equal. go-chart refuses to draw an axis with a zero-width range, which a
// single week, a single author or a constant series would otherwise produce.
func padRanges(graph *chart.Chart) {
	var x, y, y2 span
	timeAxis := false
	for _, series := range graph.Series {
		ys := &y
		switch s := series.(type) {
		case chart.TimeSeries:
			timeAxis = true
			if s.YAxis == chart.YAxisSecondary {
				ys = &y2
			}
			for i, t := range s.XValues {
				x.add(chart.TimeToFloat64(t))
				ys.add(s.YValues[i])
			}
		case chart.ContinuousSeries:
			if s.YAxis == chart.YAxisSecondary {
				ys = &y2
			}
			for i, v := range s.XValues {
				x.add(v)
				ys.add(s.YValues[i])
			}
		}
	}

	if x.flat() {
		pad := 1.0
		if timeAxis {
			t := time.Unix(0, 0)
			pad = chart.TimeToFloat64(t.Add(24*time.Hour)) - chart.TimeToFloat64(t)
		}
		graph.XAxis.Range = &chart.ContinuousRange{Min: x.min - pad, Max: x.max + pad}
	}
	if y.flat() {
		graph.YAxis.Range = paddedRange(y.min)
	}
	if y2.flat() {
		graph.YAxisSecondary.Range = paddedRange(y2.min)
	}
}

func paddedRange(v float64) *chart.ContinuousRange {
	pad := math.Max(math.Abs(v)*0.1, 1)
	return &chart.ContinuousRange{Min: v - pad, Max: v + pad}
}

func axisLabel(a Axis) string {
	if a.Type == AxisLog {
		return "log10 " + a.Name
	}
	return a.Name
}

func yAxisType(i int) chart.YAxisType {
	if i > 0 {
		return chart.YAxisSecondary
	}
	return chart.YAxisPrimary
}

func timeSeries(s FigureSeries, times []time.Time) (chart.TimeSeries, bool) {
	ts := chart.TimeSeries{Name: s.Name, YAxis: yAxisType(s.YAxis)}
	for i, v := range s.Values {
		if i >= len(times) || timeseries.IsMissing(v) {
			continue
		}
		ts.XValues = append(ts.XValues, times[i])
		ts.YValues = append(ts.YValues, v)
	}
	return ts, len(ts.XValues) > 0
}

func continuousSeries(name string, axis chart.YAxisType, xs, ys []float64) (chart.ContinuousSeries, bool) {
	cs := chart.ContinuousSeries{Name: name, YAxis: axis}
	for i, y := range ys {
		if i >= len(xs) || timeseries.IsMissing(y) || timeseries.IsMissing(xs[i]) {
			continue
		}
		cs.XValues = append(cs.XValues, xs[i])
		cs.YValues = append(cs.YValues, y)
	}
	return cs, len(cs.XValues) > 0
}

func scatterSeries(fig *Figure) []chart.Series {
	var out []chart.Series

	xs, ys := logPoints(fig.Scatter.Points)
	if points, ok := continuousSeries("Autori", chart.YAxisPrimary, xs, ys); ok {
		points.Style = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5}
		out = append(out, points)
	}

	xs, ys = logPoints(fig.Scatter.Trend)
	if trend, ok := continuousSeries("Tendenza", chart.YAxisPrimary, xs, ys); ok {
		out = append(out, trend)
	}
	return out
}

// logPoints returns log10 of the coordinates. Non-positive values become NaN
// and are skipped by continuousSeries.
func logPoints(points []stats.Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = log10(p.X)
		ys[i] = log10(p.Y)
	}
	return xs, ys
}

func log10(v float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}
