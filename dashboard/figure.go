package dashboard

import (
	"time"

	"github.com/sartorproj/polldash/stats"
)

// AxisType is the scale of a figure axis.
type AxisType string

const (
	AxisCategory AxisType = "category"
	AxisTime     AxisType = "time"
	AxisValue    AxisType = "value"
	AxisLog      AxisType = "log"
)

// Style is how a series is drawn.
type Style string

const (
	StyleBar  Style = "bar"
	StyleLine Style = "line"
)

// Axis describes one axis of a figure.
type Axis struct {
	Name string
	Type AxisType
}

// FigureSeries is one plotted series. Values align with the figure's
// categories or times; missing values are NaN and drawn as gaps.
type FigureSeries struct {
	Name   string
	Style  Style
	YAxis  int
	Values []float64

	// File is the CSV export of the series, set by WriteSite.
	File string
}

// Scatter is a labelled point cloud with an optional fitted trend.
type Scatter struct {
	Points []stats.Point
	Labels []string
	Trend  []stats.Point
}

// Figure is a renderer-neutral chart description. Exactly one of
// Categories, Times or Scatter defines the x domain.
type Figure struct {
	ID         string
	Title      string
	XAxis      Axis
	YAxes      []Axis
	Categories []string
	Times      []time.Time
	Series     []FigureSeries
	Scatter    *Scatter

	// Image is the file name of the static rendering, set by WriteSite.
	Image string
}

// TimeAxis reports whether the figure is drawn over time.
func (f *Figure) TimeAxis() bool {
	return len(f.Times) > 0
}

// Stat is a headline number.
type Stat struct {
	Label string
	Value string
}

// Table is a titled grid of cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Panel is one built section of the page.
type Panel struct {
	ID      string
	Kind    Kind
	Title   string
	Stats   []Stat
	Figures []*Figure
	Tables  []Table
	Notes   []string
}
