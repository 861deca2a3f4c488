package dashboard

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/samber/lo"

	"github.com/sartorproj/polldash/timeseries"
)

// ErrEmptyFigure is returned when a figure has nothing to draw.
var ErrEmptyFigure = errors.New("figure has no data")

const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

type pageView struct {
	Title       string
	GeneratedAt string
	Panels      []panelView
	Failures    []failureView
}

type panelView struct {
	ID     string
	Kind   Kind
	Title  string
	Stats  []Stat
	Charts []chartView
	Tables []Table
	Notes  []string
}

type chartView struct {
	Title   string
	Snippet template.HTML
	Image   string
	Files   []FigureSeries
}

type failureView struct {
	PanelID string
	Error   string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="it">
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
    <style>
        body { font-family: sans-serif; margin: 0; background: #f4f6f8; color: #1f2933; }
        header { background: #1f2933; color: #fff; padding: 1em 2em; }
        nav a { color: #cbd2d9; margin-right: 1em; text-decoration: none; }
        nav a.active { color: #fff; font-weight: bold; }
        main { padding: 1em 2em; }
        section.panel { display: none; }
        section.panel.active { display: block; }
        .stats { display: flex; gap: 1em; }
        .stat { background: #fff; padding: 1em; border-radius: 4px; }
        .stat .label { display: block; font-size: 0.8em; color: #616e7c; }
        .stat .value { font-size: 1.6em; }
        table { border-collapse: collapse; background: #fff; margin-bottom: 1em; }
        th, td { border: 1px solid #cbd2d9; padding: 0.3em 0.8em; text-align: left; }
        img.zoomable { max-width: 240px; cursor: zoom-in; display: block; }
        .image-zoom-modal { position: fixed; inset: 0; background: rgba(0, 0, 0, 0.8); display: flex; align-items: center; justify-content: center; cursor: zoom-out; }
        .image-zoom-modal img { max-width: 90%; max-height: 90%; background: #fff; }
        .note { font-style: italic; color: #616e7c; }
        .failures { color: #ab091e; }
    </style>
</head>
<body>
<header>
    <h1>{{.Title}}</h1>
    <p>Generato il {{.GeneratedAt}}</p>
    <nav>{{range $i, $p := .Panels}}<a href="#{{$p.ID}}"{{if eq $i 0}} class="active"{{end}}>{{$p.Title}}</a>{{end}}</nav>
</header>
<main>
{{- range $i, $p := .Panels}}
<section id="{{$p.ID}}" class="panel panel-{{$p.Kind}}{{if eq $i 0}} active{{end}}">
    <h2>{{$p.Title}}</h2>
    {{- if $p.Stats}}
    <div class="stats">{{range $p.Stats}}<div class="stat"><span class="label">{{.Label}}</span><span class="value">{{.Value}}</span></div>{{end}}</div>
    {{- end}}
    {{- range $p.Charts}}
    <div class="chart">
        {{.Snippet}}
        {{- if .Image}}
        <img class="zoomable" src="{{.Image}}" alt="{{.Title}}">
        {{- end}}
        {{- if .Files}}
        <p class="downloads">CSV:{{range .Files}} <a href="{{.File}}" download>{{.Name}}</a>{{end}}</p>
        {{- end}}
    </div>
    {{- end}}
    {{- range $p.Tables}}
    <div class="table">
        {{- if .Title}}<h3>{{.Title}}</h3>{{end}}
        <table>
            <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
            {{- range .Rows}}
            <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
            {{- end}}
        </table>
    </div>
    {{- end}}
    {{- range $p.Notes}}
    <p class="note">{{.}}</p>
    {{- end}}
</section>
{{- end}}
{{- if .Failures}}
<aside class="failures">
    <h2>Pannelli non disponibili</h2>
    <ul>{{range .Failures}}<li>{{.PanelID}}: {{.Error}}</li>{{end}}</ul>
</aside>
{{- end}}
</main>
<script>
document.querySelectorAll('nav a').forEach(function (link) {
    link.addEventListener('click', function (e) {
        e.preventDefault();
        var target = document.getElementById(link.getAttribute('href').slice(1));
        document.querySelectorAll('section.panel').forEach(function (s) { s.classList.remove('active'); });
        document.querySelectorAll('nav a').forEach(function (a) { a.classList.remove('active'); });
        target.classList.add('active');
        link.classList.add('active');
    });
});
document.querySelectorAll('img.zoomable').forEach(function (img) {
    img.addEventListener('click', function () {
        var modal = document.createElement('div');
        modal.className = 'image-zoom-modal';
        var big = document.createElement('img');
        big.src = img.src;
        modal.appendChild(big);
        modal.addEventListener('click', function () { document.body.removeChild(modal); });
        document.body.appendChild(modal);
    });
});
</script>
</body>
</html>
`))

// RenderHTML writes page as a single HTML document. Charts are embedded as
// ECharts snippets; a figure that cannot be drawn is replaced by a note.
func RenderHTML(w io.Writer, page *Page) error {
	view := pageView{
		Title:       page.Title,
		GeneratedAt: page.GeneratedAt.Format("2006-01-02 15:04"),
	}

	ids := newNamer("_")
	for _, p := range page.Panels {
		pv := panelView{
			ID:     p.ID,
			Kind:   p.Kind,
			Title:  p.Title,
			Stats:  p.Stats,
			Tables: p.Tables,
			Notes:  p.Notes,
		}
		for _, fig := range p.Figures {
			snippet, err := chartSnippet(fig, ids.name(chartID(fig.ID), ""))
			if err != nil {
				pv.Notes = append(pv.Notes, fmt.Sprintf("%s: %v", fig.Title, err))
				continue
			}
			pv.Charts = append(pv.Charts, chartView{
				Title:   fig.Title,
				Snippet: snippet,
				Image:   fig.Image,
				Files: lo.Filter(fig.Series, func(s FigureSeries, _ int) bool {
					return s.File != ""
				}),
			})
		}
		view.Panels = append(view.Panels, pv)
	}

	for _, f := range page.Failures {
		view.Failures = append(view.Failures, failureView{PanelID: f.PanelID, Error: f.Err.Error()})
	}

	return pageTemplate.Execute(w, view)
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

func renderSnippet(c snippetRenderer) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + "\n" + s.Script)
}

func boolPtr(b bool) *bool { return &b }

// chartID turns a figure id into a valid JavaScript identifier.
func chartID(id string) string {
	return "chart_" + strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, id)
}

func globalOpts(fig *Figure, id, trigger string) []charts.GlobalOpts {
	yName := ""
	if len(fig.YAxes) > 0 {
		yName = fig.YAxes[0].Name
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   chartWidth,
			Height:  chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true), Trigger: trigger}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XAxis.Name, Type: echartsAxisType(fig.XAxis.Type)}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: echartsAxisType(yType(fig, 0))}),
	}
}

// echartsAxisType maps axis types to ECharts names. Time axes are drawn
// over date labels.
func echartsAxisType(t AxisType) string {
	switch t {
	case AxisTime, AxisCategory:
		return "category"
	case AxisLog:
		return "log"
	}
	return "value"
}

func yType(fig *Figure, i int) AxisType {
	if i < len(fig.YAxes) && fig.YAxes[i].Type != "" {
		return fig.YAxes[i].Type
	}
	return AxisValue
}

func chartSnippet(fig *Figure, id string) (template.HTML, error) {
	if fig.Scatter != nil {
		return scatterSnippet(fig, id)
	}

	labels := fig.Categories
	if fig.TimeAxis() {
		labels = dateLabels(fig.Times)
	}
	if len(labels) == 0 || len(fig.Series) == 0 {
		return "", ErrEmptyFigure
	}

	extraAxes := make([]opts.YAxis, 0, len(fig.YAxes))
	for i := 1; i < len(fig.YAxes); i++ {
		extraAxes = append(extraAxes, opts.YAxis{Name: fig.YAxes[i].Name, Type: echartsAxisType(yType(fig, i))})
	}

	var bars []FigureSeries
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(fig, id, "axis")...)
	line.SetXAxis(labels)
	for _, s := range fig.Series {
		if s.Style == StyleBar {
			bars = append(bars, s)
			continue
		}
		line.AddSeries(s.Name, lineData(s.Values), charts.WithLineChartOpts(opts.LineChart{
			YAxisIndex:   s.YAxis,
			ConnectNulls: boolPtr(false),
		}))
	}

	if len(bars) == 0 {
		if len(extraAxes) > 0 {
			line.ExtendYAxis(extraAxes...)
		}
		return renderSnippet(line), nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(fig, id, "axis")...)
	bar.SetXAxis(labels)
	for _, s := range bars {
		bar.AddSeries(s.Name, barData(s.Values), charts.WithBarChartOpts(opts.BarChart{YAxisIndex: s.YAxis}))
	}
	if len(extraAxes) > 0 {
		bar.ExtendYAxis(extraAxes...)
	}
	if len(fig.Series) > len(bars) {
		bar.Overlap(line)
	}
	return renderSnippet(bar), nil
}

func scatterSnippet(fig *Figure, id string) (template.HTML, error) {
	sc := fig.Scatter
	if len(sc.Points) == 0 {
		return "", ErrEmptyFigure
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globalOpts(fig, id, "item")...)

	data := make([]opts.ScatterData, len(sc.Points))
	for i, p := range sc.Points {
		data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		if i < len(sc.Labels) {
			data[i].Name = sc.Labels[i]
		}
	}
	scatter.AddSeries("Autori", data)

	if len(sc.Trend) > 0 {
		trend := make([]opts.LineData, len(sc.Trend))
		for i, p := range sc.Trend {
			trend[i] = opts.LineData{Value: []interface{}{p.X, p.Y}}
		}
		line := charts.NewLine()
		line.AddSeries("Tendenza", trend, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: boolPtr(false)}))
		scatter.Overlap(line)
	}
	return renderSnippet(scatter), nil
}

// missingValue is the ECharts placeholder for an absent data point.
const missingValue = "-"

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if timeseries.IsMissing(v) {
			out[i] = opts.LineData{Value: missingValue}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func barData(values []float64) []opts.BarData {
	out := make([]opts.BarData, len(values))
	for i, v := range values {
		if timeseries.IsMissing(v) {
			out[i] = opts.BarData{Value: missingValue}
			continue
		}
		out[i] = opts.BarData{Value: v}
	}
	return out
}
