package dashboard

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/sartorproj/polldash/analysis"
	"github.com/sartorproj/polldash/stats"
	"github.com/sartorproj/polldash/timeseries"
)

// NoFit is the note attached to a power-law panel without a usable fit.
const NoFit = "no fit"

const trendSamples = 20

type panelFunc func(b *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error)

var panelFuncs = map[Kind]panelFunc{
	KindSummary:    buildSummary,
	KindPeriod:     buildPeriod,
	KindPollster:   buildPollster,
	KindMood:       buildMood,
	KindPowerLaw:   buildPowerLaw,
	KindRanking:    buildRanking,
	KindIdentikits: buildIdentikits,
}

func newPanel(spec PanelSpec) *Panel {
	return &Panel{ID: spec.ID, Kind: spec.Kind, Title: spec.title()}
}

func buildSummary(_ *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	bs := res.BasicStats
	p := newPanel(spec)
	p.Stats = []Stat{
		{Label: "Sondaggi totali", Value: fmt.Sprintf("%d", bs.TotalPolls)},
		{Label: "Voti totali", Value: fmt.Sprintf("%d", bs.TotalVotes)},
		{Label: "Media voti per sondaggio", Value: fmt.Sprintf("%.2f", bs.AvgVotesPerPoll)},
	}

	if bs.MostVotedPoll != nil {
		p.Tables = append(p.Tables, pollTable("Sondaggio più votato", bs.MostVotedPoll))
	}
	if bs.LeastVotedPoll != nil {
		p.Tables = append(p.Tables, pollTable("Sondaggio meno votato", bs.LeastVotedPoll))
	}
	return p, nil
}

func pollTable(title string, poll *analysis.Poll) Table {
	t := Table{
		Title:   fmt.Sprintf("%s: %s (%s, %s)", title, poll.Question, poll.Author, poll.DateTime.Format("2006-01-02 15:04")),
		Columns: []string{"Opzione", "Voti"},
	}
	for _, name := range poll.OptionNames() {
		t.Rows = append(t.Rows, []string{name, fmt.Sprintf("%d", poll.Options[name])})
	}
	t.Rows = append(t.Rows, []string{"Totale", fmt.Sprintf("%d", poll.Total())})
	return t
}

// buildPeriod draws the panel metric as bars on the left axis and the
// average votes per poll as a line on the right axis.
func buildPeriod(_ *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	metric := spec.periodMetric()
	fig := &Figure{
		ID:    spec.ID,
		Title: spec.title(),
		YAxes: []Axis{
			{Name: metricName(metric), Type: AxisValue},
			{Name: metricName(analysis.MetricAvgVotesPerPoll), Type: AxisValue},
		},
	}

	var bars, line []float64
	var warn error
	switch spec.Period {
	case PeriodWeek:
		primary, err := res.WeeklySeries(metric)
		if primary == nil {
			return nil, err
		}
		avg, _ := res.WeeklySeries(analysis.MetricAvgVotesPerPoll)
		warn = err
		fig.XAxis = Axis{Name: "Settimana", Type: AxisTime}
		fig.Times = primary.Timestamps
		bars, line = primary.Values, avg.Values
	case PeriodDay, PeriodHour:
		profile := res.DailyProfile
		fig.XAxis = Axis{Name: "Giorno", Type: AxisCategory}
		if spec.Period == PeriodHour {
			profile = res.HourlyProfile
			fig.XAxis.Name = "Ora"
		}
		primary, err := profile(metric)
		if err != nil {
			return nil, err
		}
		avg, _ := profile(analysis.MetricAvgVotesPerPoll)
		fig.Categories = primary.Labels
		bars, line = primary.Values, avg.Values
	default:
		return nil, fmt.Errorf("unknown period %q", spec.Period)
	}

	if len(bars) == 0 {
		return nil, errors.Join(analysis.ErrNoData, warn)
	}

	fig.Series = []FigureSeries{
		{Name: metricName(metric), Style: StyleBar, YAxis: 0, Values: bars},
		{Name: metricName(analysis.MetricAvgVotesPerPoll), Style: StyleLine, YAxis: 1, Values: line},
	}

	p := newPanel(spec)
	p.Figures = []*Figure{fig}
	return p, warn
}

func buildPollster(_ *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	metric := spec.pollsterMetric()
	series, err := res.PollsterSeries(metric)
	if len(series) == 0 {
		return nil, errors.Join(analysis.ErrNoData, err)
	}

	fig := &Figure{
		ID:    spec.ID,
		Title: spec.title(),
		XAxis: Axis{Name: "Data", Type: AxisTime},
		YAxes: []Axis{{Name: metricName(metric), Type: AxisValue}},
		Times: series[0].Timestamps,
		Series: lo.Map(series, func(s *timeseries.Series, _ int) FigureSeries {
			return FigureSeries{Name: s.Name, Style: StyleLine, Values: s.Values}
		}),
	}

	p := newPanel(spec)
	p.Figures = []*Figure{fig}
	return p, err
}

func buildMood(b *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	raw, err := res.MoodSeries()
	if raw.Len() == 0 {
		return nil, errors.Join(analysis.ErrNoData, err)
	}

	window := spec.Window
	if window == 0 {
		window = b.layout.MoodWindow
	}

	var smoothed *timeseries.Series
	var smoothErr error
	if b.layout.Smoothing == SmoothingTrailing {
		smoothed, smoothErr = raw.TrailingAverage(window)
	} else {
		smoothed, smoothErr = raw.MovingAverage(window)
		window = oddWindow(window)
	}
	if smoothErr != nil {
		return nil, smoothErr
	}

	fig := &Figure{
		ID:    spec.ID,
		Title: spec.title(),
		XAxis: Axis{Name: "Giorno", Type: AxisTime},
		YAxes: []Axis{{Name: "Umore medio", Type: AxisValue}},
		Times: raw.Timestamps,
		Series: []FigureSeries{
			{Name: "Media giornaliera", Style: StyleLine, Values: raw.Values},
			{Name: fmt.Sprintf("Media mobile (%d giorni)", window), Style: StyleLine, Values: smoothed.Values},
		},
	}

	p := newPanel(spec)
	p.Stats = []Stat{{Label: "Sondaggi sull'umore", Value: fmt.Sprintf("%d", res.DayMoodAnalysis.DayMoodPollsCount)}}
	p.Figures = []*Figure{fig}
	return p, err
}

func oddWindow(window int) int {
	if window%2 == 0 {
		return window + 1
	}
	return window
}

// buildPowerLaw plots each author's total polls against total messages on
// log axes. Authors with a zero count cannot be placed on a log axis and are
// left out. The fitted trend is dropped when the fit is not finite.
func buildPowerLaw(_ *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	totals, err := res.AuthorTotals()

	var points []stats.Point
	var labels []string
	for _, t := range totals {
		pt := stats.Point{X: float64(t.CumulativePolls), Y: float64(t.CumulativeMessages)}
		if pt.X > 0 && pt.Y > 0 {
			points = append(points, pt)
			labels = append(labels, t.Author)
		}
	}
	if len(points) == 0 {
		return nil, errors.Join(analysis.ErrNoData, err)
	}

	p := newPanel(spec)
	scatter := &Scatter{Points: points, Labels: labels}
	fit, fitErr := stats.FitPowerLaw(points)
	if fitErr != nil || !fit.Finite() {
		p.Notes = append(p.Notes, NoFit)
	} else {
		scatter.Trend = trendLine(fit, points)
		p.Stats = []Stat{
			{Label: "Esponente", Value: fmt.Sprintf("%.3f", fit.Slope)},
			{Label: "Coefficiente", Value: fmt.Sprintf("%.3f", math.Exp(fit.Intercept))},
			{Label: "R²", Value: formatFloat(fit.RSquared, 3)},
		}
	}

	p.Figures = []*Figure{{
		ID:      spec.ID,
		Title:   spec.title(),
		XAxis:   Axis{Name: "Sondaggi", Type: AxisLog},
		YAxes:   []Axis{{Name: "Messaggi", Type: AxisLog}},
		Scatter: scatter,
	}}
	return p, err
}

// trendLine samples the fitted power law at log-spaced x between the
// smallest and largest observation.
func trendLine(fit stats.Fit, points []stats.Point) []stats.Point {
	xs := lo.Map(points, func(p stats.Point, _ int) float64 { return p.X })
	low, high := math.Log(slices.Min(xs)), math.Log(slices.Max(xs))
	if low == high {
		x := math.Exp(low)
		return []stats.Point{{X: x, Y: fit.PowerAt(x)}}
	}

	out := make([]stats.Point, trendSamples)
	for i := range out {
		x := math.Exp(low + (high-low)*float64(i)/float64(trendSamples-1))
		out[i] = stats.Point{X: x, Y: fit.PowerAt(x)}
	}
	return out
}

func buildRanking(b *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	limit := spec.Limit
	if limit == 0 {
		limit = b.layout.RankingLimit
	}

	rankings, err := res.Rank(limit)
	p := newPanel(spec)
	p.Tables = []Table{
		rankingTable("Top Autori per Sondaggi", rankings.ByPolls),
		rankingTable("Top Autori per Voti", rankings.ByVotes),
		rankingTable("Top Autori per Media Voti", rankings.ByAvgVotes),
	}
	return p, err
}

func rankingTable(title string, entries []analysis.RankEntry) Table {
	t := Table{Title: title, Columns: []string{"Posizione", "Nome", "Valore"}}
	for i, e := range entries {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%.0f", math.Round(e.Value)),
		})
	}
	return t
}

func buildIdentikits(_ *Builder, spec PanelSpec, res *analysis.Results) (*Panel, error) {
	if len(res.Identikits) == 0 {
		return nil, analysis.ErrNoData
	}

	authors := lo.Keys(res.Identikits)
	slices.Sort(authors)

	t := Table{Columns: []string{"Autore", "Identikit"}}
	for _, author := range authors {
		t.Rows = append(t.Rows, []string{author, describe(res.Identikits[author])})
	}

	p := newPanel(spec)
	p.Tables = []Table{t}
	return p, nil
}

// describe flattens an identikit value into one line, keys sorted.
func describe(v any) string {
	switch v := v.(type) {
	case map[string]any:
		keys := lo.Keys(v)
		slices.Sort(keys)
		parts := lo.Map(keys, func(k string, _ int) string {
			return k + ": " + describe(v[k])
		})
		return strings.Join(parts, "; ")
	case []any:
		return strings.Join(lo.Map(v, func(e any, _ int) string { return describe(e) }), ", ")
	case float64:
		return formatFloat(v, 2)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/d"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.*f", prec, v)
}

var metricNames = map[analysis.Metric]string{
	analysis.MetricPolls:              "Numero di sondaggi",
	analysis.MetricVotes:              "Numero di voti",
	analysis.MetricMessages:           "Numero di messaggi",
	analysis.MetricAvgVotesPerPoll:    "Media voti per sondaggio",
	analysis.MetricCumulativePolls:    "Sondaggi cumulativi",
	analysis.MetricCumulativeVotes:    "Voti cumulativi",
	analysis.MetricCumulativeMessages: "Messaggi cumulativi",
}

func metricName(m analysis.Metric) string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return string(m)
}

func dateLabels(times []time.Time) []string {
	return lo.Map(times, func(t time.Time, _ int) string { return t.Format("2006-01-02") })
}
