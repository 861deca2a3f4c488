package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/polldash/analysis"
)

func TestWriteSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	page := build(t, nil, loadResults(t))

	require.NoError(t, WriteSite(dir, page, FormatSVG))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), `src="weekly.svg"`)

	for _, name := range []string{"weekly.svg", "daily.svg", "mood.svg", "powerlaw.svg"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "weekly_numero-di-sondaggi.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ds,y\n2023-12-25,2\n2024-01-01,3\n2024-01-08,1\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "pollster-polls_orco-tenace.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{"ds,y", "2023-12-25,", "2024-01-01,", "2024-01-08,0"}, lines)
}

func TestWriteSite_FigureFailuresDoNotStopPage(t *testing.T) {
	dir := t.TempDir()
	page := build(t, nil, &analysis.Results{})

	err := WriteSite(dir, page, FormatSVG)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyFigure)
	assert.FileExists(t, filepath.Join(dir, IndexFile))
}

func TestWriteSite_CollidingSeriesNames(t *testing.T) {
	dir := t.TempDir()
	week := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fig := &Figure{
		ID:    "p",
		Title: "Sondaggi",
		XAxis: Axis{Name: "Data", Type: AxisTime},
		Times: []time.Time{week, week.AddDate(0, 0, 7)},
		Series: []FigureSeries{
			{Name: "Ann B", Style: StyleLine, Values: []float64{1, 2}},
			{Name: "ann-b", Style: StyleLine, Values: []float64{9, 10}},
		},
	}
	page := &Page{Panels: []*Panel{{ID: "p", Kind: KindPollster, Figures: []*Figure{fig}}}}

	require.NoError(t, WriteSite(dir, page, FormatSVG))

	assert.Equal(t, "p_ann-b.csv", fig.Series[0].File)
	assert.Equal(t, "p_ann-b-2.csv", fig.Series[1].File)

	data, err := os.ReadFile(filepath.Join(dir, "p_ann-b.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ds,y\n2024-01-01,1\n2024-01-08,2\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "p_ann-b-2.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ds,y\n2024-01-01,9\n2024-01-08,10\n", string(data))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="p_ann-b.csv"`)
	assert.Contains(t, string(index), `href="p_ann-b-2.csv"`)
}

func TestWriteSite_CollidingFigureIDs(t *testing.T) {
	dir := t.TempDir()
	newFig := func(id string) *Figure {
		return &Figure{ID: id, Categories: []string{"a", "b"}, Series: []FigureSeries{{Name: "s", Values: []float64{1, 2}}}}
	}
	first, second := newFig("a b"), newFig("a-b")
	page := &Page{Panels: []*Panel{{ID: "x", Figures: []*Figure{first, second}}}}

	require.NoError(t, WriteSite(dir, page, FormatSVG))
	assert.Equal(t, "a-b.svg", first.Image)
	assert.Equal(t, "a-b-2.svg", second.Image)
	assert.FileExists(t, filepath.Join(dir, "a-b.svg"))
	assert.FileExists(t, filepath.Join(dir, "a-b-2.svg"))
}

func TestNamer(t *testing.T) {
	names := newNamer("-")
	assert.Equal(t, "a.csv", names.name("a", ".csv"))
	assert.Equal(t, "a-2.csv", names.name("a", ".csv"))
	assert.Equal(t, "a-3.csv", names.name("a", ".csv"))
	assert.Equal(t, "a.svg", names.name("a", ".svg"))

	ids := newNamer("_")
	assert.Equal(t, "chart_a_b", ids.name("chart_a_b", ""))
	assert.Equal(t, "chart_a_b_2", ids.name("chart_a_b", ""))
}

func TestWriteSite_BadFormat(t *testing.T) {
	err := WriteSite(t.TempDir(), &Page{}, "bmp")
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "drago-saggio", slug("Drago Saggio"))
	assert.Equal(t, "media-mobile-7-giorni", slug("Media mobile (7 giorni)"))
	assert.Equal(t, "lunedì", slug("Lunedì"))
	assert.Equal(t, "pollster-polls", slug("pollster-polls"))
}
