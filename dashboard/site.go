package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/sartorproj/polldash/timeseries"
)

// IndexFile is the name of the page written by WriteSite.
const IndexFile = "index.html"

// WriteSite writes the page into dir: one image per figure in the given
// format, one CSV per series of every time-axis figure, and IndexFile.
// File names are slugs of the figure and series names; a slug already taken
// within the site gets a numeric suffix. The chosen names are recorded in
// Figure.Image and FigureSeries.File.
// A figure whose image or data cannot be written is reported in the
// returned error while the rest of the site is still written.
func WriteSite(dir string, page *Page, format string) error {
	if format != FormatSVG && format != FormatPNG {
		return fmt.Errorf("unsupported image format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var errs []error
	names := newNamer("-")
	for _, fig := range page.Figures() {
		name := names.name(slug(fig.ID), "."+format)
		if err := writeImage(filepath.Join(dir, name), fig, format); err != nil {
			errs = append(errs, fmt.Errorf("figure %q image: %w", fig.ID, err))
			fig.Image = ""
		} else {
			fig.Image = name
		}

		if fig.TimeAxis() {
			for i := range fig.Series {
				s := &fig.Series[i]
				s.File = names.name(slug(fig.ID)+"_"+slug(s.Name), ".csv")
				if err := writeSeriesCSV(filepath.Join(dir, s.File), fig.Times, s); err != nil {
					errs = append(errs, fmt.Errorf("figure %q series %q: %w", fig.ID, s.Name, err))
					s.File = ""
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := RenderHTML(&buf, page); err != nil {
		return errors.Join(append(errs, err)...)
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), buf.Bytes(), 0o644); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func writeImage(path string, fig *Figure, format string) error {
	var buf bytes.Buffer
	if err := RenderImage(&buf, fig, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeSeriesCSV(path string, times []time.Time, s *FigureSeries) error {
	series, err := timeseries.NewWithTimestamps(times, s.Values)
	if err != nil {
		return err
	}
	series.Name = s.Name
	return timeseries.SaveCSV(series, path)
}

// namer hands out names that are unique within one page. A taken name gets
// sep and a counter appended to its base.
type namer struct {
	sep  string
	used map[string]bool
}

func newNamer(sep string) *namer {
	return &namer{sep: sep, used: make(map[string]bool)}
}

func (n *namer) name(base, ext string) string {
	name := base + ext
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s%s%d%s", base, n.sep, i, ext)
	}
	n.used[name] = true
	return name
}

// slug lowercases s and replaces every run of non-alphanumerics with a dash.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
