package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/sartorproj/polldash/isoweek"
	"github.com/sartorproj/polldash/timeseries"
)

// Week is a resolved weekly bucket.
type Week struct {
	Key   string
	Label isoweek.Label
	Start time.Time
}

// resolveWeeks resolves the keys to week starts, sorted chronologically.
// Keys that fail to parse are dropped and reported in the returned error.
func resolveWeeks(keys []string) ([]Week, error) {
	var weeks []Week
	var errs []error
	for _, key := range keys {
		label, err := isoweek.ParseLabel(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		weeks = append(weeks, Week{Key: key, Label: label, Start: label.Start(time.Local)})
	}

	slices.SortStableFunc(weeks, func(a, b Week) int {
		return a.Start.Compare(b.Start)
	})
	return weeks, errors.Join(errs...)
}

// Weeks returns the weekly buckets of weekly_stats in chronological order.
func (r *Results) Weeks() ([]Week, error) {
	return resolveWeeks(lo.Keys(r.WeeklyStats))
}

// PollsterWeeks returns the weekly buckets of pollsters_stats in
// chronological order.
func (r *Results) PollsterWeeks() ([]Week, error) {
	return resolveWeeks(lo.Keys(r.PollstersStats))
}

// WeeklySeries returns metric per week, timestamped with each week's Monday.
// The series is returned even when some labels were dropped; the error then
// lists them.
func (r *Results) WeeklySeries(metric Metric) (*timeseries.Series, error) {
	if _, err := (PeriodStats{}).Value(metric); err != nil {
		return nil, err
	}

	weeks, labelErr := r.Weeks()
	timestamps := make([]time.Time, len(weeks))
	values := make([]float64, len(weeks))
	for i, w := range weeks {
		timestamps[i] = w.Start
		values[i], _ = r.WeeklyStats[w.Key].Value(metric)
	}

	return &timeseries.Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       string(metric),
	}, labelErr
}

// Authors returns every author appearing in pollsters_stats, sorted.
func (r *Results) Authors() []string {
	var authors []string
	for _, byAuthor := range r.PollstersStats {
		authors = append(authors, lo.Keys(byAuthor)...)
	}
	authors = lo.Uniq(authors)
	slices.Sort(authors)
	return authors
}

// PollsterSeries returns one series per author over the common week axis of
// pollsters_stats, sorted by author. A week without an entry for the author
// is a gap.
func (r *Results) PollsterSeries(metric Metric) ([]*timeseries.Series, error) {
	if _, err := (PollsterStats{}).Value(metric); err != nil {
		return nil, err
	}

	weeks, labelErr := r.PollsterWeeks()
	timestamps := lo.Map(weeks, func(w Week, _ int) time.Time { return w.Start })

	var out []*timeseries.Series
	for _, author := range r.Authors() {
		values := make([]float64, len(weeks))
		for i, w := range weeks {
			stats, ok := r.PollstersStats[w.Key][author]
			if !ok {
				values[i] = timeseries.Missing
				continue
			}
			values[i], _ = stats.Value(metric)
		}
		out = append(out, &timeseries.Series{
			Timestamps: slices.Clone(timestamps),
			Values:     values,
			Name:       author,
		})
	}
	return out, labelErr
}

// MoodSeries returns the daily average mood level in date order.
func (r *Results) MoodSeries() (*timeseries.Series, error) {
	var errs []error
	series := &timeseries.Series{Name: "mood"}
	for key, level := range r.DayMoodAnalysis.DailyAverage {
		day, err := time.ParseInLocation("2006-01-02", key, time.Local)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDate, key))
			continue
		}
		series.Timestamps = append(series.Timestamps, day)
		series.Values = append(series.Values, level)
	}
	return series.SortByTime(), errors.Join(errs...)
}

// WeekdayNames are the daily_stats keys in display order.
var WeekdayNames = []string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica"}

var englishWeekdays = map[string]string{
	"Lunedì":    "Monday",
	"Martedì":   "Tuesday",
	"Mercoledì": "Wednesday",
	"Giovedì":   "Thursday",
	"Venerdì":   "Friday",
	"Sabato":    "Saturday",
	"Domenica":  "Sunday",
}

// Profile is a metric over fixed categories. Empty buckets are gaps.
type Profile struct {
	Labels []string
	Values []float64
}

// DailyProfile returns metric for each weekday, Monday first.
func (r *Results) DailyProfile(metric Metric) (Profile, error) {
	if _, err := (PeriodStats{}).Value(metric); err != nil {
		return Profile{}, err
	}

	p := Profile{Labels: slices.Clone(WeekdayNames), Values: make([]float64, len(WeekdayNames))}
	for i, name := range WeekdayNames {
		stats, ok := r.DailyStats[name]
		if !ok {
			stats, ok = r.DailyStats[englishWeekdays[name]]
		}
		if !ok {
			p.Values[i] = timeseries.Missing
			continue
		}
		p.Values[i], _ = stats.Value(metric)
	}
	return p, nil
}

// HourlyProfile returns metric for each hour of the day, 0 to 23.
func (r *Results) HourlyProfile(metric Metric) (Profile, error) {
	if _, err := (PeriodStats{}).Value(metric); err != nil {
		return Profile{}, err
	}

	p := Profile{Labels: make([]string, 24), Values: make([]float64, 24)}
	for h := 0; h < 24; h++ {
		p.Labels[h] = fmt.Sprintf("%d:00", h)
		stats, ok := r.HourlyStats[strconv.Itoa(h)]
		if !ok {
			p.Values[h] = timeseries.Missing
			continue
		}
		p.Values[h], _ = stats.Value(metric)
	}
	return p, nil
}

// AuthorTotal is an author's most recent cumulative statistics.
type AuthorTotal struct {
	Author string
	PollsterStats
}

// AuthorTotals returns each author's latest cumulative statistics, sorted by
// author.
func (r *Results) AuthorTotals() ([]AuthorTotal, error) {
	weeks, labelErr := r.PollsterWeeks()

	latest := make(map[string]PollsterStats)
	for _, w := range weeks {
		for author, stats := range r.PollstersStats[w.Key] {
			latest[author] = stats
		}
	}

	authors := lo.Keys(latest)
	slices.Sort(authors)
	return lo.Map(authors, func(a string, _ int) AuthorTotal {
		return AuthorTotal{Author: a, PollsterStats: latest[a]}
	}), labelErr
}
