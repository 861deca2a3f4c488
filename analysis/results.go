package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Metric names a numeric field of the summary statistics.
type Metric string

const (
	MetricPolls              Metric = "polls"
	MetricVotes              Metric = "votes"
	MetricMessages           Metric = "messages"
	MetricAvgVotesPerPoll    Metric = "avg_votes_per_poll"
	MetricCumulativePolls    Metric = "cumulative_polls"
	MetricCumulativeVotes    Metric = "cumulative_votes"
	MetricCumulativeMessages Metric = "cumulative_messages"
)

// Results is the decoded analysis_results.json document.
type Results struct {
	BasicStats      BasicStats                          `json:"basic_stats"`
	PollstersStats  map[string]map[string]PollsterStats `json:"pollsters_stats"`
	WeeklyStats     map[string]PeriodStats              `json:"weekly_stats"`
	DailyStats      map[string]PeriodStats              `json:"daily_stats"`
	HourlyStats     map[string]PeriodStats              `json:"hourly_stats"`
	DayMoodAnalysis DayMoodAnalysis                     `json:"day_mood_analysis"`
	Identikits      map[string]any                      `json:"identikits"`
	Rankings        *Rankings                           `json:"rankings,omitempty"`
}

// BasicStats holds the headline numbers.
type BasicStats struct {
	TotalPolls      int     `json:"total_polls"`
	TotalVotes      int     `json:"total_votes"`
	AvgVotesPerPoll float64 `json:"avg_votes_per_poll"`
	MostVotedPoll   *Poll   `json:"most_voted_poll,omitempty"`
	LeastVotedPoll  *Poll   `json:"least_voted_poll,omitempty"`
}

// Poll is a single poll with its vote counts per option.
type Poll struct {
	DateTime   Timestamp      `json:"DateTime"`
	Author     string         `json:"Author"`
	Question   string         `json:"Question"`
	Options    map[string]int `json:"Options"`
	TotalVotes int            `json:"TotalVotes,omitempty"`
}

// Total returns the number of votes cast, summing the options when the
// document does not carry a total.
func (p *Poll) Total() int {
	if p.TotalVotes > 0 {
		return p.TotalVotes
	}
	total := 0
	for _, v := range p.Options {
		total += v
	}
	return total
}

// OptionNames returns the option labels sorted alphabetically.
func (p *Poll) OptionNames() []string {
	names := make([]string, 0, len(p.Options))
	for name := range p.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PeriodStats aggregates activity for a week, weekday or hour.
type PeriodStats struct {
	Polls           int     `json:"polls"`
	Votes           int     `json:"votes"`
	Messages        int     `json:"messages"`
	AvgVotesPerPoll float64 `json:"avg_votes_per_poll"`
}

// Value returns the field named by m.
func (s PeriodStats) Value(m Metric) (float64, error) {
	switch m {
	case MetricPolls:
		return float64(s.Polls), nil
	case MetricVotes:
		return float64(s.Votes), nil
	case MetricMessages:
		return float64(s.Messages), nil
	case MetricAvgVotesPerPoll:
		return s.AvgVotesPerPoll, nil
	}
	return 0, fmt.Errorf("%w: %q for period stats", ErrUnknownMetric, m)
}

// PollsterStats holds one author's cumulative totals up to a week.
type PollsterStats struct {
	CumulativePolls    int     `json:"cumulative_polls"`
	CumulativeVotes    int     `json:"cumulative_votes"`
	CumulativeMessages int     `json:"cumulative_messages"`
	AvgVotesPerPoll    float64 `json:"avg_votes_per_poll"`
}

// Value returns the field named by m.
func (s PollsterStats) Value(m Metric) (float64, error) {
	switch m {
	case MetricCumulativePolls:
		return float64(s.CumulativePolls), nil
	case MetricCumulativeVotes:
		return float64(s.CumulativeVotes), nil
	case MetricCumulativeMessages:
		return float64(s.CumulativeMessages), nil
	case MetricAvgVotesPerPoll:
		return s.AvgVotesPerPoll, nil
	}
	return 0, fmt.Errorf("%w: %q for pollster stats", ErrUnknownMetric, m)
}

// DayMoodAnalysis summarises the "how was your day" polls.
type DayMoodAnalysis struct {
	DayMoodPollsCount int                       `json:"day_mood_polls_count"`
	DailyMoods        map[string]map[string]int `json:"daily_moods"`
	DailyAverage      map[string]float64        `json:"daily_average"`
}

// Load reads and decodes an analysis results file.
func Load(path string) (*Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Decode decodes an analysis results document.
func Decode(r io.Reader) (*Results, error) {
	var res Results
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode analysis results: %w", err)
	}
	return &res, nil
}
