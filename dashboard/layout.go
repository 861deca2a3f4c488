package dashboard

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/polldash/analysis"
)

// ErrInvalidLayout is returned when a layout fails validation.
var ErrInvalidLayout = errors.New("invalid layout")

// Kind selects how a panel is built.
type Kind string

const (
	KindSummary    Kind = "summary"
	KindPeriod     Kind = "period"
	KindPollster   Kind = "pollster"
	KindMood       Kind = "mood"
	KindPowerLaw   Kind = "powerlaw"
	KindRanking    Kind = "ranking"
	KindIdentikits Kind = "identikits"
)

// Period selects the bucket of a period panel.
type Period string

const (
	PeriodWeek Period = "week"
	PeriodDay  Period = "day"
	PeriodHour Period = "hour"
)

// Smoothing selects the moving average used by mood panels.
type Smoothing string

const (
	SmoothingCentered Smoothing = "centered"
	SmoothingTrailing Smoothing = "trailing"
)

const (
	defaultTitle        = "Analisi Sondaggi"
	defaultMoodWindow   = 7
	defaultRankingLimit = 10
)

// Layout describes the page: global settings plus an ordered list of panels.
type Layout struct {
	Title        string      `yaml:"title"`
	MoodWindow   int         `yaml:"mood_window"`
	Smoothing    Smoothing   `yaml:"smoothing"`
	RankingLimit int         `yaml:"ranking_limit"`
	Panels       []PanelSpec `yaml:"panels"`
}

// PanelSpec configures one panel. Period, Metric, Window and Limit only
// apply to the kinds that use them.
type PanelSpec struct {
	ID     string `yaml:"id"`
	Kind   Kind   `yaml:"kind"`
	Title  string `yaml:"title"`
	Period Period `yaml:"period,omitempty"`
	Metric string `yaml:"metric,omitempty"`
	Window int    `yaml:"window,omitempty"`
	Limit  int    `yaml:"limit,omitempty"`
}

// DefaultLayout returns the standard dashboard page.
func DefaultLayout() *Layout {
	return &Layout{
		Title:        defaultTitle,
		MoodWindow:   defaultMoodWindow,
		Smoothing:    SmoothingCentered,
		RankingLimit: defaultRankingLimit,
		Panels: []PanelSpec{
			{ID: "summary", Kind: KindSummary, Title: "Statistiche di base"},
			{ID: "weekly", Kind: KindPeriod, Title: "Analisi Settimanale", Period: PeriodWeek},
			{ID: "daily", Kind: KindPeriod, Title: "Analisi Giornaliera", Period: PeriodDay},
			{ID: "hourly", Kind: KindPeriod, Title: "Analisi Oraria", Period: PeriodHour},
			{ID: "pollster-polls", Kind: KindPollster, Title: "Numero cumulativo di sondaggi per sondaggista", Metric: string(analysis.MetricCumulativePolls)},
			{ID: "pollster-votes", Kind: KindPollster, Title: "Numero cumulativo di voti per sondaggista", Metric: string(analysis.MetricCumulativeVotes)},
			{ID: "pollster-avg", Kind: KindPollster, Title: "Media voti per sondaggio per sondaggista", Metric: string(analysis.MetricAvgVotesPerPoll)},
			{ID: "mood", Kind: KindMood, Title: "Umore giornaliero"},
			{ID: "powerlaw", Kind: KindPowerLaw, Title: "Sondaggi e messaggi per autore"},
			{ID: "rankings", Kind: KindRanking, Title: "Classifiche"},
			{ID: "identikits", Kind: KindIdentikits, Title: "Identikit"},
		},
	}
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout decodes a YAML layout. Omitted global settings take their
// default values. The result is validated.
func ParseLayout(data []byte) (*Layout, error) {
	layout := &Layout{
		Title:        defaultTitle,
		MoodWindow:   defaultMoodWindow,
		Smoothing:    SmoothingCentered,
		RankingLimit: defaultRankingLimit,
	}
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// Validate checks global settings and every panel, reporting all problems.
func (l *Layout) Validate() error {
	var errs []error
	if l.MoodWindow < 1 {
		errs = append(errs, fmt.Errorf("mood_window must be positive, got %d", l.MoodWindow))
	}
	switch l.Smoothing {
	case SmoothingCentered, SmoothingTrailing:
	default:
		errs = append(errs, fmt.Errorf("unknown smoothing %q", l.Smoothing))
	}
	if l.RankingLimit < 0 {
		errs = append(errs, fmt.Errorf("ranking_limit must not be negative, got %d", l.RankingLimit))
	}
	if len(l.Panels) == 0 {
		errs = append(errs, errors.New("no panels"))
	}

	seen := make(map[string]bool)
	for i, p := range l.Panels {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("panel %d: missing id", i))
		} else if seen[p.ID] {
			errs = append(errs, fmt.Errorf("panel %q: duplicate id", p.ID))
		}
		seen[p.ID] = true

		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("panel %q: %w", p.ID, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return nil
}

func (p PanelSpec) validate() error {
	if p.Window < 0 {
		return fmt.Errorf("window must not be negative, got %d", p.Window)
	}
	if p.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", p.Limit)
	}

	switch p.Kind {
	case KindSummary, KindMood, KindPowerLaw, KindRanking, KindIdentikits:
		return nil
	case KindPeriod:
		switch p.Period {
		case PeriodWeek, PeriodDay, PeriodHour:
		default:
			return fmt.Errorf("unknown period %q", p.Period)
		}
		if p.Metric != "" {
			_, err := (analysis.PeriodStats{}).Value(analysis.Metric(p.Metric))
			return err
		}
		return nil
	case KindPollster:
		_, err := (analysis.PollsterStats{}).Value(p.pollsterMetric())
		return err
	}
	return fmt.Errorf("unknown kind %q", p.Kind)
}

func (p PanelSpec) periodMetric() analysis.Metric {
	if p.Metric == "" {
		return analysis.MetricPolls
	}
	return analysis.Metric(p.Metric)
}

func (p PanelSpec) pollsterMetric() analysis.Metric {
	if p.Metric == "" {
		return analysis.MetricCumulativePolls
	}
	return analysis.Metric(p.Metric)
}

func (p PanelSpec) title() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}
