package isoweek

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a label is not two dash-separated integers
// or its week falls outside 1..53.
var ErrInvalidFormat = errors.New("invalid week label")

// Label identifies an ISO week of a year.
type Label struct {
	Year int
	Week int // 1-based, 1..53
}

// ParseLabel parses a "YYYY-WW" label.
func ParseLabel(s string) (Label, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Label{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Label{}, fmt.Errorf("%w: %q: year: %v", ErrInvalidFormat, s, err)
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil {
		return Label{}, fmt.Errorf("%w: %q: week: %v", ErrInvalidFormat, s, err)
	}
	if week < 1 || week > 53 {
		return Label{}, fmt.Errorf("%w: %q: week %d out of range", ErrInvalidFormat, s, week)
	}

	return Label{Year: year, Week: week}, nil
}

// Start returns the Monday at midnight in loc that starts the week.
func (l Label) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	simple := time.Date(l.Year, time.January, 1+7*(l.Week-1), 0, 0, 0, 0, loc)
	dow := int(simple.Weekday())

	// Sunday..Thursday belong to the week that started on the preceding
	// (or, for Sunday, following) Monday; Friday and Saturday roll forward.
	if dow <= int(time.Thursday) {
		return simple.AddDate(0, 0, 1-dow)
	}
	return simple.AddDate(0, 0, 8-dow)
}

// String formats the label as "YYYY-WW".
func (l Label) String() string {
	return fmt.Sprintf("%04d-%02d", l.Year, l.Week)
}

// LabelOf returns the ISO week label containing t.
func LabelOf(t time.Time) Label {
	year, week := t.ISOWeek()
	return Label{Year: year, Week: week}
}

// ResolveStart parses label and returns the local-time Monday starting that week.
func ResolveStart(label string) (time.Time, error) {
	l, err := ParseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	return l.Start(time.Local), nil
}
