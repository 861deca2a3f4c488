package analysis

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// RankEntry is one row of a ranking. On the wire it is a [name, value] pair.
type RankEntry struct {
	Name  string
	Value float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RankEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rank entry: expected [name, value], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return fmt.Errorf("rank entry name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Value); err != nil {
		return fmt.Errorf("rank entry value: %w", err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e RankEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Name, e.Value})
}

// Rankings lists the top authors by three criteria.
type Rankings struct {
	ByPolls    []RankEntry `json:"by_polls"`
	ByVotes    []RankEntry `json:"by_votes"`
	ByAvgVotes []RankEntry `json:"by_avg_votes"`
}

// Rank returns the rankings carried by the document, or derives them
// from the authors' latest cumulative statistics. Authors without polls are
// not ranked. A limit of zero or less keeps every entry.
func (r *Results) Rank(limit int) (Rankings, error) {
	if r.Rankings != nil {
		return Rankings{
			ByPolls:    truncate(r.Rankings.ByPolls, limit),
			ByVotes:    truncate(r.Rankings.ByVotes, limit),
			ByAvgVotes: truncate(r.Rankings.ByAvgVotes, limit),
		}, nil
	}

	totals, err := r.AuthorTotals()
	pollsters := lo.Filter(totals, func(t AuthorTotal, _ int) bool { return t.CumulativePolls > 0 })

	rank := func(value func(AuthorTotal) float64) []RankEntry {
		entries := lo.Map(pollsters, func(t AuthorTotal, _ int) RankEntry {
			return RankEntry{Name: t.Author, Value: value(t)}
		})
		slices.SortStableFunc(entries, func(a, b RankEntry) int {
			if c := cmp.Compare(b.Value, a.Value); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
		return truncate(entries, limit)
	}

	return Rankings{
		ByPolls:    rank(func(t AuthorTotal) float64 { return float64(t.CumulativePolls) }),
		ByVotes:    rank(func(t AuthorTotal) float64 { return float64(t.CumulativeVotes) }),
		ByAvgVotes: rank(func(t AuthorTotal) float64 { return t.AvgVotesPerPoll }),
	}, err
}

func truncate(entries []RankEntry, limit int) []RankEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
