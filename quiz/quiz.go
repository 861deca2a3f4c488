// Package quiz asks questions drawn from unanimous polls. A player passes
// only by naming the unanimous answer of every question drawn.
package quiz

import (
	"errors"
	"math/rand/v2"
	"sort"

	"github.com/sartorproj/polldash/analysis"
)

// ErrNoQuestions is returned when the pool of unanimous polls is empty.
var ErrNoQuestions = errors.New("no unanimous polls to draw from")

// Question is a drawn poll with its options in display order.
type Question struct {
	Text    string
	Options []string
	answer  string
}

// Quiz draws questions from a fixed pool.
type Quiz struct {
	pool []analysis.UnanimousPoll
	rng  *rand.Rand
}

// New creates a quiz over polls. A nil rng uses a randomly seeded source.
func New(polls []analysis.UnanimousPoll, rng *rand.Rand) *Quiz {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Quiz{pool: polls, rng: rng}
}

// Draw returns n distinct questions in random order, or the whole pool when
// it holds fewer than n.
func (q *Quiz) Draw(n int) ([]Question, error) {
	if len(q.pool) == 0 {
		return nil, ErrNoQuestions
	}
	if n > len(q.pool) {
		n = len(q.pool)
	}

	perm := q.rng.Perm(len(q.pool))
	questions := make([]Question, 0, n)
	for _, idx := range perm[:n] {
		p := q.pool[idx]
		options := make([]string, 0, len(p.Options))
		for opt := range p.Options {
			options = append(options, opt)
		}
		sort.Strings(options)
		questions = append(questions, Question{Text: p.Question, Options: options, answer: p.UnanimousAnswer})
	}
	return questions, nil
}

// Result is the outcome of a round.
type Result struct {
	Correct int
	Total   int
}

// Passed reports whether every question was answered correctly.
func (r Result) Passed() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Check scores answers against questions by position. A missing answer
// counts as wrong.
func Check(questions []Question, answers []string) Result {
	res := Result{Total: len(questions)}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.answer {
			res.Correct++
		}
	}
	return res
}
