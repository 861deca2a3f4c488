package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/polldash/analysis"
)

func pool() []analysis.UnanimousPoll {
	return []analysis.UnanimousPoll{
		{Question: "Q1", Options: map[string]int{"A": 3, "B": 0}, UnanimousAnswer: "A"},
		{Question: "Q2", Options: map[string]int{"A": 0, "B": 2}, UnanimousAnswer: "B"},
		{Question: "Q3", Options: map[string]int{"X": 1, "Y": 0, "Z": 0}, UnanimousAnswer: "X"},
		{Question: "Q4", Options: map[string]int{"Yes": 0, "No": 5}, UnanimousAnswer: "No"},
		{Question: "Q5", Options: map[string]int{"Up": 4, "Down": 0}, UnanimousAnswer: "Up"},
	}
}

func answersFor(questions []Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.answer
	}
	return out
}

func TestDrawDistinct(t *testing.T) {
	q := New(pool(), rand.New(rand.NewPCG(1, 2)))

	questions, err := q.Draw(4)
	require.NoError(t, err)
	require.Len(t, questions, 4)

	seen := map[string]bool{}
	for _, question := range questions {
		assert.False(t, seen[question.Text], "duplicate question %s", question.Text)
		seen[question.Text] = true
	}
}

func TestDrawDeterministicWithSeed(t *testing.T) {
	a, err := New(pool(), rand.New(rand.NewPCG(7, 7))).Draw(3)
	require.NoError(t, err)
	b, err := New(pool(), rand.New(rand.NewPCG(7, 7))).Draw(3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDrawClampsToPool(t *testing.T) {
	questions, err := New(pool(), nil).Draw(10)
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestDrawEmptyPool(t *testing.T) {
	_, err := New(nil, nil).Draw(4)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestDrawSortsOptions(t *testing.T) {
	questions, err := New(pool()[2:3], nil).Draw(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, questions[0].Options)
}

func TestCheck(t *testing.T) {
	questions, err := New(pool(), rand.New(rand.NewPCG(3, 4))).Draw(4)
	require.NoError(t, err)

	answers := answersFor(questions)
	res := Check(questions, answers)
	assert.Equal(t, Result{Correct: 4, Total: 4}, res)
	assert.True(t, res.Passed())

	answers[2] = "wrong"
	res = Check(questions, answers)
	assert.Equal(t, 3, res.Correct)
	assert.False(t, res.Passed())

	res = Check(questions, answers[:1])
	assert.Equal(t, 1, res.Correct)
	assert.False(t, res.Passed())
}

func TestEmptyRoundDoesNotPass(t *testing.T) {
	assert.False(t, Check(nil, nil).Passed())
}
