package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type path struct {
	steps []string
	score float64
	goal  int
}

func (p *path) Score() float64 { return p.score }
func (p *path) Terminal() bool { return len(p.steps) == p.goal }

// choices expands every path with the same weighted choices.
type choices struct {
	goal    int
	options map[string]float64
	order   []string
	expands int
}

func (c *choices) Name() string { return "choices" }

func (c *choices) StartItem(p Problem) []Candidate {
	return []Candidate{&path{goal: c.goal}}
}

func (c *choices) Expand(cand Candidate, p Problem) []Candidate {
	c.expands++
	cur := cand.(*path)
	var retval []Candidate
	for _, o := range c.order {
		steps := append(append([]string(nil), cur.steps...), o)
		retval = append(retval, &path{steps, cur.score + math.Log(c.options[o]), c.goal})
	}
	return retval
}

func TestSearchFindsBest(t *testing.T) {
	c := &choices{goal: 3, options: map[string]float64{"a": 0.2, "b": 0.8}, order: []string{"a", "b"}}
	res, err := Search(c, nil, 4, 0)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 3, res.Rounds)
	require.Len(t, res.Beam, 4)
	assert.Equal(t, []string{"b", "b", "b"}, res.Best().(*path).steps)
	for i := 1; i < len(res.Beam); i++ {
		assert.GreaterOrEqual(t, res.Beam[i-1].Score(), res.Beam[i].Score())
	}
}

func TestSearchTiesKeepFirstSeen(t *testing.T) {
	c := &choices{goal: 1, options: map[string]float64{"x": 0.5, "y": 0.5}, order: []string{"x", "y"}}
	res, err := Search(c, nil, 1, 0)
	require.NoError(t, err)
	require.Len(t, res.Beam, 1)
	assert.Equal(t, []string{"x"}, res.Best().(*path).steps)
}

type uneven struct{}

func (uneven) Name() string { return "uneven" }

func (uneven) StartItem(p Problem) []Candidate {
	return []Candidate{&path{goal: 1, score: -1}, &path{goal: 3, score: -0.5}}
}

func (uneven) Expand(cand Candidate, p Problem) []Candidate {
	cur := cand.(*path)
	steps := append(append([]string(nil), cur.steps...), "s")
	return []Candidate{&path{steps, cur.score - 0.5, cur.goal}}
}

func TestSearchCarriesTerminals(t *testing.T) {
	res, err := Search(uneven{}, nil, 2, 0)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 3, res.Rounds)
	best := res.Best().(*path)
	assert.Equal(t, 1, best.goal)
	assert.Equal(t, -1.5, best.score)
}

type deadEnd struct{}

func (deadEnd) Name() string                                 { return "dead" }
func (deadEnd) StartItem(p Problem) []Candidate              { return []Candidate{&path{goal: 2}} }
func (deadEnd) Expand(cand Candidate, p Problem) []Candidate { return nil }

func TestSearchExhausted(t *testing.T) {
	_, err := Search(deadEnd{}, nil, 3, 0)
	assert.ErrorIs(t, err, ErrExhausted)
}

type nothing struct{ deadEnd }

func (nothing) StartItem(p Problem) []Candidate { return nil }

func TestSearchNoStartItems(t *testing.T) {
	_, err := Search(nothing{}, nil, 3, 0)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestSearchRoundLimit(t *testing.T) {
	c := &choices{goal: 10, options: map[string]float64{"a": 1}, order: []string{"a"}}
	res, err := Search(c, nil, 2, 4)
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, 4, res.Rounds)
	assert.Nil(t, res.Best())
	assert.Len(t, res.Beam[0].(*path).steps, 4)
}

func TestSearchRejectsEmptyBeam(t *testing.T) {
	_, err := Search(&choices{}, nil, 0, 0)
	assert.Error(t, err)
}

func TestAgendaTopB(t *testing.T) {
	a := NewAgenda(2)
	a.AddCandidates([]Candidate{&path{score: -2}, &path{score: -1, goal: 7}, &path{score: -1}})
	top := a.TopB()
	require.Len(t, top, 2)
	assert.Equal(t, 7, top[0].(*path).goal)
	assert.Equal(t, 0, top[1].(*path).goal)
	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Len(t, top, 2)
}

func TestAgendaKeepsBest(t *testing.T) {
	a := NewAgenda(3)
	for _, s := range []float64{-5, -1, -4, -0.5, -3, -2} {
		a.AddCandidate(&path{score: s})
	}
	assert.Equal(t, 3, a.Len())
	var scores []float64
	for _, c := range a.TopB() {
		scores = append(scores, c.Score())
	}
	assert.Equal(t, []float64{-0.5, -1, -2}, scores)
}
