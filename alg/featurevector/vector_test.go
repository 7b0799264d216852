package featurevector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	v := Vector{1, 3, 3}
	c := v.Copy()
	c.UpdateAdd(Vector{1, 1, 1})
	assert.Equal(t, Vector{1, 3, 3}, v)
	assert.Equal(t, Vector{2, 4, 4}, c)
	assert.Equal(t, 1, v.Max())
	assert.Equal(t, Vector{1, 2, 2}, c.UpdateScalarDivide(2))
	assert.Panics(t, func() { c.UpdateScalarDivide(0) })
	assert.Equal(t, Vector{0, 0, 0}, c.Clear())
}

func TestMatrixScores(t *testing.T) {
	m := Matrix{
		{Outcomes: []int{0}, Weights: []float64{1}},
		{Outcomes: []int{1}, Weights: []float64{2}},
		{Outcomes: []int{0}, Weights: []float64{0.5}},
		{},
	}
	scores := make(Vector, 2)
	assert.Equal(t, Vector{1.5, 0}, m.Scores([]int{0, 2}, scores))
	assert.Equal(t, Vector{1, 2}, m.Scores([]int{0, 1, 3}, scores))
	assert.Equal(t, 2.0, m.Weight(1, 1))
	assert.Equal(t, 0.0, m.Weight(1, 0))
	assert.Equal(t, 0.0, m.Weight(3, 5))
	assert.Equal(t, 3, m.Stored())
}

func TestHistoryValue(t *testing.T) {
	h := &HistoryValue{}
	h.Add(0, 2)
	h.Add(3, 1)
	// 2 for generations 0..2, 3 for 3..4
	assert.Equal(t, 12.0, h.IntegratedValue(5))
}

func TestHistoryRowKeepsOutcomesSorted(t *testing.T) {
	r := &HistoryRow{}
	r.At(5).Add(0, 1)
	r.At(1).Add(0, 2)
	r.At(3).Add(0, 3)
	r.At(5).Add(0, 4)
	assert.Equal(t, []int{1, 3, 5}, r.Outcomes)
	assert.Equal(t, 2.0, r.Values[0].Value)
	assert.Equal(t, 3.0, r.Values[1].Value)
	assert.Equal(t, 5.0, r.Values[2].Value)
}

func TestAvgMatrix(t *testing.T) {
	a := NewAvgMatrix(2)
	a.Add(0, 1, 4)
	a.Tick()
	a.Tick()
	a.Add(1, 0, 2)
	a.Tick()
	a.Tick()

	scores := make(Vector, 2)
	assert.Equal(t, Vector{2, 4}, a.Scores([]int{0, 1}, scores))
	assert.Equal(t, 2, a.Stored())
	assert.Equal(t, Matrix{
		{Outcomes: []int{1}, Weights: []float64{4}},
		{Outcomes: []int{0}, Weights: []float64{2}},
	}, a.Current())
	assert.Equal(t, Matrix{
		{Outcomes: []int{1}, Weights: []float64{4}},
		{Outcomes: []int{0}, Weights: []float64{1}},
	}, a.Averaged())
}

func TestAvgMatrixDropsZeroWeights(t *testing.T) {
	a := NewAvgMatrix(1)
	a.Add(0, 0, 1)
	a.Add(0, 1, 1)
	a.Add(0, 1, -1)
	assert.Equal(t, 2, a.Stored())
	m := a.Current()
	assert.Equal(t, 1, m.Stored())
	assert.Equal(t, 1.0, m.Weight(0, 0))
}

func TestAvgMatrixNoGenerations(t *testing.T) {
	a := NewAvgMatrix(1)
	a.Add(0, 0, 3)
	assert.Equal(t, Matrix{{Outcomes: []int{0}, Weights: []float64{3}}}, a.Averaged())
}
