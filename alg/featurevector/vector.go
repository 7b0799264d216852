package featurevector

import "sort"

// Vector holds one score or weight per outcome.
type Vector []float64

func (v Vector) Copy() Vector {
	return append(Vector(nil), v...)
}

func (v Vector) UpdateAdd(other Vector) Vector {
	for i, val := range other {
		v[i] += val
	}
	return v
}

func (v Vector) UpdateScalarDivide(d float64) Vector {
	if d == 0 {
		panic("Divide by 0")
	}
	for i := range v {
		v[i] /= d
	}
	return v
}

func (v Vector) Clear() Vector {
	for i := range v {
		v[i] = 0
	}
	return v
}

// Max returns the index of the largest value, the first one on ties.
func (v Vector) Max() int {
	max := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[max] {
			max = i
		}
	}
	return max
}

// Row holds the nonzero weights of one predicate, by ascending outcome.
type Row struct {
	Outcomes []int
	Weights  []float64
}

func (r Row) Len() int {
	return len(r.Outcomes)
}

func (r Row) Weight(outcome int) float64 {
	i := sort.SearchInts(r.Outcomes, outcome)
	if i < len(r.Outcomes) && r.Outcomes[i] == outcome {
		return r.Weights[i]
	}
	return 0
}

// Matrix holds a sparse weight Row per predicate.
type Matrix []Row

// Scores sums the stored weights of the active predicates into scores,
// which must have one entry per outcome.
func (m Matrix) Scores(predicates []int, scores Vector) Vector {
	scores.Clear()
	for _, p := range predicates {
		row := m[p]
		for i, o := range row.Outcomes {
			scores[o] += row.Weights[i]
		}
	}
	return scores
}

func (m Matrix) Weight(predicate, outcome int) float64 {
	return m[predicate].Weight(outcome)
}

// Stored returns the number of weights kept across all rows.
func (m Matrix) Stored() int {
	n := 0
	for _, row := range m {
		n += row.Len()
	}
	return n
}

// HistoryRow holds the weight histories of one predicate for the outcomes
// it was updated for, by ascending outcome.
type HistoryRow struct {
	Outcomes []int
	Values   []HistoryValue
}

// At returns the history of outcome, inserting an empty one if absent.
func (r *HistoryRow) At(outcome int) *HistoryValue {
	i := sort.SearchInts(r.Outcomes, outcome)
	if i == len(r.Outcomes) || r.Outcomes[i] != outcome {
		r.Outcomes = append(r.Outcomes, 0)
		copy(r.Outcomes[i+1:], r.Outcomes[i:])
		r.Outcomes[i] = outcome
		r.Values = append(r.Values, HistoryValue{})
		copy(r.Values[i+1:], r.Values[i:])
		r.Values[i] = HistoryValue{}
	}
	return &r.Values[i]
}

// AvgMatrix is a training time Matrix that tracks weight histories for
// averaging. Generation advances once per training instance.
type AvgMatrix struct {
	Rows       []HistoryRow
	Generation int
}

func NewAvgMatrix(predicates int) *AvgMatrix {
	return &AvgMatrix{Rows: make([]HistoryRow, predicates)}
}

func (a *AvgMatrix) Add(predicate, outcome int, amount float64) {
	a.Rows[predicate].At(outcome).Add(a.Generation, amount)
}

func (a *AvgMatrix) Scores(predicates []int, scores Vector) Vector {
	scores.Clear()
	for _, p := range predicates {
		row := &a.Rows[p]
		for i, o := range row.Outcomes {
			scores[o] += row.Values[i].Value
		}
	}
	return scores
}

func (a *AvgMatrix) Tick() {
	a.Generation++
}

// Stored returns the number of weight histories kept.
func (a *AvgMatrix) Stored() int {
	n := 0
	for _, row := range a.Rows {
		n += len(row.Outcomes)
	}
	return n
}

func (a *AvgMatrix) finalize(value func(h *HistoryValue) float64) Matrix {
	m := make(Matrix, len(a.Rows))
	for p := range a.Rows {
		row := &a.Rows[p]
		for i, o := range row.Outcomes {
			if w := value(&row.Values[i]); w != 0 {
				m[p].Outcomes = append(m[p].Outcomes, o)
				m[p].Weights = append(m[p].Weights, w)
			}
		}
	}
	return m
}

// Current returns the latest nonzero weights.
func (a *AvgMatrix) Current() Matrix {
	return a.finalize(func(h *HistoryValue) float64 {
		return h.Value
	})
}

// Averaged returns the nonzero weights averaged over all generations so
// far.
func (a *AvgMatrix) Averaged() Matrix {
	if a.Generation == 0 {
		return a.Current()
	}
	return a.finalize(func(h *HistoryValue) float64 {
		return h.IntegratedValue(a.Generation) / float64(a.Generation)
	})
}
