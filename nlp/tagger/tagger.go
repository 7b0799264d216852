// Package tagger implements the part-of-speech tagger and the chunker
// that seed constituency parsing, both as classifier driven sequence
// models decoded with a beam.
package tagger

import (
	"math"
	"sort"
	"strings"

	"github.com/njwilson/chalk/alg/perceptron"
	"github.com/njwilson/chalk/alg/search"

	"github.com/pkg/errors"
)

const (
	POS_TAGGER = "pos"
	CHUNKER    = "chunk"

	START = "S-"
	CONT  = "C-"
	OTHER = "O"
)

type ContextFunc func(i int, tokens, tags []string, prior []string) []string

type Sequence struct {
	Outcomes []string
	Probs    []float64
	// Score is the sum of the log probabilities of the outcomes.
	Score float64
}

type Model struct {
	Kind       string
	Classifier *perceptron.Classifier
}

func (m *Model) contextFunc() ContextFunc {
	switch m.Kind {
	case POS_TAGGER:
		return posContext
	case CHUNKER:
		return chunkContext
	}
	panic("Unknown sequence model kind " + m.Kind)
}

// ValidChunkOutcome is false for a continuation that does not extend a
// chunk of the same type.
func ValidChunkOutcome(prior []string, outcome string) bool {
	if !strings.HasPrefix(outcome, CONT) {
		return true
	}
	if len(prior) == 0 {
		return false
	}
	last := prior[len(prior)-1]
	if !strings.HasPrefix(last, START) && !strings.HasPrefix(last, CONT) {
		return false
	}
	return last[len(START):] == outcome[len(CONT):]
}

func (m *Model) valid(prior []string, outcome string) bool {
	if m.Kind == CHUNKER {
		return ValidChunkOutcome(prior, outcome)
	}
	return true
}

// TopKSequences returns up to k complete outcome sequences for tokens,
// best first. tags is required by the chunker and ignored by the tagger.
func (m *Model) TopKSequences(tokens, tags []string, k int) []Sequence {
	if len(tokens) == 0 || k < 1 {
		return nil
	}
	if m.Kind == CHUNKER && len(tags) != len(tokens) {
		panic("Chunker requires one tag per token")
	}
	d := &decoder{
		model:   m,
		context: m.contextFunc(),
		tokens:  tokens,
		tags:    tags,
		k:       k,
	}
	res, err := search.Search(d, nil, k, len(tokens)+1)
	if err != nil {
		return nil
	}
	retval := make([]Sequence, 0, len(res.Beam))
	for _, c := range res.Beam {
		if !c.Terminal() {
			continue
		}
		p := c.(*partial)
		retval = append(retval, Sequence{p.outcomes, p.probs, p.score})
	}
	return retval
}

// Best returns the single best sequence.
func (m *Model) Best(tokens, tags []string) (Sequence, error) {
	seqs := m.TopKSequences(tokens, tags, 1)
	if len(seqs) == 0 {
		return Sequence{}, errors.Errorf("no %s sequence for %d tokens", m.Kind, len(tokens))
	}
	return seqs[0], nil
}

type partial struct {
	outcomes []string
	probs    []float64
	score    float64
	n        int
}

func (p *partial) Score() float64 {
	return p.score
}

func (p *partial) Terminal() bool {
	return len(p.outcomes) == p.n
}

type decoder struct {
	model        *Model
	context      ContextFunc
	tokens, tags []string
	k            int
	scratch      []float64
}

var _ search.Interface = &decoder{}

func (d *decoder) Name() string {
	return "Sequence Beam [" + d.model.Kind + "]"
}

func (d *decoder) StartItem(p search.Problem) []search.Candidate {
	return []search.Candidate{&partial{n: len(d.tokens)}}
}

func (d *decoder) Expand(c search.Candidate, p search.Problem) []search.Candidate {
	cur := c.(*partial)
	i := len(cur.outcomes)
	d.scratch = d.model.Classifier.Eval(d.context(i, d.tokens, d.tags, cur.outcomes), d.scratch)
	probs := d.scratch
	order := make([]int, len(probs))
	for o := range order {
		order[o] = o
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})
	retval := make([]search.Candidate, 0, d.k)
	for _, o := range order {
		if len(retval) == d.k || probs[o] == 0 {
			break
		}
		outcome := d.model.Classifier.Outcome(o)
		if !d.model.valid(cur.outcomes, outcome) {
			continue
		}
		next := &partial{
			outcomes: append(append(make([]string, 0, cur.n), cur.outcomes...), outcome),
			probs:    append(append(make([]float64, 0, cur.n), cur.probs...), probs[o]),
			score:    cur.score + math.Log(probs[o]),
			n:        cur.n,
		}
		retval = append(retval, next)
	}
	return retval
}
