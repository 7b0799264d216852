// Package search implements a generic beam search over scored candidates.
package search

import (
	"log"

	"github.com/pkg/errors"
)

const (
	MAX_ROUNDS = 800
)

var AllOut bool = false

// ErrExhausted is returned when a round leaves no candidate to continue
// with.
var ErrExhausted = errors.New("beam exhausted")

type Problem interface{}

type Candidate interface {
	Score() float64
	Terminal() bool
}

type Interface interface {
	StartItem(p Problem) []Candidate
	// Expand returns the successors of a non-terminal candidate. An empty
	// result kills the branch.
	Expand(c Candidate, p Problem) []Candidate
	Name() string
}

type Result struct {
	// Beam holds the surviving candidates, best first.
	Beam   []Candidate
	Rounds int
	// Complete is false when the round limit stopped the search before
	// every candidate in the beam was terminal.
	Complete bool
}

// Best returns the highest scoring terminal candidate of the beam, or nil.
func (r *Result) Best() Candidate {
	for _, c := range r.Beam {
		if c.Terminal() {
			return c
		}
	}
	return nil
}

// Search advances every non-terminal candidate of the beam once per
// round, keeping the B best of the pooled successors and carried over
// terminals, until the beam is all terminal or maxRounds is reached.
// A non-positive maxRounds means MAX_ROUNDS.
func Search(b Interface, problem Problem, B, maxRounds int) (*Result, error) {
	if B < 1 {
		return nil, errors.Errorf("beam size must be positive, got %d", B)
	}
	if maxRounds <= 0 || maxRounds > MAX_ROUNDS {
		maxRounds = MAX_ROUNDS
	}
	agenda := NewAgenda(B)
	agenda.AddCandidates(b.StartItem(problem))
	if agenda.Len() == 0 {
		return nil, errors.Wrap(ErrExhausted, "no start items")
	}
	candidates := agenda.TopB()
	rounds := 0
	for !AllTerminal(candidates) {
		if rounds >= maxRounds {
			if AllOut {
				log.Println(b.Name(), "stopped after", rounds, "rounds")
			}
			return &Result{Beam: candidates, Rounds: rounds}, nil
		}
		agenda.Clear()
		for i, candidate := range candidates {
			if candidate.Terminal() {
				agenda.AddCandidate(candidate)
				continue
			}
			successors := b.Expand(candidate, problem)
			if AllOut && len(successors) == 0 {
				log.Println("\tCandidate", i, "has no successors")
			}
			agenda.AddCandidates(successors)
		}
		rounds++
		if agenda.Len() == 0 {
			return nil, errors.Wrapf(ErrExhausted, "round %d", rounds)
		}
		candidates = agenda.TopB()
		if AllOut {
			log.Println("Round", rounds, "best", candidates[0].Score())
		}
	}
	return &Result{Beam: candidates, Rounds: rounds, Complete: true}, nil
}

func AllTerminal(candidates []Candidate) bool {
	for _, c := range candidates {
		if !c.Terminal() {
			return false
		}
	}
	return true
}
