package search

import (
	"fmt"
	"strings"

	"github.com/njwilson/chalk/alg/rlheap"
)

type agendaItem struct {
	Candidate
	seq int
}

// BaseAgenda keeps the BeamSize best candidates added in a round in a
// bounded heap. Among equal scores the first added are kept.
type BaseAgenda struct {
	BeamSize int
	Confs    []*agendaItem
	seq      int
}

var _ rlheap.Interface = &BaseAgenda{}

func NewAgenda(size int) *BaseAgenda {
	return &BaseAgenda{BeamSize: size, Confs: make([]*agendaItem, 0, size)}
}

// worse orders the heap with the worst kept candidate at the root.
func worse(x, y *agendaItem) bool {
	if x.Score() != y.Score() {
		return x.Score() < y.Score()
	}
	return x.seq > y.seq
}

func (a *BaseAgenda) String() string {
	retval := make([]string, len(a.Confs))
	for i, conf := range a.Confs {
		retval[i] = fmt.Sprintf("%v", conf.Score())
	}
	return strings.Join(retval, ",")
}

func (a *BaseAgenda) Len() int {
	return len(a.Confs)
}

func (a *BaseAgenda) Less(i, j int) bool {
	return worse(a.Confs[i], a.Confs[j])
}

func (a *BaseAgenda) Swap(i, j int) {
	a.Confs[i], a.Confs[j] = a.Confs[j], a.Confs[i]
}

func (a *BaseAgenda) Push(x interface{}) {
	a.Confs = append(a.Confs, x.(*agendaItem))
}

func (a *BaseAgenda) Pop() interface{} {
	n := len(a.Confs) - 1
	x := a.Confs[n]
	a.Confs[n] = nil
	a.Confs = a.Confs[:n]
	return x
}

func (a *BaseAgenda) Set(i int, x interface{}) {
	a.Confs[i] = x.(*agendaItem)
}

func (a *BaseAgenda) LessValue(i int, x interface{}) bool {
	return worse(a.Confs[i], x.(*agendaItem))
}

func (a *BaseAgenda) AddCandidate(c Candidate) {
	a.seq++
	rlheap.PushBounded(a, &agendaItem{c, a.seq}, a.BeamSize)
}

func (a *BaseAgenda) AddCandidates(cs []Candidate) {
	for _, c := range cs {
		a.AddCandidate(c)
	}
}

func (a *BaseAgenda) Clear() {
	for i := range a.Confs {
		a.Confs[i] = nil
	}
	a.Confs = a.Confs[0:0]
	a.seq = 0
}

// TopB returns the kept candidates, best first, as a new slice.
func (a *BaseAgenda) TopB() []Candidate {
	h := &BaseAgenda{Confs: append([]*agendaItem(nil), a.Confs...)}
	retval := make([]Candidate, h.Len())
	for i := len(retval) - 1; i >= 0; i-- {
		retval[i] = rlheap.Pop(h).(*agendaItem).Candidate
	}
	return retval
}
