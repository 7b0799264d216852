package perceptron

import "io"

// Event is one training decision: the outcome taken in a context.
type Event struct {
	Outcome string
	Context []string
}

// EventStream yields training events, returning io.EOF when exhausted.
type EventStream interface {
	Read() (*Event, error)
}

type SliceEventStream struct {
	Events []Event
	next   int
}

var _ EventStream = &SliceEventStream{}

func (s *SliceEventStream) Read() (*Event, error) {
	if s.next >= len(s.Events) {
		return nil, io.EOF
	}
	s.next++
	return &s.Events[s.next-1], nil
}

// Instance is an Event with its predicates and outcome indexed.
type Instance struct {
	Outcome    int
	Predicates []int
}
