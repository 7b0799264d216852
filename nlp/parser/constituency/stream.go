package constituency

import (
	"io"

	"github.com/njwilson/chalk/nlp/types"
)

// ParseStream is a restartable source of gold parses. Read returns io.EOF
// after the last parse; Reset rewinds to the first.
type ParseStream interface {
	Read() (*types.Parse, error)
	Reset() error
	Close() error
}

type SliceStream struct {
	Parses []*types.Parse
	Closed bool
	next   int
}

var _ ParseStream = &SliceStream{}

func (s *SliceStream) Read() (*types.Parse, error) {
	if s.next >= len(s.Parses) {
		return nil, io.EOF
	}
	s.next++
	return s.Parses[s.next-1], nil
}

func (s *SliceStream) Reset() error {
	s.next = 0
	return nil
}

func (s *SliceStream) Close() error {
	s.Closed = true
	return nil
}

func closeQuietly(s ParseStream) {
	_ = s.Close()
}
