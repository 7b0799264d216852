package types

import "fmt"

// Span is a half-open range [Start, End) of token indices.
type Span struct {
	Start, End int
}

func (s Span) Length() int {
	return s.End - s.Start
}

func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) ContainsIndex(i int) bool {
	return s.Start <= i && i < s.End
}

// Crosses is true when the spans overlap without either containing the
// other.
func (s Span) Crosses(other Span) bool {
	overlap := s.Start < other.End && other.Start < s.End
	return overlap && !s.Contains(other) && !other.Contains(s)
}

func (s Span) Equal(other Span) bool {
	return s == other
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}
