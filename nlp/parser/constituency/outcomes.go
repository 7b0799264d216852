// Package constituency implements a chunking shift-reduce constituency
// parser: a tagger and a chunker seed a beam of flat partial parses,
// which a build model labels node by node and a check model decides
// when to reduce into constituents.
package constituency

import (
	"strings"

	"github.com/njwilson/chalk/alg/search"
	"github.com/njwilson/chalk/nlp/tagger"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

const (
	START      = tagger.START
	CONT       = tagger.CONT
	OTHER      = tagger.OTHER
	TOP_START  = START + types.TOP_NODE
	COMPLETE   = "c"
	INCOMPLETE = "i"

	CHUNKING = "CHUNKING"

	DEFAULT_BEAM_SIZE          = 20
	DEFAULT_ADVANCE_PERCENTAGE = 0.95
	ROUNDS_PER_TOKEN           = 4

	BUILD_COMPONENT    = "build"
	CHECK_COMPONENT    = "check"
	TAGGER_COMPONENT   = "tagger"
	CHUNKER_COMPONENT  = "chunker"
	DICT_COMPONENT     = "dict"
	MANIFEST_COMPONENT = "manifest"
)

var (
	ErrBeamExhausted = search.ErrExhausted
	ErrEmptySentence = errors.New("empty sentence")
	ErrMalformedTree = types.ErrMalformedTree
)

// LabelOracle is a trained classifier over string contexts.
type LabelOracle interface {
	// Eval fills probs (reallocating on a length mismatch) with one
	// probability per outcome and returns it.
	Eval(context []string, probs []float64) []float64
	NumOutcomes() int
	// Index returns the index of an outcome, or -1 when it is unknown.
	Index(outcome string) int
	Outcome(i int) string
}

// SequenceModel proposes whole tag or chunk sequences for a sentence.
type SequenceModel interface {
	TopKSequences(tokens, tags []string, k int) []tagger.Sequence
}

// splitLabel returns the constituent type named by a build label and
// whether the label starts or continues it.
func splitLabel(label string) (typ string, start, cont bool) {
	switch {
	case strings.HasPrefix(label, START):
		return label[len(START):], true, false
	case strings.HasPrefix(label, CONT):
		return label[len(CONT):], false, true
	}
	return label, false, false
}
