package constituency

import (
	"io"

	"github.com/njwilson/chalk/alg/perceptron"
	"github.com/njwilson/chalk/nlp/tagger"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

type EventKind int

const (
	BUILD EventKind = iota
	CHECK
)

func (k EventKind) String() string {
	if k == BUILD {
		return BUILD_COMPONENT
	}
	return CHECK_COMPONENT
}

// ParserEventStream turns gold parses into build or check training
// events, one parse at a time.
type ParserEventStream struct {
	samples ParseStream
	rules   types.HeadRules
	kind    EventKind
	bcg     *BuildContextGenerator
	kcg     *CheckContextGenerator
	pending []perceptron.Event
	read    int
}

var _ perceptron.EventStream = &ParserEventStream{}

func NewParserEventStream(samples ParseStream, rules types.HeadRules, kind EventKind, dict *Dictionary) *ParserEventStream {
	return &ParserEventStream{
		samples: samples,
		rules:   rules,
		kind:    kind,
		bcg:     &BuildContextGenerator{dict},
		kcg:     &CheckContextGenerator{dict},
	}
}

func (s *ParserEventStream) Read() (*perceptron.Event, error) {
	for len(s.pending) == 0 {
		sample, err := s.samples.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s sample %d", s.kind, s.read)
		}
		gold, err := prepareGold(sample, s.rules)
		if err != nil {
			return nil, errors.Wrapf(err, "%s sample %d", s.kind, s.read)
		}
		s.read++
		replayGold(gold, s.rules.PunctuationTags(), s)
	}
	event := s.pending[0]
	s.pending = s.pending[1:]
	return &event, nil
}

func (s *ParserEventStream) build(view *types.Collapsed, index int, outcome string) {
	if s.kind == BUILD {
		s.pending = append(s.pending, perceptron.Event{Outcome: outcome, Context: s.bcg.Context(view, index)})
	}
}

func (s *ParserEventStream) check(view *types.Collapsed, typ string, start, end int, complete bool) {
	if s.kind != CHECK {
		return
	}
	outcome := INCOMPLETE
	if complete {
		outcome = COMPLETE
	}
	s.pending = append(s.pending, perceptron.Event{Outcome: outcome, Context: s.kcg.Context(view, typ, start, end)})
}

func (s *ParserEventStream) reduce(view *types.Collapsed, index int) {}

// posSampleStream presents gold parses as tagger samples.
type posSampleStream struct {
	parses ParseStream
}

func (s *posSampleStream) Read() (*tagger.Sample, error) {
	p, err := s.parses.Read()
	if err != nil {
		return nil, err
	}
	tags := p.TagNodes()
	sample := &tagger.Sample{
		Tokens:   make([]string, len(tags)),
		Outcomes: make([]string, len(tags)),
	}
	for i, tag := range tags {
		sample.Tokens[i] = tag.CoveredText()
		sample.Outcomes[i] = tag.Type
	}
	return sample, nil
}

// chunkSampleStream presents gold parses as chunker samples labeled with
// the initial chunks.
type chunkSampleStream struct {
	parses ParseStream
	read   int
}

func (s *chunkSampleStream) Read() (*tagger.Sample, error) {
	p, err := s.parses.Read()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "chunker sample %d", s.read)
	}
	s.read++
	sample := &tagger.Sample{}
	for _, chunk := range initialChunks(p) {
		for i, tag := range chunk.TagNodes() {
			sample.Tokens = append(sample.Tokens, tag.CoveredText())
			sample.Tags = append(sample.Tags, tag.Type)
			switch {
			case chunk.IsPosTag():
				sample.Outcomes = append(sample.Outcomes, OTHER)
			case i == 0:
				sample.Outcomes = append(sample.Outcomes, START+chunk.Type)
			default:
				sample.Outcomes = append(sample.Outcomes, CONT+chunk.Type)
			}
		}
	}
	return sample, nil
}
