package tagger

import (
	"io"

	"github.com/njwilson/chalk/alg/perceptron"

	"github.com/pkg/errors"
)

// Sample is a gold sequence: Outcomes holds the tag of each token for the
// tagger, or the chunk label of each token for the chunker, whose input
// tags are in Tags.
type Sample struct {
	Tokens, Tags, Outcomes []string
}

type SampleStream interface {
	Read() (*Sample, error)
}

type SliceSampleStream struct {
	Samples []Sample
	next    int
}

func (s *SliceSampleStream) Read() (*Sample, error) {
	if s.next >= len(s.Samples) {
		return nil, io.EOF
	}
	s.next++
	return &s.Samples[s.next-1], nil
}

type sampleEvents struct {
	samples SampleStream
	context ContextFunc
	kind    string
	pending []perceptron.Event
	read    int
}

var _ perceptron.EventStream = &sampleEvents{}

func (s *sampleEvents) Read() (*perceptron.Event, error) {
	for len(s.pending) == 0 {
		sample, err := s.samples.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s sample %d", s.kind, s.read)
		}
		s.read++
		if len(sample.Outcomes) != len(sample.Tokens) || (s.kind == CHUNKER && len(sample.Tags) != len(sample.Tokens)) {
			return nil, errors.Errorf("%s sample %d: mismatched sequence lengths", s.kind, s.read-1)
		}
		for i := range sample.Tokens {
			s.pending = append(s.pending, perceptron.Event{
				Outcome: sample.Outcomes[i],
				Context: s.context(i, sample.Tokens, sample.Tags, sample.Outcomes[:i]),
			})
		}
	}
	event := s.pending[0]
	s.pending = s.pending[1:]
	return &event, nil
}

func train(kind string, samples SampleStream, settings map[string]string) (*Model, map[string]string, error) {
	m := &Model{Kind: kind}
	events := &sampleEvents{samples: samples, context: m.contextFunc(), kind: kind}
	classifier, report, err := perceptron.Train(events, settings)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "training %s model", kind)
	}
	m.Classifier = classifier
	return m, report, nil
}

func TrainPOS(samples SampleStream, settings map[string]string) (*Model, map[string]string, error) {
	return train(POS_TAGGER, samples, settings)
}

func TrainChunker(samples SampleStream, settings map[string]string) (*Model, map[string]string, error) {
	return train(CHUNKER, samples, settings)
}
