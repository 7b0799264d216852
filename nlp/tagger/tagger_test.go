package tagger

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = map[string]string{"Iterations": "20", "Cutoff": "1"}

func posSamples() *SliceSampleStream {
	var samples []Sample
	for i := 0; i < 3; i++ {
		samples = append(samples,
			Sample{Tokens: []string{"the", "dog", "barked"}, Outcomes: []string{"DT", "NN", "VBD"}},
			Sample{Tokens: []string{"a", "cat", "slept"}, Outcomes: []string{"DT", "NN", "VBD"}},
			Sample{Tokens: []string{"the", "cat", "barked"}, Outcomes: []string{"DT", "NN", "VBD"}},
		)
	}
	return &SliceSampleStream{Samples: samples}
}

func chunkSamples() *SliceSampleStream {
	var samples []Sample
	for i := 0; i < 3; i++ {
		samples = append(samples,
			Sample{
				Tokens:   []string{"the", "big", "dog", "barked"},
				Tags:     []string{"DT", "JJ", "NN", "VBD"},
				Outcomes: []string{"S-NP", "C-NP", "C-NP", "O"},
			},
			Sample{
				Tokens:   []string{"dogs", "barked", "at", "cats"},
				Tags:     []string{"NNS", "VBD", "IN", "NNS"},
				Outcomes: []string{"S-NP", "O", "O", "S-NP"},
			},
		)
	}
	return &SliceSampleStream{Samples: samples}
}

func TestTrainPOS(t *testing.T) {
	m, report, err := TrainPOS(posSamples(), settings)
	require.NoError(t, err)
	assert.Equal(t, POS_TAGGER, m.Kind)
	assert.Equal(t, "27", report["Events"])

	best, err := m.Best([]string{"a", "dog", "slept"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"DT", "NN", "VBD"}, best.Outcomes)
	assert.Len(t, best.Probs, 3)
}

func TestTopKSequences(t *testing.T) {
	m, _, err := TrainPOS(posSamples(), settings)
	require.NoError(t, err)
	seqs := m.TopKSequences([]string{"the", "dog", "slept"}, nil, 3)
	require.Len(t, seqs, 3)
	for i := 1; i < len(seqs); i++ {
		assert.GreaterOrEqual(t, seqs[i-1].Score, seqs[i].Score)
		assert.NotEqual(t, seqs[i-1].Outcomes, seqs[i].Outcomes)
	}
	for _, s := range seqs {
		assert.Len(t, s.Outcomes, 3)
		assert.LessOrEqual(t, s.Score, 0.0)
	}
	assert.Nil(t, m.TopKSequences(nil, nil, 3))
}

func TestTrainChunker(t *testing.T) {
	m, _, err := TrainChunker(chunkSamples(), settings)
	require.NoError(t, err)
	tokens := []string{"the", "big", "cat", "barked"}
	tags := []string{"DT", "JJ", "NN", "VBD"}
	best, err := m.Best(tokens, tags)
	require.NoError(t, err)
	assert.Equal(t, []string{"S-NP", "C-NP", "C-NP", "O"}, best.Outcomes)

	for _, s := range m.TopKSequences(tokens, tags, 5) {
		for i, o := range s.Outcomes {
			assert.True(t, ValidChunkOutcome(s.Outcomes[:i], o), "%v", s.Outcomes)
		}
	}
	assert.Panics(t, func() { m.TopKSequences(tokens, tags[:2], 1) })
}

func TestValidChunkOutcome(t *testing.T) {
	assert.True(t, ValidChunkOutcome(nil, "S-NP"))
	assert.True(t, ValidChunkOutcome(nil, "O"))
	assert.False(t, ValidChunkOutcome(nil, "C-NP"))
	assert.True(t, ValidChunkOutcome([]string{"S-NP"}, "C-NP"))
	assert.True(t, ValidChunkOutcome([]string{"S-NP", "C-NP"}, "C-NP"))
	assert.False(t, ValidChunkOutcome([]string{"S-VP"}, "C-NP"))
	assert.False(t, ValidChunkOutcome([]string{"O"}, "C-NP"))
}

func TestMismatchedSample(t *testing.T) {
	stream := &SliceSampleStream{Samples: []Sample{{Tokens: []string{"a"}, Outcomes: nil}}}
	_, _, err := TrainPOS(stream, settings)
	assert.Error(t, err)
}

func TestSampleStream(t *testing.T) {
	s := posSamples()
	for i := 0; i < 9; i++ {
		_, err := s.Read()
		require.NoError(t, err)
	}
	_, err := s.Read()
	assert.Equal(t, io.EOF, err)
}

func TestPOSContext(t *testing.T) {
	ctx := posContext(1, []string{"the", "dogs"}, nil, []string{"DT"})
	assert.Contains(t, ctx, "w=dogs")
	assert.Contains(t, ctx, "t-1=DT")
	assert.Contains(t, ctx, "t-2,t-1=*BOS*,DT")
	assert.Contains(t, ctx, "suf=gs")
	assert.Contains(t, ctx, "pre=dog")
	assert.Contains(t, ctx, "w+1=*EOS*")
}
