package perceptron

import (
	"errors"
	"io"
	"testing"

	"github.com/njwilson/chalk/alg/featurevector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrivialStrategy(t *testing.T) {
	m := featurevector.NewAvgMatrix(1)
	m.Add(0, 0, 2)
	w := new(TrivialStrategy)
	w.Init(m, 10)
	w.Update(m)
	assert.Equal(t, 2.0, w.Finalize(m).Weight(0, 0))
	assert.Equal(t, 0, m.Generation)
}

func TestAveragedStrategy(t *testing.T) {
	m := featurevector.NewAvgMatrix(2)
	w := new(AveragedStrategy)
	w.Init(m, 4)
	m.Add(0, 0, 4)
	w.Update(m)
	m.Add(1, 0, 1)
	w.Update(m)
	avg := w.Finalize(m)
	assert.Equal(t, 4.0, avg.Weight(0, 0))
	assert.Equal(t, 0.5, avg.Weight(1, 0))
	assert.Equal(t, 2, w.N)
}

func separable() *SliceEventStream {
	var events []Event
	for i := 0; i < 5; i++ {
		events = append(events,
			Event{"noun", []string{"default", "suffix=s", "prev=the"}},
			Event{"verb", []string{"default", "suffix=ed", "prev=he"}},
			Event{"adj", []string{"default", "suffix=ful", "prev=the"}},
		)
	}
	return &SliceEventStream{Events: events}
}

func TestIndexCutoff(t *testing.T) {
	events := &SliceEventStream{Events: []Event{
		{"a", []string{"x", "y", "y"}},
		{"b", []string{"x", "z"}},
		{"c", []string{"rare"}},
	}}
	indexed, err := Index(events, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, indexed.Events)
	assert.Equal(t, 1, indexed.Dropped)
	assert.Equal(t, 3, indexed.Outcomes.Len())
	assert.Equal(t, 1, indexed.Predicates.Len())
	require.Len(t, indexed.Instances, 2)
	assert.Equal(t, Instance{Outcome: 1, Predicates: []int{0}}, indexed.Instances[1])
}

type failingStream struct{}

func (failingStream) Read() (*Event, error) {
	return nil, errors.New("disk on fire")
}

func TestIndexPropagatesErrors(t *testing.T) {
	_, err := Index(failingStream{}, 1)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestTrainSeparable(t *testing.T) {
	c, report, err := Train(separable(), map[string]string{"Iterations": "10", "Cutoff": "1", "Custom": "kept"})
	require.NoError(t, err)

	probs := c.Eval([]string{"default", "suffix=ed", "prev=he"}, nil)
	assert.Equal(t, "verb", c.Best(probs))
	probs = c.Eval([]string{"default", "suffix=s", "prev=the", "unseen"}, probs)
	assert.Equal(t, "noun", c.Best(probs))

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	assert.Equal(t, 3, c.NumOutcomes())
	assert.Equal(t, -1, c.Index("adverb"))
	assert.Equal(t, "adj", c.Outcome(c.Index("adj")))

	for _, key := range []string{"Algorithm", "Iterations", "Cutoff", "Averaged", "Events",
		"Predicates", "Outcomes", "TrainingAccuracy", "CompletedIterations", "DroppedEvents", "Custom"} {
		assert.Contains(t, report, key)
	}
	assert.Equal(t, "15", report["Events"])
	assert.Equal(t, "1.000000", report["TrainingAccuracy"])
	assert.Equal(t, "kept", report["Custom"])
}

func TestTrainSettingsErrors(t *testing.T) {
	for _, settings := range []map[string]string{
		{"Iterations": "0"},
		{"Iterations": "x"},
		{"Cutoff": "x"},
		{"Averaged": "sometimes"},
		{"Algorithm": "MAXENT"},
		{"Cutoff": "100"},
	} {
		_, _, err := Train(separable(), settings)
		assert.Error(t, err, "%v", settings)
	}
}

func TestSoftmax(t *testing.T) {
	scores := []float64{1000, 1000, 0}
	Softmax(scores)
	assert.InDelta(t, 0.5, scores[0], 1e-9)
	assert.InDelta(t, 0.5, scores[1], 1e-9)
	assert.InDelta(t, 0, scores[2], 1e-9)
	Softmax(nil)
}

func TestSliceEventStream(t *testing.T) {
	s := &SliceEventStream{Events: []Event{{"a", nil}}}
	e, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "a", e.Outcome)
	_, err = s.Read()
	assert.Equal(t, io.EOF, err)
}
