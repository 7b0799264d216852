package perceptron

import (
	"log"

	"github.com/njwilson/chalk/alg/featurevector"
)

type StopCondition func(iteration, iterations int, accuracy float64) bool

// DefaultStopCondition runs all iterations unless the training data is
// already separated.
func DefaultStopCondition(iteration, iterations int, accuracy float64) bool {
	return iteration < iterations && accuracy < 1.0
}

// LinearPerceptron trains a multiclass perceptron over indexed instances.
type LinearPerceptron struct {
	Updater    UpdateStrategy
	Iterations int
	Log        bool
	Continue   StopCondition

	// Accuracy is the training accuracy of the last iteration.
	Accuracy float64
	// Completed is the number of iterations run.
	Completed int
}

func (m *LinearPerceptron) Train(data *Indexed) featurevector.Matrix {
	if m.Continue == nil {
		m.Continue = DefaultStopCondition
	}
	if m.Updater == nil {
		m.Updater = &TrivialStrategy{}
	}
	weights := featurevector.NewAvgMatrix(data.Predicates.Len())
	m.Updater.Init(weights, m.Iterations)
	scores := make(featurevector.Vector, data.Outcomes.Len())
	m.Accuracy, m.Completed = 0, 0
	for i := 0; m.Continue(i, m.Iterations, m.Accuracy); i++ {
		correct := 0
		for _, inst := range data.Instances {
			predicted := weights.Scores(inst.Predicates, scores).Max()
			if predicted == inst.Outcome {
				correct++
			} else {
				for _, p := range inst.Predicates {
					weights.Add(p, inst.Outcome, 1)
					weights.Add(p, predicted, -1)
				}
			}
			m.Updater.Update(weights)
		}
		if len(data.Instances) > 0 {
			m.Accuracy = float64(correct) / float64(len(data.Instances))
		}
		m.Completed++
		if m.Log {
			log.Printf("IT #%d: %d of %d correct (%.4f)", i, correct, len(data.Instances), m.Accuracy)
		}
	}
	return m.Updater.Finalize(weights)
}

type UpdateStrategy interface {
	Init(m *featurevector.AvgMatrix, iterations int)
	Update(m *featurevector.AvgMatrix)
	Finalize(m *featurevector.AvgMatrix) featurevector.Matrix
}

type TrivialStrategy struct{}

func (u *TrivialStrategy) Init(m *featurevector.AvgMatrix, iterations int) {

}

func (u *TrivialStrategy) Update(m *featurevector.AvgMatrix) {

}

func (u *TrivialStrategy) Finalize(m *featurevector.AvgMatrix) featurevector.Matrix {
	return m.Current()
}

// AveragedStrategy returns weights averaged over every instance of every
// iteration.
type AveragedStrategy struct {
	P, N int
}

func (u *AveragedStrategy) Init(m *featurevector.AvgMatrix, iterations int) {
	u.N = 0
	u.P = iterations
}

func (u *AveragedStrategy) Update(m *featurevector.AvgMatrix) {
	m.Tick()
	u.N++
}

func (u *AveragedStrategy) Finalize(m *featurevector.AvgMatrix) featurevector.Matrix {
	return m.Averaged()
}
