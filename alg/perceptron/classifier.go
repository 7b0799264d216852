package perceptron

import (
	"math"

	"github.com/njwilson/chalk/alg/featurevector"
	"github.com/njwilson/chalk/util"
)

// Classifier scores outcomes for a context of string predicates and
// normalizes the scores into a probability distribution. It is safe for
// concurrent use once trained.
type Classifier struct {
	Outcomes   *util.EnumSet
	Predicates *util.EnumSet
	Weights    featurevector.Matrix
}

// Eval fills probs with one probability per outcome, allocating when
// probs has the wrong length. Unknown predicates are ignored.
func (c *Classifier) Eval(context []string, probs []float64) []float64 {
	n := c.Outcomes.Len()
	if len(probs) != n {
		probs = make([]float64, n)
	}
	preds := make([]int, 0, len(context))
	for _, pred := range context {
		if i, exists := c.Predicates.IndexOf(pred); exists {
			preds = append(preds, i)
		}
	}
	c.Weights.Scores(preds, featurevector.Vector(probs))
	Softmax(probs)
	return probs
}

func (c *Classifier) NumOutcomes() int {
	return c.Outcomes.Len()
}

// Index returns the index of outcome, or -1 if the classifier never saw it.
func (c *Classifier) Index(outcome string) int {
	if i, exists := c.Outcomes.IndexOf(outcome); exists {
		return i
	}
	return -1
}

func (c *Classifier) Outcome(i int) string {
	return c.Outcomes.ValueOf(i)
}

// Best returns the most probable outcome, the first one on ties.
func (c *Classifier) Best(probs []float64) string {
	return c.Outcome(featurevector.Vector(probs).Max())
}

func Softmax(scores []float64) {
	if len(scores) == 0 {
		return
	}
	max := scores[featurevector.Vector(scores).Max()]
	sum := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}
