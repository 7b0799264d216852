// Package eval scores parser output against gold trees with labeled
// bracket precision, recall and F1 (PARSEVAL) and POS tagging accuracy.
package eval

import (
	"fmt"
	"sort"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

var ErrLengthMismatch = errors.New("test and gold sentence lengths differ")

func Precision(truePositives, testPositives int) float64 {
	if testPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	if conditionPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2.0 * (precision * recall) / (precision + recall)
}

type Error interface {
	String() string
	Class() string
}

type Errors []Error

func (ers Errors) ByType() map[string]int {
	retval := make(map[string]int)
	for _, e := range ers {
		retval[e.Class()]++
	}
	return retval
}

// Bracket is a labeled constituent span.
type Bracket struct {
	Label string
	Span  types.Span
}

func (b Bracket) String() string {
	return fmt.Sprintf("%s%v", b.Label, b.Span)
}

// BracketError is a test bracket missing from the gold tree ("extra") or a
// gold bracket the test tree does not have ("missing").
type BracketError struct {
	Bracket
	Kind string
}

func (e *BracketError) String() string {
	return e.Kind + " " + e.Bracket.String()
}

func (e *BracketError) Class() string {
	return e.Kind + " " + e.Label
}

// Result counts brackets: TP are matched, FP are test brackets without a
// gold match and FN are gold brackets without a test match. Other holds the
// tagging result, where TP counts correct tags and FP wrong ones.
type Result struct {
	TP, FP, TN, FN int
	Errors         Errors
	Other          *Result
}

func (r *Result) All() int {
	return r.TP + r.FP + r.TN + r.FN
}

func (r *Result) Correct() int {
	return r.TP + r.TN
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) Accuracy() float64 {
	if r.All() == 0 {
		return 0
	}
	return float64(r.Correct()) / float64(r.All())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

// Brackets returns the labeled brackets of p, excluding TOP, POS tags and
// tokens, in preorder.
func Brackets(p *types.Parse) []Bracket {
	var brackets []Bracket
	var walk func(n *types.Parse)
	walk = func(n *types.Parse) {
		if n.IsPosTag() || n.IsToken() {
			return
		}
		if n.Type != types.TOP_NODE {
			brackets = append(brackets, Bracket{n.Type, n.Span})
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	if p != nil {
		walk(p)
	}
	return brackets
}

// Parse compares a test tree with its gold tree. Brackets are matched as a
// multiset, so a unary chain repeating a label matches only as often as it
// repeats in gold. A nil test tree is a failed parse: every gold bracket
// and tag is counted as missed.
func Parse(test, gold *types.Parse) (*Result, error) {
	if gold == nil {
		return nil, errors.New("nil gold tree")
	}
	goldTags := gold.TagNodes()
	result := &Result{Other: &Result{}}
	if test != nil {
		testTags := test.TagNodes()
		if len(testTags) != len(goldTags) {
			return nil, errors.Wrapf(ErrLengthMismatch, "%d test tokens, %d gold", len(testTags), len(goldTags))
		}
		for i, tag := range testTags {
			if tag.Type == goldTags[i].Type {
				result.Other.TP++
			} else {
				result.Other.FP++
			}
		}
	} else {
		result.Other.FP = len(goldTags)
	}

	unmatched := make(map[Bracket]int)
	for _, b := range Brackets(gold) {
		unmatched[b]++
	}
	for _, b := range Brackets(test) {
		if unmatched[b] > 0 {
			unmatched[b]--
			result.TP++
			continue
		}
		result.FP++
		result.Errors = append(result.Errors, &BracketError{b, "extra"})
	}
	missing := make([]Bracket, 0, len(unmatched))
	for b, n := range unmatched {
		for ; n > 0; n-- {
			missing = append(missing, b)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Span != missing[j].Span {
			if missing[i].Span.Start != missing[j].Span.Start {
				return missing[i].Span.Start < missing[j].Span.Start
			}
			return missing[i].Span.End > missing[j].Span.End
		}
		return missing[i].Label < missing[j].Label
	})
	for _, b := range missing {
		result.FN++
		result.Errors = append(result.Errors, &BracketError{b, "missing"})
	}
	return result, nil
}

type Total struct {
	Result
	Results           []*Result
	Exact, Population int
	Failed            int
}

func NewTotal() *Total {
	return &Total{Result: Result{Other: &Result{}}}
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.TN += r.TN
	t.FN += r.FN
	if r.Other != nil && t.Other != nil {
		t.Other.TP += r.Other.TP
		t.Other.FP += r.Other.FP
	}
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
	if t.Results != nil {
		t.Results = append(t.Results, r)
	}
}

// Corpus scores parallel test and gold trees. Nil test trees count as
// failed parses.
func Corpus(test, gold []*types.Parse) (*Total, error) {
	if len(test) != len(gold) {
		return nil, errors.Errorf("%d test trees, %d gold trees", len(test), len(gold))
	}
	total := NewTotal()
	total.Results = make([]*Result, 0, len(gold))
	for i, g := range gold {
		r, err := Parse(test[i], g)
		if err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
		if test[i] == nil {
			total.Failed++
		}
		total.Add(r)
	}
	return total, nil
}

func (t *Total) ExactMatch() float64 {
	if t.Population == 0 {
		return 0
	}
	return float64(t.Exact) / float64(t.Population)
}

func (t *Total) Errors() Errors {
	retval := make([]Error, 0, t.Incorrect())
	for _, v := range t.Results {
		if v.Errors != nil {
			retval = append(retval, v.Errors...)
		}
	}
	return retval
}
