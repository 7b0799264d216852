package constituency

import (
	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

// goldVisitor observes the shift-reduce decisions that rebuild a gold
// tree from its initial chunks.
type goldVisitor interface {
	build(view *types.Collapsed, index int, outcome string)
	check(view *types.Collapsed, typ string, start, end int, complete bool)
	// reduce is called after the constituent at index replaced its run.
	reduce(view *types.Collapsed, index int)
}

// prepareGold returns a private copy of sample rooted at TOP with heads
// and parents assigned.
func prepareGold(sample *types.Parse, rules types.HeadRules) (*types.Parse, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	gold := sample.DeepCopy()
	if gold.Type != types.TOP_NODE {
		gold = &types.Parse{Tokens: gold.Tokens, Span: gold.Span, Type: types.TOP_NODE, Children: []*types.Parse{gold}}
	}
	if gold.Span != (types.Span{Start: 0, End: len(gold.Tokens)}) {
		return nil, errors.Wrapf(ErrMalformedTree, "root spans %v of %d tokens", gold.Span, len(gold.Tokens))
	}
	gold.UpdateHeads(rules)
	gold.SetParents()
	return gold, nil
}

// initialChunks returns the nodes a chunker would produce for p: the
// lowest constituents whose children are all part-of-speech tags, and
// the tags outside any such constituent. A flat TOP yields its tags.
func initialChunks(p *types.Parse) []*types.Parse {
	if p.IsPosTag() {
		return []*types.Parse{p}
	}
	allTags := len(p.Children) > 0
	for _, child := range p.Children {
		if !child.IsPosTag() {
			allTags = false
			break
		}
	}
	if allTags && p.Type != types.TOP_NODE {
		return []*types.Parse{p}
	}
	var chunks []*types.Parse
	for _, child := range p.Children {
		chunks = append(chunks, initialChunks(child)...)
	}
	return chunks
}

// replayGold walks the derivation of gold left to right: each node of the
// collapsed sequence is labeled as starting or continuing its parent, and
// once it is the parent's last child the run is reduced to the parent.
func replayGold(gold *types.Parse, punct map[string]bool, v goldVisitor) {
	work := types.NewIncomplete(gold.Tokens, initialChunks(gold))
	ci := 0
	for {
		view := types.Collapse(work.Children, punct)
		if ci >= view.Len() {
			return
		}
		c := view.Nodes[ci]
		parent := c.Parent
		if parent == nil {
			ci++
			continue
		}
		siblings := types.Collapse(parent.Children, punct)
		outcome := CONT + parent.Type
		if siblings.Nodes[0] == c {
			outcome = START + parent.Type
		}
		v.build(view, ci, outcome)
		c.Label = outcome

		start := ci
		for start > 0 && view.Nodes[start-1].Parent == parent {
			start--
		}
		if siblings.Nodes[siblings.Len()-1] != c {
			v.check(view, parent.Type, start, ci, false)
			ci++
			continue
		}
		v.check(view, parent.Type, start, ci, true)
		if parent.Type == types.TOP_NODE {
			return
		}
		parent.Label = ""
		work.Reduce(parent)
		ci = start
		v.reduce(types.Collapse(work.Children, punct), ci)
	}
}
