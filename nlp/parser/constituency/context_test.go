package constituency

import (
	"testing"

	"github.com/njwilson/chalk/nlp/parser/constituency/headrules"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext(t *testing.T) {
	p := toyChunks()
	p.SetChild(0, START+"NP")
	view := types.Collapse(p.Children, headrules.English().PunctuationTags())

	g := &BuildContextGenerator{}
	features := g.Context(view, 1)
	assert.Equal(t, features, g.Context(view, 1))
	assert.Contains(t, features, "default")
	assert.Contains(t, features, "c-2*=BOS")
	assert.Contains(t, features, "c-1=S-NP|DTP|the")
	assert.Contains(t, features, "c0*=ADJP")
	assert.Contains(t, features, "c0=ADJP|big")
	assert.Contains(t, features, "c1*=NX")
	assert.Contains(t, features, "c2*=EOS")
	assert.Contains(t, features, "c-1,c0=S-NP|DTP|the,ADJP|big")
	assert.Contains(t, features, "c-1,c0,c1*=S-NP|DTP,ADJP,NX")
	assert.NotContains(t, features, "c-1,c0,c1=S-NP|DTP|the,ADJP|big,NX|dog")

	dict := NewDictionary()
	dict.Add("the", "big", "dog")
	g = &BuildContextGenerator{dict}
	assert.Contains(t, g.Context(view, 1), "c-1,c0,c1=S-NP|DTP|the,ADJP|big,NX|dog")
}

func TestBuildContextPunctuation(t *testing.T) {
	tokens := []string{"dogs", ",", "cats"}
	children := []*types.Parse{types.NewPOS(tokens, 0, "NNS"), types.NewPOS(tokens, 1, ","), types.NewPOS(tokens, 2, "NNS")}
	view := types.Collapse(children, headrules.English().PunctuationTags())
	features := (&BuildContextGenerator{}).Context(view, 0)
	assert.Contains(t, features, "p1=,")
	assert.Contains(t, features, "c0,c1,p*=NNS,,,NNS")
	assert.Contains(t, features, "c1=NNS|cats")
}

func TestCheckContext(t *testing.T) {
	p := toyChunks()
	for i, label := range []string{START + "NP", CONT + "NP", CONT + "NP"} {
		p.SetChild(i, label)
	}
	view := types.Collapse(p.Children, headrules.English().PunctuationTags())
	g := &CheckContextGenerator{}
	features := g.Context(view, "NP", 0, 2)
	assert.Equal(t, features, g.Context(view, "NP", 0, 2))
	for _, f := range []string{
		"default",
		"t=NP",
		"fl=S-NP",
		"begin=NP|DTP|the",
		"last*=NP|NX",
		"p=NP->DTP,ADJP,NX",
		"pp=NP->DTP,ADJP,NX",
		"pair*=NP|DTP,NX",
		"s-1*=NP|BOS",
		"s2*=NP|EOS",
	} {
		assert.Contains(t, features, f)
	}
	assert.NotContains(t, features, "pair=NP|DTP|the,NX|dog")

	dict := NewDictionary()
	dict.Add("the", "dog")
	assert.Contains(t, (&CheckContextGenerator{dict}).Context(view, "NP", 0, 2), "pair=NP|DTP|the,NX|dog")
}
