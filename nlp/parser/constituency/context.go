package constituency

import (
	"strconv"
	"strings"

	"github.com/njwilson/chalk/nlp/types"
)

const (
	BOS = "BOS"
	EOS = "EOS"
)

func nodeAt(view *types.Collapsed, i int) *types.Parse {
	if i < 0 || i >= view.Len() {
		return nil
	}
	return view.Nodes[i]
}

// cons describes the node at offset i from the focus. Nodes left of the
// focus carry their build label; backed-off features omit the head word.
func cons(p *types.Parse, i int, lexical bool) string {
	var b strings.Builder
	b.WriteByte('c')
	b.WriteString(strconv.Itoa(i))
	if !lexical {
		b.WriteByte('*')
	}
	b.WriteByte('=')
	b.WriteString(consValue(p, i, lexical))
	return b.String()
}

func consValue(p *types.Parse, i int, lexical bool) string {
	if p == nil {
		if i < 0 {
			return BOS
		}
		return EOS
	}
	value := p.Type
	if i < 0 {
		value = p.Label + "|" + value
	}
	if lexical {
		value += "|" + p.HeadWord()
	}
	return value
}

func punctTypes(punct []*types.Parse) string {
	typs := make([]string, len(punct))
	for i, p := range punct {
		typs[i] = p.Type
	}
	return strings.Join(typs, "_")
}

func headWord(p *types.Parse) string {
	if p == nil {
		return ""
	}
	return p.HeadWord()
}

// BuildContextGenerator describes the node being labeled in terms of a
// window of up to two nodes either side, their head words and the
// punctuation around it.
type BuildContextGenerator struct {
	Dict *Dictionary
}

func (g *BuildContextGenerator) Context(view *types.Collapsed, index int) []string {
	nodes := [5]*types.Parse{}
	for off := -2; off <= 2; off++ {
		nodes[off+2] = nodeAt(view, index+off)
	}
	value := func(off int, lexical bool) string {
		return consValue(nodes[off+2], off, lexical)
	}

	features := make([]string, 0, 40)
	features = append(features, "default")
	for off := -2; off <= 2; off++ {
		features = append(features, cons(nodes[off+2], off, true), cons(nodes[off+2], off, false))
	}

	prev, next := view.Prev[index], view.Next[index]
	for _, p := range prev {
		features = append(features, "p-1="+p.Type)
	}
	for _, p := range next {
		features = append(features, "p1="+p.Type)
	}

	// bigrams, with the punctuation separating the pair when there is any
	for _, pair := range [][2]int{{-1, 0}, {0, 1}} {
		a, b := pair[0], pair[1]
		name := "c" + strconv.Itoa(a) + ",c" + strconv.Itoa(b)
		features = append(features,
			name+"="+value(a, true)+","+value(b, true),
			name+"*a="+value(a, false)+","+value(b, true),
			name+"*b="+value(a, true)+","+value(b, false),
			name+"*="+value(a, false)+","+value(b, false),
		)
		between := prev
		if a == 0 {
			between = next
		}
		if len(between) > 0 {
			features = append(features, name+",p*="+value(a, false)+","+punctTypes(between)+","+value(b, false))
		}
	}

	// trigrams, lexicalized only for head word sequences in the dictionary
	for _, tri := range [][3]int{{-2, -1, 0}, {-1, 0, 1}, {0, 1, 2}} {
		name := "c" + strconv.Itoa(tri[0]) + ",c" + strconv.Itoa(tri[1]) + ",c" + strconv.Itoa(tri[2])
		features = append(features, name+"*="+value(tri[0], false)+","+value(tri[1], false)+","+value(tri[2], false))
		w0, w1, w2 := nodes[tri[0]+2], nodes[tri[1]+2], nodes[tri[2]+2]
		if w0 != nil && w1 != nil && w2 != nil && g.Dict.Contains(w0.HeadWord(), w1.HeadWord(), w2.HeadWord()) {
			features = append(features, name+"="+value(tri[0], true)+","+value(tri[1], true)+","+value(tri[2], true))
		}
	}
	return features
}

// CheckContextGenerator describes a proposed constituent of type typ over
// the nodes start..end of the view, asking whether it is complete.
type CheckContextGenerator struct {
	Dict *Dictionary
}

func checkcons(p *types.Parse, name, typ string, lexical bool) string {
	if !lexical {
		return name + "*=" + typ + "|" + p.Type
	}
	return name + "=" + typ + "|" + p.Type + "|" + p.HeadWord()
}

func (g *CheckContextGenerator) Context(view *types.Collapsed, typ string, start, end int) []string {
	first := view.Nodes[0]
	pstart := view.Nodes[start]
	pend := view.Nodes[end]

	features := make([]string, 0, 24+2*(end-start))
	features = append(features,
		"default",
		"t="+typ,
		"fl="+first.Label,
		checkcons(pstart, "begin", typ, true),
		checkcons(pstart, "begin", typ, false),
		checkcons(pend, "last", typ, true),
		checkcons(pend, "last", typ, false),
	)

	var production, punctProduction strings.Builder
	production.WriteString("p=" + typ + "->")
	punctProduction.WriteString("pp=" + typ + "->")
	for i := start; i <= end; i++ {
		if i > start {
			production.WriteByte(',')
			punctProduction.WriteByte(',')
		}
		production.WriteString(view.Nodes[i].Type)
		punctProduction.WriteString(view.Nodes[i].Type)
		if i < end && len(view.Next[i]) > 0 {
			punctProduction.WriteString("," + punctTypes(view.Next[i]))
		}
	}
	features = append(features, production.String(), punctProduction.String())

	for i := start; i < end; i++ {
		p := view.Nodes[i]
		features = append(features, "pair*="+typ+"|"+p.Type+","+pend.Type)
		if g.Dict.Contains(p.HeadWord(), pend.HeadWord()) {
			features = append(features, "pair="+typ+"|"+p.Type+"|"+p.HeadWord()+","+pend.Type+"|"+pend.HeadWord())
		}
	}

	for _, off := range []int{-2, -1} {
		p := nodeAt(view, start+off)
		name := "s" + strconv.Itoa(off)
		features = append(features,
			name+"*="+typ+"|"+consValue(p, off, false),
			name+"="+typ+"|"+consValue(p, off, false)+"|"+headWord(p),
		)
	}
	for _, off := range []int{1, 2} {
		p := nodeAt(view, end+off)
		name := "s" + strconv.Itoa(off)
		features = append(features,
			name+"*="+typ+"|"+consValue(p, off, false),
			name+"="+typ+"|"+consValue(p, off, false)+"|"+headWord(p),
		)
	}
	if punct := view.Prev[start]; len(punct) > 0 {
		features = append(features, "sp-1="+typ+"|"+punctTypes(punct))
	}
	if punct := view.Next[end]; len(punct) > 0 {
		features = append(features, "sp1="+typ+"|"+punctTypes(punct))
	}
	return features
}
