package types

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedTree = errors.New("malformed parse tree")

// Parse is a node of a (possibly partial) constituency tree. All nodes of
// a tree share the sentence's Tokens; Span indexes into them.
//
// Partial parses in a search beam share unmodified subtrees, so a node
// reachable from more than one parse must never be mutated in place:
// Clone copies the child list and SetChild replaces the child it labels.
type Parse struct {
	Tokens []string
	Span   Span
	Type   string
	// Label is the build label assigned by the shift-reduce pass, empty
	// until the node has been labeled.
	Label    string
	Prob     float64
	Children []*Parse
	Head     *Parse
	// Parent is set only on finished trees, see SetParents.
	Parent     *Parse
	Derivation []int
}

func NewToken(tokens []string, i int) *Parse {
	p := &Parse{Tokens: tokens, Span: Span{i, i + 1}, Type: TOK_NODE}
	p.Head = p
	return p
}

func NewPOS(tokens []string, i int, tag string) *Parse {
	p := &Parse{
		Tokens:   tokens,
		Span:     Span{i, i + 1},
		Type:     tag,
		Children: []*Parse{NewToken(tokens, i)},
	}
	p.Head = p
	return p
}

func NewConstituent(tokens []string, span Span, typ string, logProb float64) *Parse {
	return &Parse{Tokens: tokens, Span: span, Type: typ, Prob: logProb}
}

// NewIncomplete returns the root of a partial parse over the whole
// sentence.
func NewIncomplete(tokens []string, children []*Parse) *Parse {
	return &Parse{Tokens: tokens, Span: Span{0, len(tokens)}, Type: INC_NODE, Children: children}
}

func (p *Parse) IsToken() bool {
	return p.Type == TOK_NODE
}

func (p *Parse) IsPosTag() bool {
	return len(p.Children) == 1 && p.Children[0].IsToken()
}

// Complete is true when a single child spans the sentence and only the
// TOP attachment remains.
func (p *Parse) Complete() bool {
	return len(p.Children) == 1
}

func (p *Parse) Score() float64 {
	return p.Prob
}

func (p *Parse) Terminal() bool {
	return p.Type == TOP_NODE
}

func (p *Parse) AddProb(logProb float64) {
	p.Prob += logProb
}

func (p *Parse) CoveredText() string {
	return strings.Join(p.Tokens[p.Span.Start:p.Span.End], " ")
}

// HeadNode follows head pointers down to a part-of-speech or token node.
func (p *Parse) HeadNode() *Parse {
	n := p
	for n.Head != nil && n.Head != n {
		n = n.Head
	}
	return n
}

func (p *Parse) HeadWord() string {
	return p.HeadNode().CoveredText()
}

func (p *Parse) HeadTag() string {
	return p.HeadNode().Type
}

// Clone returns a shallow copy that owns its child list and derivation.
func (p *Parse) Clone() *Parse {
	c := *p
	if p.Children != nil {
		c.Children = append(make([]*Parse, 0, len(p.Children)+1), p.Children...)
	}
	if p.Derivation != nil {
		c.Derivation = append(make([]int, 0, len(p.Derivation)+4), p.Derivation...)
	}
	if p.Head == p {
		c.Head = &c
	}
	return &c
}

// SetChild replaces the i-th child with a labeled copy of itself.
func (p *Parse) SetChild(i int, label string) {
	old := p.Children[i]
	child := old.Clone()
	child.Label = label
	p.Children[i] = child
	if p.Head == old {
		p.Head = child
	}
}

// Insert adds an empty constituent below p, moving every child it spans
// underneath it.
func (p *Parse) Insert(node *Parse) {
	if !p.Span.Contains(node.Span) {
		panic(fmt.Sprintf("Inserted constituent %v not contained in %v", node.Span, p.Span))
	}
	p.absorb(node, true)
}

// Reduce replaces the children spanned by node with node itself, which
// already carries its own children.
func (p *Parse) Reduce(node *Parse) {
	p.absorb(node, false)
}

func (p *Parse) absorb(node *Parse, adopt bool) {
	kept := make([]*Parse, 0, len(p.Children)+1)
	placed := false
	for _, child := range p.Children {
		if node.Span.Contains(child.Span) {
			if adopt {
				node.Children = append(node.Children, child)
			}
			if !placed {
				kept = append(kept, node)
				placed = true
			}
			continue
		}
		if !placed && node.Span.End <= child.Span.Start {
			kept = append(kept, node)
			placed = true
		}
		kept = append(kept, child)
	}
	if !placed {
		kept = append(kept, node)
	}
	p.Children = kept
}

// DeepCopy copies the whole subtree, remapping head and parent pointers
// into the copy.
func (p *Parse) DeepCopy() *Parse {
	c := *p
	c.Parent = nil
	c.Head = nil
	c.Derivation = append([]int(nil), p.Derivation...)
	if p.Children != nil {
		c.Children = make([]*Parse, len(p.Children))
	}
	for i, child := range p.Children {
		c.Children[i] = child.DeepCopy()
		c.Children[i].Parent = &c
		if p.Head == child {
			c.Head = c.Children[i]
		}
	}
	if p.Head == p {
		c.Head = &c
	}
	return &c
}

// UpdateHeads assigns head children bottom-up using rules.
func (p *Parse) UpdateHeads(rules HeadRules) {
	if p.IsToken() || p.IsPosTag() || len(p.Children) == 0 {
		p.Head = p
		return
	}
	for _, child := range p.Children {
		child.UpdateHeads(rules)
	}
	i := rules.HeadIndex(p.Children, p.Type)
	if i < 0 || i >= len(p.Children) {
		i = len(p.Children) - 1
	}
	p.Head = p.Children[i]
}

func (p *Parse) SetParents() {
	for _, child := range p.Children {
		child.Parent = p
		child.SetParents()
	}
}

// TagNodes returns the part-of-speech nodes in sentence order.
func (p *Parse) TagNodes() []*Parse {
	var tags []*Parse
	p.collectTags(&tags)
	return tags
}

func (p *Parse) collectTags(tags *[]*Parse) {
	if p.IsPosTag() {
		*tags = append(*tags, p)
		return
	}
	for _, child := range p.Children {
		child.collectTags(tags)
	}
}

// Validate checks that every node's children tile its span exactly.
func (p *Parse) Validate() error {
	if p.Span.Start < 0 || p.Span.End > len(p.Tokens) || p.Span.Start >= p.Span.End {
		return errors.Wrapf(ErrMalformedTree, "node %s has span %v over %d tokens", p.Type, p.Span, len(p.Tokens))
	}
	if p.IsToken() {
		if len(p.Children) > 0 {
			return errors.Wrapf(ErrMalformedTree, "token %v has children", p.Span)
		}
		return nil
	}
	if len(p.Children) == 0 {
		return errors.Wrapf(ErrMalformedTree, "constituent %s%v has no children", p.Type, p.Span)
	}
	pos := p.Span.Start
	for _, child := range p.Children {
		if child.Span.Start != pos {
			return errors.Wrapf(ErrMalformedTree, "child %s%v of %s%v does not start at %d", child.Type, child.Span, p.Type, p.Span, pos)
		}
		if err := child.Validate(); err != nil {
			return err
		}
		pos = child.Span.End
	}
	if pos != p.Span.End {
		return errors.Wrapf(ErrMalformedTree, "children of %s%v end at %d", p.Type, p.Span, pos)
	}
	return nil
}

// String renders the tree in Penn Treebank bracket notation.
func (p *Parse) String() string {
	var b strings.Builder
	p.show(&b)
	return b.String()
}

func (p *Parse) show(b *strings.Builder) {
	if p.IsToken() {
		b.WriteString(EscapeBracket(p.CoveredText()))
		return
	}
	b.WriteByte('(')
	b.WriteString(p.Type)
	for _, child := range p.Children {
		b.WriteByte(' ')
		child.show(b)
	}
	b.WriteByte(')')
}

var brackets = strings.NewReplacer("(", "-LRB-", ")", "-RRB-", "{", "-LCB-", "}", "-RCB-")

func EscapeBracket(s string) string {
	return brackets.Replace(s)
}
