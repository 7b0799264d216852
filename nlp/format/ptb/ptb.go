// Package ptb reads and writes constituency trees in Penn Treebank
// bracket notation, one tree after another, possibly spanning lines.
package ptb

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

const (
	NULL_ELEMENT = "-NONE-"
	EMPTY_TREE   = "()"
)

var (
	ErrUnbalanced = errors.New("unbalanced brackets")
	ErrEmptyTree  = errors.New("empty tree")
)

type bracketNode struct {
	label    string
	word     string
	children []*bracketNode
}

func (n *bracketNode) isPreterminal() bool {
	return n.word != ""
}

func tokenize(s string) []string {
	s = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(s)
	return strings.Fields(s)
}

type bracketParser struct {
	tokens []string
	pos    int
}

func (b *bracketParser) parse() (*bracketNode, error) {
	if b.pos >= len(b.tokens) || b.tokens[b.pos] != "(" {
		return nil, errors.Wrapf(ErrUnbalanced, "expected '(' at token %d", b.pos)
	}
	b.pos++
	n := &bracketNode{}
	if b.pos < len(b.tokens) && b.tokens[b.pos] != "(" && b.tokens[b.pos] != ")" {
		n.label = b.tokens[b.pos]
		b.pos++
	}
	for b.pos < len(b.tokens) {
		switch tok := b.tokens[b.pos]; tok {
		case ")":
			b.pos++
			return n, nil
		case "(":
			child, err := b.parse()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		default:
			if n.word != "" || len(n.children) > 0 {
				return nil, errors.Errorf("unexpected word %q under %s", tok, n.label)
			}
			n.word = tok
			b.pos++
		}
	}
	return nil, errors.Wrap(ErrUnbalanced, "tree not closed")
}

// StripFunctionTags reduces a treebank label such as NP-SBJ-1 or PP=2 to
// its constituent type. Labels starting with '-' are left alone.
func StripFunctionTags(label string) string {
	if strings.HasPrefix(label, "-") {
		return label
	}
	if i := strings.IndexAny(label, "-="); i > 0 {
		return label[:i]
	}
	return label
}

func collectWords(n *bracketNode, words []string) []string {
	if n.isPreterminal() {
		if n.label == NULL_ELEMENT {
			return words
		}
		return append(words, n.word)
	}
	for _, child := range n.children {
		words = collectWords(child, words)
	}
	return words
}

func build(n *bracketNode, tokens []string, next *int) *types.Parse {
	if n.isPreterminal() {
		if n.label == NULL_ELEMENT {
			return nil
		}
		p := types.NewPOS(tokens, *next, n.label)
		*next++
		return p
	}
	var children []*types.Parse
	for _, child := range n.children {
		if c := build(child, tokens, next); c != nil {
			children = append(children, c)
		}
	}
	if len(children) == 0 {
		return nil
	}
	p := types.NewConstituent(tokens, types.Span{Start: children[0].Span.Start, End: children[len(children)-1].Span.End}, StripFunctionTags(n.label), 0)
	p.Children = children
	return p
}

// ParseTree converts one bracketed tree into a Parse rooted at TOP. Null
// elements and constituents left empty without them are removed.
func ParseTree(s string) (*types.Parse, error) {
	b := &bracketParser{tokens: tokenize(s)}
	root, err := b.parse()
	if err != nil {
		return nil, err
	}
	if b.pos != len(b.tokens) {
		return nil, errors.Wrapf(ErrUnbalanced, "trailing input after token %d", b.pos)
	}
	tokens := collectWords(root, nil)
	if len(tokens) == 0 {
		return nil, ErrEmptyTree
	}
	next := 0
	p := build(root, tokens, &next)
	switch {
	case root.label == "" || root.label == "ROOT" || root.label == types.TOP_NODE:
		p.Type = types.TOP_NODE
	default:
		p = &types.Parse{Tokens: tokens, Span: p.Span, Type: types.TOP_NODE, Children: []*types.Parse{p}}
	}
	if p.IsPosTag() {
		p = &types.Parse{Tokens: tokens, Span: p.Span, Type: types.TOP_NODE, Children: []*types.Parse{p}}
	}
	return p, nil
}

// Stream reads trees from a seekable source so it can be replayed.
type Stream struct {
	source io.ReadSeeker
	reader *bufio.Reader
	read   int
}

func NewStream(source io.ReadSeeker) *Stream {
	return &Stream{source: source, reader: bufio.NewReader(source)}
}

func OpenStream(filename string) (*Stream, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return NewStream(file), nil
}

func (s *Stream) next() (string, error) {
	var (
		b       strings.Builder
		depth   int
		started bool
	)
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			if started {
				return "", errors.Wrap(ErrUnbalanced, "end of input inside tree")
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		switch r {
		case '(':
			depth++
			started = true
		case ')':
			if !started {
				return "", errors.Wrap(ErrUnbalanced, "')' outside tree")
			}
			depth--
		default:
			if !started && !isSpace(r) {
				return "", errors.Errorf("unexpected %q outside tree", r)
			}
		}
		if started {
			b.WriteRune(r)
			if depth == 0 {
				return b.String(), nil
			}
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Read returns the next tree, or io.EOF after the last one.
func (s *Stream) Read() (*types.Parse, error) {
	text, err := s.next()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrapf(err, "tree %d", s.read)
	}
	index := s.read
	s.read++
	if strings.Join(strings.Fields(text), "") == EMPTY_TREE {
		return nil, errors.Wrapf(ErrEmptyTree, "tree %d", index)
	}
	p, err := ParseTree(text)
	if err != nil {
		return nil, errors.Wrapf(err, "tree %d", index)
	}
	return p, nil
}

func (s *Stream) Reset() error {
	if _, err := s.source.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewinding treebank")
	}
	s.reader.Reset(s.source)
	s.read = 0
	return nil
}

func (s *Stream) Close() error {
	if closer, ok := s.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Read returns all trees in reader. Empty trees, as written for failed
// parses, are returned as nil entries.
func Read(reader io.Reader) ([]*types.Parse, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	s := NewStream(strings.NewReader(string(data)))
	var parses []*types.Parse
	for {
		p, err := s.Read()
		if err == io.EOF {
			return parses, nil
		}
		if err != nil && !errors.Is(err, ErrEmptyTree) {
			return nil, err
		}
		parses = append(parses, p)
	}
}

func ReadFile(filename string) ([]*types.Parse, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Write writes a tree per line; a nil parse is written as an empty
// bracket pair so output lines stay aligned with the input sentences.
func Write(writer io.Writer, parses []*types.Parse) error {
	for _, p := range parses {
		line := EMPTY_TREE
		if p != nil {
			line = p.String()
		}
		if _, err := io.WriteString(writer, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(filename string, parses []*types.Parse) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, parses)
}
