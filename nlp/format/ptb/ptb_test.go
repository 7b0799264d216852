package ptb

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treebank = `( (S (NP-SBJ (DT The) (NN dog))
     (VP (VBD barked)
       (NP (-NONE- *T*-1)))
     (. .)) )
(S (NP (PRP He)) (VP (VBD ran)))

(TOP (NP (NNP Mary)))
`

func TestParseTree(t *testing.T) {
	p, err := ParseTree("( (S (NP-SBJ-1 (DT The) (NN dog)) (VP (VBD barked) (NP (-NONE- *T*))) (. .)) )")
	require.NoError(t, err)
	assert.Equal(t, "(TOP (S (NP (DT The) (NN dog)) (VP (VBD barked)) (. .)))", p.String())
	assert.Equal(t, []string{"The", "dog", "barked", "."}, p.Tokens)
	assert.Equal(t, types.Span{Start: 0, End: 4}, p.Span)
	assert.NoError(t, p.Validate())

	vp := p.Children[0].Children[1]
	assert.Equal(t, types.Span{Start: 2, End: 3}, vp.Span)
	assert.Len(t, vp.Children, 1)
}

func TestParseTreeWrapsRoot(t *testing.T) {
	p, err := ParseTree("(S (NP (PRP He)) (VP (VBD ran)))")
	require.NoError(t, err)
	assert.Equal(t, types.TOP_NODE, p.Type)
	assert.Equal(t, "S", p.Children[0].Type)

	p, err = ParseTree("(NN dog)")
	require.NoError(t, err)
	assert.Equal(t, "(TOP (NN dog))", p.String())
}

func TestParseTreeErrors(t *testing.T) {
	for _, bad := range []string{
		"(S (NP (DT the)",
		"(S (NP (DT the))) )",
		"S (DT the)",
		"( (-NONE- *) )",
		"(NN dog cat)",
	} {
		_, err := ParseTree(bad)
		assert.Error(t, err, bad)
	}
	_, err := ParseTree("(S (-NONE- *))")
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestStripFunctionTags(t *testing.T) {
	assert.Equal(t, "NP", StripFunctionTags("NP-SBJ-1"))
	assert.Equal(t, "PP", StripFunctionTags("PP=2"))
	assert.Equal(t, "-LRB-", StripFunctionTags("-LRB-"))
	assert.Equal(t, "S", StripFunctionTags("S"))
}

func TestStreamAndReset(t *testing.T) {
	s := NewStream(strings.NewReader(treebank))
	var first []string
	for {
		p, err := s.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		first = append(first, p.String())
	}
	require.Len(t, first, 3)
	assert.Equal(t, "(TOP (NP (NNP Mary)))", first[2])

	require.NoError(t, s.Reset())
	p, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, first[0], p.String())
	assert.NoError(t, s.Close())
}

func TestStreamErrors(t *testing.T) {
	s := NewStream(strings.NewReader("(S (NP (DT the)"))
	_, err := s.Read()
	assert.ErrorIs(t, err, ErrUnbalanced)

	s = NewStream(strings.NewReader("garbage (S (DT the))"))
	_, err = s.Read()
	assert.Error(t, err)
}

func TestWriteReadFile(t *testing.T) {
	parses, err := Read(strings.NewReader(treebank))
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "out.mrg")
	require.NoError(t, WriteFile(name, parses))

	again, err := ReadFile(name)
	require.NoError(t, err)
	require.Len(t, again, len(parses))
	for i := range parses {
		assert.Equal(t, parses[i].String(), again[i].String())
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, parses[1:2]))
	assert.Equal(t, "(TOP (S (NP (PRP He)) (VP (VBD ran))))\n", buf.String())
}

func TestOpenStream(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.mrg")
	require.NoError(t, os.WriteFile(name, []byte(treebank), 0644))
	s, err := OpenStream(name)
	require.NoError(t, err)
	defer s.Close()
	p, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "The", p.Tokens[0])

	_, err = OpenStream(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriteFailedParse(t *testing.T) {
	p, err := ParseTree("(S (NN dogs))")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*types.Parse{nil, p}))
	assert.Equal(t, EMPTY_TREE+"\n(TOP (S (NN dogs)))\n", buf.String())
}

func TestReadFailedParse(t *testing.T) {
	parses, err := Read(strings.NewReader("( )\n(TOP (S (NN dogs)))\n()\n"))
	require.NoError(t, err)
	require.Len(t, parses, 3)
	assert.Nil(t, parses[0])
	assert.Equal(t, "(TOP (S (NN dogs)))", parses[1].String())
	assert.Nil(t, parses[2])

	s := NewStream(strings.NewReader("()"))
	_, err = s.Read()
	assert.ErrorIs(t, err, ErrEmptyTree)
}
