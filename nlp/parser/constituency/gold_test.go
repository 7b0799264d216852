package constituency

import (
	"io"
	"testing"

	"github.com/njwilson/chalk/nlp/format/ptb"
	"github.com/njwilson/chalk/nlp/parser/constituency/headrules"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const barksTree = "(TOP (S (NP (DT the) (NN dog)) (VP (VBZ barks)) (. .)))"

func mustTree(t *testing.T, s string) *types.Parse {
	p, err := ptb.ParseTree(s)
	require.NoError(t, err)
	return p
}

type checkCall struct {
	typ        string
	start, end int
	complete   bool
}

type recordingVisitor struct {
	builds  []string
	checks  []checkCall
	reduces []int
}

func (v *recordingVisitor) build(view *types.Collapsed, index int, outcome string) {
	v.builds = append(v.builds, outcome)
}

func (v *recordingVisitor) check(view *types.Collapsed, typ string, start, end int, complete bool) {
	v.checks = append(v.checks, checkCall{typ, start, end, complete})
}

func (v *recordingVisitor) reduce(view *types.Collapsed, index int) {
	v.reduces = append(v.reduces, index)
}

func TestReplayGold(t *testing.T) {
	rules := headrules.English()
	gold, err := prepareGold(mustTree(t, barksTree), rules)
	require.NoError(t, err)

	v := &recordingVisitor{}
	replayGold(gold, rules.PunctuationTags(), v)
	assert.Equal(t, []string{START + "S", CONT + "S", TOP_START}, v.builds)
	assert.Equal(t, []checkCall{
		{"S", 0, 0, false},
		{"S", 0, 1, true},
		{types.TOP_NODE, 0, 0, true},
	}, v.checks)
	assert.Equal(t, []int{0}, v.reduces)
}

func TestReplayGoldNested(t *testing.T) {
	rules := headrules.English()
	gold, err := prepareGold(mustTree(t, "(TOP (S (NP (DT a) (NN cat)) (VP (VBD slept) (PP (IN on) (NP (DT the) (NN mat))))))"), rules)
	require.NoError(t, err)

	v := &recordingVisitor{}
	replayGold(gold, rules.PunctuationTags(), v)
	assert.Equal(t, []string{
		START + "S", START + "VP", START + "PP", CONT + "PP", CONT + "VP", CONT + "S", TOP_START,
	}, v.builds)
	assert.Equal(t, []checkCall{
		{"S", 0, 0, false},
		{"VP", 1, 1, false},
		{"PP", 2, 2, false},
		{"PP", 2, 3, true},
		{"VP", 1, 2, true},
		{"S", 0, 1, true},
		{types.TOP_NODE, 0, 0, true},
	}, v.checks)
	assert.Equal(t, []int{2, 1, 0}, v.reduces)
}

func TestPrepareGoldLeavesSampleUntouched(t *testing.T) {
	sample := mustTree(t, barksTree)
	gold, err := prepareGold(sample, headrules.English())
	require.NoError(t, err)
	assert.NotSame(t, sample, gold)
	assert.Nil(t, sample.Children[0].Parent)
	assert.Same(t, gold, gold.Children[0].Parent)
	assert.Equal(t, "barks", gold.Children[0].HeadWord())
}

func TestPrepareGoldWrapsTop(t *testing.T) {
	tokens := []string{"dogs", "bark"}
	s := types.NewConstituent(tokens, types.Span{Start: 0, End: 2}, "S", 0)
	s.Children = []*types.Parse{types.NewPOS(tokens, 0, "NNS"), types.NewPOS(tokens, 1, "VBP")}
	gold, err := prepareGold(s, headrules.English())
	require.NoError(t, err)
	assert.Equal(t, types.TOP_NODE, gold.Type)
	assert.Equal(t, "S", gold.Children[0].Type)
}

func TestPrepareGoldRejectsMalformed(t *testing.T) {
	tokens := []string{"a", "b"}
	bad := types.NewConstituent(tokens, types.Span{Start: 0, End: 2}, types.TOP_NODE, 0)
	bad.Children = []*types.Parse{types.NewPOS(tokens, 0, "DT")}
	_, err := prepareGold(bad, headrules.English())
	assert.True(t, errors.Is(err, ErrMalformedTree))

	partial := types.NewConstituent(tokens, types.Span{Start: 0, End: 1}, types.TOP_NODE, 0)
	partial.Children = []*types.Parse{types.NewPOS(tokens, 0, "DT")}
	_, err = prepareGold(partial, headrules.English())
	assert.True(t, errors.Is(err, ErrMalformedTree))
}

func TestInitialChunks(t *testing.T) {
	chunks := initialChunks(mustTree(t, "(TOP (S (NP (DT a) (NN cat)) (VP (VBD slept) (PP (IN on) (NP (DT the) (NN mat))))))"))
	var typs []string
	for _, c := range chunks {
		typs = append(typs, c.Type)
	}
	assert.Equal(t, []string{"NP", "VBD", "IN", "NP"}, typs)

	flat := initialChunks(mustTree(t, "(TOP (UH hello) (. !))"))
	assert.Len(t, flat, 2)
}

func readAll(t *testing.T, s *ParserEventStream) []string {
	var outcomes []string
	for {
		e, err := s.Read()
		if err == io.EOF {
			return outcomes
		}
		require.NoError(t, err)
		assert.Contains(t, e.Context, "default")
		outcomes = append(outcomes, e.Outcome)
	}
}

func TestParserEventStream(t *testing.T) {
	samples := &SliceStream{Parses: []*types.Parse{mustTree(t, barksTree), mustTree(t, barksTree)}}
	build := NewParserEventStream(samples, headrules.English(), BUILD, nil)
	assert.Equal(t, []string{START + "S", CONT + "S", TOP_START, START + "S", CONT + "S", TOP_START}, readAll(t, build))

	require.NoError(t, samples.Reset())
	check := NewParserEventStream(samples, headrules.English(), CHECK, nil)
	assert.Equal(t, []string{INCOMPLETE, COMPLETE, COMPLETE, INCOMPLETE, COMPLETE, COMPLETE}, readAll(t, check))
}

func TestParserEventStreamMalformed(t *testing.T) {
	tokens := []string{"a", "b"}
	bad := types.NewConstituent(tokens, types.Span{Start: 0, End: 2}, types.TOP_NODE, 0)
	bad.Children = []*types.Parse{types.NewPOS(tokens, 0, "DT")}
	s := NewParserEventStream(&SliceStream{Parses: []*types.Parse{bad}}, headrules.English(), BUILD, nil)
	_, err := s.Read()
	assert.True(t, errors.Is(err, ErrMalformedTree))
}

func TestSampleStreams(t *testing.T) {
	samples := &SliceStream{Parses: []*types.Parse{mustTree(t, barksTree)}}
	pos, err := (&posSampleStream{samples}).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "dog", "barks", "."}, pos.Tokens)
	assert.Equal(t, []string{"DT", "NN", "VBZ", "."}, pos.Outcomes)

	require.NoError(t, samples.Reset())
	chunk, err := (&chunkSampleStream{parses: samples}).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"DT", "NN", "VBZ", "."}, chunk.Tags)
	assert.Equal(t, []string{START + "NP", CONT + "NP", START + "VP", OTHER}, chunk.Outcomes)

	_, err = (&chunkSampleStream{parses: samples}).Read()
	assert.Equal(t, io.EOF, err)
}

func TestBuildDictionary(t *testing.T) {
	samples := &SliceStream{Parses: []*types.Parse{mustTree(t, barksTree)}}
	dict, err := BuildDictionary(samples, headrules.English(), 1)
	require.NoError(t, err)
	assert.True(t, dict.Contains("the"))
	assert.True(t, dict.Contains("dog", "barks"))
	assert.False(t, dict.Contains("the", "dog"))
	assert.Equal(t, 1, dict.Count("barks"))

	require.NoError(t, samples.Reset())
	dict, err = BuildDictionary(samples, headrules.English(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, dict.Len())

	var missing *Dictionary
	assert.False(t, missing.Contains("the"))
}

func TestDictionaryNGramsAroundReduction(t *testing.T) {
	tree := "(TOP (S (NP (DT a) (NN cat)) (VP (VBD slept) (PP (IN on) (NP (DT the) (NN mat))))))"
	dict, err := BuildDictionary(&SliceStream{Parses: []*types.Parse{mustTree(t, tree)}}, headrules.English(), 1)
	require.NoError(t, err)
	// each reduction counts the n-grams around the new constituent again
	assert.Equal(t, 2, dict.Count("cat", "slept", "on"))
	assert.Equal(t, 2, dict.Count("slept", "on"))
	assert.Equal(t, 2, dict.Count("cat", "slept"))
	assert.Equal(t, 1, dict.Count("on", "mat"))
}
