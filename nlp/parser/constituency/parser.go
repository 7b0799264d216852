package constituency

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/njwilson/chalk/alg/featurevector"
	"github.com/njwilson/chalk/alg/search"
	"github.com/njwilson/chalk/nlp/tagger"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Parser runs the shift-reduce beam search. Its models are only read, so
// one Parser may parse any number of sentences concurrently; the
// exported settings must not change while it does.
type Parser struct {
	BuildModel LabelOracle
	CheckModel LabelOracle
	Tagger     SequenceModel
	Chunker    SequenceModel
	HeadRules  types.HeadRules

	BeamSize int
	// AdvancePercentage is the probability mass of build outcomes explored
	// for each node; check outcomes below 1-AdvancePercentage are pruned.
	AdvancePercentage float64
	// MaxRounds bounds the search; zero allows ROUNDS_PER_TOKEN rounds per
	// token.
	MaxRounds        int
	CreateDerivation bool
	Metrics          *Metrics

	buildContext    *BuildContextGenerator
	checkContext    *CheckContextGenerator
	punct           map[string]bool
	topStartIndex   int
	completeIndex   int
	incompleteIndex int
}

// NewParser returns a parser over a trained model with the default
// settings.
func NewParser(model *ParserModel) (*Parser, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return NewParserFromComponents(model.BuildModel, model.CheckModel, model.TaggerModel, model.ChunkerModel, model.HeadRules, model.Dictionary)
}

func NewParserFromComponents(build, check LabelOracle, tagger, chunker SequenceModel, rules types.HeadRules, dict *Dictionary) (*Parser, error) {
	p := &Parser{
		BuildModel:        build,
		CheckModel:        check,
		Tagger:            tagger,
		Chunker:           chunker,
		HeadRules:         rules,
		BeamSize:          DEFAULT_BEAM_SIZE,
		AdvancePercentage: DEFAULT_ADVANCE_PERCENTAGE,
		buildContext:      &BuildContextGenerator{dict},
		checkContext:      &CheckContextGenerator{dict},
		punct:             rules.PunctuationTags(),
		topStartIndex:     build.Index(TOP_START),
		completeIndex:     check.Index(COMPLETE),
		incompleteIndex:   check.Index(INCOMPLETE),
	}
	if p.completeIndex < 0 || p.incompleteIndex < 0 {
		return nil, errors.New("check model lacks the complete and incomplete outcomes")
	}
	return p, nil
}

// Parse tags, chunks and parses a tokenized sentence.
func (p *Parser) Parse(tokens []string) (*types.Parse, error) {
	if len(tokens) == 0 {
		p.Metrics.observe(time.Now(), 0, ErrEmptySentence)
		return nil, ErrEmptySentence
	}
	return p.ParseChunks(p.initialParses(tokens))
}

// ParseTagged parses a sentence whose part of speech tags are known, so
// only the chunker proposes initial parses.
func (p *Parser) ParseTagged(sentence types.TaggedSentence) (*types.Parse, error) {
	tagged := sentence.TaggedTokens()
	if len(tagged) == 0 {
		p.Metrics.observe(time.Now(), 0, ErrEmptySentence)
		return nil, ErrEmptySentence
	}
	tokens := make([]string, len(tagged))
	tags := tagger.Sequence{Outcomes: make([]string, len(tagged)), Probs: make([]float64, len(tagged))}
	for i, t := range tagged {
		tokens[i], tags.Outcomes[i], tags.Probs[i] = t.Token, t.POS, 1
	}
	var parses []*types.Parse
	for _, chunks := range p.Chunker.TopKSequences(tokens, tags.Outcomes, p.BeamSize) {
		parses = append(parses, p.chunkedParse(tokens, tags, chunks))
	}
	return p.ParseChunks(parses)
}

// ParseChunks searches from caller-built partial parses, each an
// incomplete root over the whole sentence whose children are part of
// speech nodes and flat chunks.
func (p *Parser) ParseChunks(initial []*types.Parse) (*types.Parse, error) {
	start := time.Now()
	parse, rounds, err := p.search(initial)
	p.Metrics.observe(start, rounds, err)
	return parse, err
}

type Result struct {
	Parse *types.Parse
	Err   error
}

// ParseAll parses independent sentences on up to workers goroutines. A
// sentence that fails to parse only fails its own Result; the returned
// error is set when ctx is done before every sentence was attempted.
func (p *Parser) ParseAll(ctx context.Context, sentences [][]string, workers int) ([]Result, error) {
	results := make([]Result, len(sentences))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, sentence := range sentences {
		i, sentence := i, sentence
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parse, err := p.Parse(sentence)
			results[i] = Result{parse, err}
			return nil
		})
	}
	return results, g.Wait()
}

func (p *Parser) maxRounds(n int) int {
	if p.MaxRounds > 0 {
		return p.MaxRounds
	}
	return ROUNDS_PER_TOKEN*n + ROUNDS_PER_TOKEN
}

func (p *Parser) search(initial []*types.Parse) (*types.Parse, int, error) {
	if len(initial) == 0 {
		return nil, 0, errors.Wrap(ErrBeamExhausted, "no initial parses")
	}
	n := len(initial[0].Tokens)
	if n == 0 {
		return nil, 0, ErrEmptySentence
	}
	state := &parseState{parser: p, initial: initial}
	res, err := search.Search(state, nil, p.BeamSize, p.maxRounds(n))
	if err != nil {
		return nil, 0, errors.Wrapf(err, "%d tokens", n)
	}
	var best *types.Parse
	if c := res.Best(); c != nil {
		best = c.(*types.Parse)
	} else {
		best = state.advanceTop(res.Beam[0].(*types.Parse).Clone())
		log.Printf("Search stopped after %d rounds, completing best partial parse of %d tokens", res.Rounds, n)
	}
	best = best.DeepCopy()
	best.SetParents()
	return best, res.Rounds, nil
}

// initialParses pairs the best tag sequences with the best chunkings of
// each.
func (p *Parser) initialParses(tokens []string) []*types.Parse {
	var parses []*types.Parse
	for _, tags := range p.Tagger.TopKSequences(tokens, nil, p.BeamSize) {
		for _, chunks := range p.Chunker.TopKSequences(tokens, tags.Outcomes, p.BeamSize) {
			parses = append(parses, p.chunkedParse(tokens, tags, chunks))
		}
	}
	return parses
}

// chunkedParse groups each run of a start label and its continuations
// into a constituent; other tokens stay bare part of speech nodes.
func (p *Parser) chunkedParse(tokens []string, tags, chunks tagger.Sequence) *types.Parse {
	root := types.NewIncomplete(tokens, make([]*types.Parse, 0, len(tokens)))
	root.Prob = tags.Score + chunks.Score
	var open *types.Parse
	for i := range tokens {
		pos := types.NewPOS(tokens, i, tags.Outcomes[i])
		typ, start, cont := splitLabel(chunks.Outcomes[i])
		switch {
		case start:
			open = types.NewConstituent(tokens, types.Span{Start: i, End: i + 1}, typ, 0)
			open.Children = []*types.Parse{pos}
			root.Children = append(root.Children, open)
		case cont && open != nil && open.Type == typ:
			open.Children = append(open.Children, pos)
			open.Span.End = i + 1
		default:
			open = nil
			root.Children = append(root.Children, pos)
		}
	}
	for _, child := range root.Children {
		if !child.IsPosTag() {
			child.Head = p.headOf(child.Children, child.Type)
		}
	}
	return root
}

func (p *Parser) headOf(children []*types.Parse, typ string) *types.Parse {
	i := p.HeadRules.HeadIndex(children, typ)
	if i < 0 || i >= len(children) {
		i = len(children) - 1
	}
	return children[i]
}

// parseState is the search over one sentence. It owns the probability
// buffers the oracles fill, so it must not be shared.
type parseState struct {
	parser  *Parser
	initial []*types.Parse
	bprobs  []float64
	cprobs  []float64
}

var _ search.Interface = &parseState{}

func (s *parseState) Name() string {
	return CHUNKING
}

func (s *parseState) StartItem(problem search.Problem) []search.Candidate {
	retval := make([]search.Candidate, len(s.initial))
	for i, p := range s.initial {
		retval[i] = p
	}
	return retval
}

func (s *parseState) Expand(c search.Candidate, problem search.Problem) []search.Candidate {
	p := c.(*types.Parse)
	var successors []*types.Parse
	if p.Complete() {
		successors = []*types.Parse{s.advanceTop(p.Clone())}
	} else {
		successors = s.advanceParses(p, s.parser.AdvancePercentage)
	}
	if len(successors) == 0 {
		s.parser.Metrics.deadBranch()
	}
	retval := make([]search.Candidate, len(successors))
	for i, succ := range successors {
		retval[i] = succ
	}
	return retval
}

func prob(probs []float64, i int) float64 {
	if i < 0 {
		return 0
	}
	return probs[i]
}

// advanceTop labels the single remaining child of p as starting TOP and
// makes p the TOP node. p must be private to the caller.
func (s *parseState) advanceTop(p *types.Parse) *types.Parse {
	parser := s.parser
	view := types.Collapse(p.Children, parser.punct)
	s.bprobs = parser.BuildModel.Eval(parser.buildContext.Context(view, 0), s.bprobs)
	p.AddProb(math.Log(prob(s.bprobs, parser.topStartIndex)))
	p.SetChild(view.Original(0), TOP_START)
	if parser.CreateDerivation {
		p.Derivation = append(p.Derivation, parser.topStartIndex)
	}

	view = types.Collapse(p.Children, parser.punct)
	s.cprobs = parser.CheckModel.Eval(parser.checkContext.Context(view, types.TOP_NODE, 0, 0), s.cprobs)
	p.AddProb(math.Log(prob(s.cprobs, parser.completeIndex)))
	if parser.CreateDerivation {
		p.Derivation = append(p.Derivation, parser.completeIndex)
	}
	p.Type = types.TOP_NODE
	return p
}

// advanceParses labels the first unlabeled node of p with each build
// outcome in order of probability until probMass is covered. Every
// labeling may then reduce the open constituent it ends, shift past it,
// or both, depending on the check model.
func (s *parseState) advanceParses(p *types.Parse, probMass float64) []*types.Parse {
	parser := s.parser
	q := 1 - probMass
	view := types.Collapse(p.Children, parser.punct)
	if view.Len() == 0 {
		return nil
	}

	advance, lastStart, lastStartType := -1, -1, ""
	for i, node := range view.Nodes {
		if node.Label == "" {
			advance = i
			break
		}
		if typ, start, _ := splitLabel(node.Label); start {
			lastStart, lastStartType = i, typ
		}
	}
	if advance < 0 {
		return nil
	}
	last := advance == view.Len()-1

	s.bprobs = parser.BuildModel.Eval(parser.buildContext.Context(view, advance), s.bprobs)
	bprobs := featurevector.Vector(s.bprobs)
	var successors []*types.Parse
	for bprobSum := 0.0; bprobSum < probMass; {
		max := bprobs.Max()
		bprob := bprobs[max]
		if bprob <= 0 {
			break
		}
		bprobs[max] = 0
		bprobSum += bprob
		if max == parser.topStartIndex {
			continue
		}

		label := parser.BuildModel.Outcome(max)
		typ, start, cont := splitLabel(label)
		startIndex, startType := lastStart, lastStartType
		switch {
		case start:
			startIndex, startType = advance, typ
		case cont:
			if startIndex < 0 || startType != typ {
				continue
			}
		case startIndex < 0:
			continue
		}

		labeled := p.Clone()
		labeled.SetChild(view.Original(advance), label)
		labeled.AddProb(math.Log(bprob))
		if parser.CreateDerivation {
			labeled.Derivation = append(labeled.Derivation, max)
		}

		labeledView := types.Collapse(labeled.Children, parser.punct)
		s.cprobs = parser.CheckModel.Eval(parser.checkContext.Context(labeledView, startType, startIndex, advance), s.cprobs)
		complete, incomplete := s.cprobs[parser.completeIndex], s.cprobs[parser.incompleteIndex]

		if complete > q {
			if reduced := s.reduce(labeled, labeledView, startType, startIndex, advance, complete); reduced != nil {
				successors = append(successors, reduced)
			}
		}
		if incomplete > q && !last {
			labeled.AddProb(math.Log(incomplete))
			if parser.CreateDerivation {
				labeled.Derivation = append(labeled.Derivation, parser.incompleteIndex)
			}
			successors = append(successors, labeled)
		}
	}
	return successors
}

// reduce returns a copy of p with the view nodes start..end joined under
// a new constituent of type typ, or nil when they are all part of speech
// nodes, which only the chunker groups.
func (s *parseState) reduce(p *types.Parse, view *types.Collapsed, typ string, start, end int, complete float64) *types.Parse {
	parser := s.parser
	cons := view.Nodes[start : end+1]
	flat := true
	for _, c := range cons {
		if !c.IsPosTag() {
			flat = false
			break
		}
	}
	if flat {
		return nil
	}

	reduced := p.Clone()
	reduced.AddProb(math.Log(complete))
	if parser.CreateDerivation {
		reduced.Derivation = append(reduced.Derivation, parser.completeIndex)
	}
	span := types.Span{Start: cons[0].Span.Start, End: cons[len(cons)-1].Span.End}
	if start == 0 && end == view.Len()-1 {
		span = reduced.Span
	}
	node := types.NewConstituent(reduced.Tokens, span, typ, 0)
	node.Head = parser.headOf(cons, typ)
	reduced.Insert(node)
	return reduced
}
