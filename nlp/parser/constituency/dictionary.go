package constituency

import (
	"io"
	"strings"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

const DEFAULT_DICT_CUTOFF = 5

// Dictionary counts the head word n-grams seen while replaying the
// training trees. Lexicalized trigram features are only generated for
// n-grams it contains.
type Dictionary struct {
	NGrams map[string]int
}

func NewDictionary() *Dictionary {
	return &Dictionary{make(map[string]int)}
}

func ngramKey(words []string) string {
	return strings.Join(words, " ")
}

func (d *Dictionary) Add(words ...string) {
	d.NGrams[ngramKey(words)]++
}

func (d *Dictionary) Contains(words ...string) bool {
	if d == nil {
		return false
	}
	_, exists := d.NGrams[ngramKey(words)]
	return exists
}

func (d *Dictionary) Count(words ...string) int {
	if d == nil {
		return 0
	}
	return d.NGrams[ngramKey(words)]
}

func (d *Dictionary) Len() int {
	return len(d.NGrams)
}

// Prune drops the n-grams seen fewer than cutoff times.
func (d *Dictionary) Prune(cutoff int) {
	for k, count := range d.NGrams {
		if count < cutoff {
			delete(d.NGrams, k)
		}
	}
}

// addNGrams adds the bigrams and trigrams of head words in nodes[from:to]
// that include position at.
func (d *Dictionary) addNGrams(nodes []*types.Parse, at, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(nodes) {
		to = len(nodes)
	}
	for i := from; i < to; i++ {
		for n := 2; n <= 3 && i+n <= to; n++ {
			if at < i || at >= i+n {
				continue
			}
			words := make([]string, n)
			for j := range words {
				words[j] = nodes[i+j].HeadWord()
			}
			d.Add(words...)
		}
	}
}

type dictionaryVisitor struct {
	dict *Dictionary
}

func (v *dictionaryVisitor) build(view *types.Collapsed, index int, outcome string) {}

func (v *dictionaryVisitor) check(view *types.Collapsed, typ string, start, end int, complete bool) {}

func (v *dictionaryVisitor) reduce(view *types.Collapsed, index int) {
	v.dict.addNGrams(view.Nodes, index, index-2, index+3)
}

// BuildDictionary reads every sample once, counting words, the head word
// n-grams of the initial chunks and those around each gold reduction.
func BuildDictionary(samples ParseStream, rules types.HeadRules, cutoff int) (*Dictionary, error) {
	dict := NewDictionary()
	visitor := &dictionaryVisitor{dict}
	punct := rules.PunctuationTags()
	for i := 0; ; i++ {
		sample, err := samples.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading sample %d", i)
		}
		gold, err := prepareGold(sample, rules)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		for _, word := range gold.Tokens {
			dict.Add(word)
		}
		chunks := types.Collapse(initialChunks(gold), punct).Nodes
		for at := range chunks {
			dict.addNGrams(chunks, at, at, at+3)
		}
		replayGold(gold, punct, visitor)
	}
	dict.Prune(cutoff)
	return dict, nil
}
