package tagger

import (
	"github.com/njwilson/chalk/util"
)

const (
	BOS = "*BOS*"
	EOS = "*EOS*"

	AFFIX_LENGTH = 4
)

func at(values []string, i int) string {
	switch {
	case i < 0:
		return BOS
	case i >= len(values):
		return EOS
	default:
		return values[i]
	}
}

// posContext describes token i given the tags already assigned to its
// left.
func posContext(i int, tokens, _ []string, prior []string) []string {
	word := tokens[i]
	features := make([]string, 0, 24)
	features = append(features,
		"default",
		"w="+word,
		"sig="+util.Signature(word),
		"w-1="+at(tokens, i-1),
		"w-2="+at(tokens, i-2),
		"w+1="+at(tokens, i+1),
		"w+2="+at(tokens, i+2),
		"t-1="+at(prior, i-1),
		"t-2,t-1="+at(prior, i-2)+","+at(prior, i-1),
	)
	runes := []rune(word)
	for n := 1; n <= AFFIX_LENGTH && n <= len(runes); n++ {
		features = append(features,
			"pre="+util.Prefix(word, n),
			"suf="+util.Suffix(word, n),
		)
	}
	return features
}

// chunkContext describes token i from its word, its tag and the chunk
// labels already assigned to its left.
func chunkContext(i int, tokens, tags []string, prior []string) []string {
	t0 := tags[i]
	p1 := at(prior, i-1)
	return []string{
		"default",
		"w0=" + tokens[i],
		"t0=" + t0,
		"w-1=" + at(tokens, i-1),
		"w+1=" + at(tokens, i+1),
		"t-1=" + at(tags, i-1),
		"t+1=" + at(tags, i+1),
		"t-2=" + at(tags, i-2),
		"t+2=" + at(tags, i+2),
		"t-1,t0=" + at(tags, i-1) + "," + t0,
		"t0,t+1=" + t0 + "," + at(tags, i+1),
		"p-1=" + p1,
		"p-2,p-1=" + at(prior, i-2) + "," + p1,
		"p-1,t0=" + p1 + "," + t0,
		"p-1,w0=" + p1 + "," + tokens[i],
	}
}
