package types

import "reflect"

const (
	TOP_NODE = "TOP"
	INC_NODE = "INC"
	TOK_NODE = "TK"
)

type TaggedToken struct {
	Token, POS string
}

type Sentence interface {
	Tokens() []string
}

type TaggedSentence interface {
	Sentence
	TaggedTokens() []TaggedToken
}

type BasicSentence []string

var _ Sentence = BasicSentence{}

func (b BasicSentence) Tokens() []string {
	return []string(b)
}

type BasicTaggedSentence []TaggedToken

var _ TaggedSentence = BasicTaggedSentence{}

func (b BasicTaggedSentence) Tokens() []string {
	tokens := make([]string, len(b))
	for i, token := range b {
		tokens[i] = token.Token
	}
	return tokens
}

func (b BasicTaggedSentence) Tags() []string {
	tags := make([]string, len(b))
	for i, token := range b {
		tags[i] = token.POS
	}
	return tags
}

func (b BasicTaggedSentence) TaggedTokens() []TaggedToken {
	return []TaggedToken(b)
}

func (b BasicTaggedSentence) Equal(other BasicTaggedSentence) bool {
	return reflect.DeepEqual(b, other)
}

// HeadRules picks the head child of a constituent and names the tags
// treated as punctuation.
type HeadRules interface {
	// HeadIndex returns the index of the head among children, or -1 when
	// children are the token of a part-of-speech node.
	HeadIndex(children []*Parse, typ string) int
	PunctuationTags() map[string]bool
}
