// Package taggedsentence reads sentences of word/TAG tokens, one sentence
// per line.
package taggedsentence

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

const SEPARATOR = "/"

func Read(reader io.Reader) ([]types.BasicTaggedSentence, error) {
	var sentences []types.BasicTaggedSentence
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		taggedTokenStrings := strings.Fields(scanner.Text())
		if len(taggedTokenStrings) == 0 {
			continue
		}
		sent := make(types.BasicTaggedSentence, len(taggedTokenStrings))
		for j, taggedTokenString := range taggedTokenStrings {
			// the last separator splits the tag so tokens may contain one
			i := strings.LastIndex(taggedTokenString, SEPARATOR)
			if i <= 0 || i == len(taggedTokenString)-1 {
				return nil, errors.Errorf("untagged token %q at line %d", taggedTokenString, lineNum)
			}
			sent[j] = types.TaggedToken{Token: taggedTokenString[:i], POS: taggedTokenString[i+1:]}
		}
		sentences = append(sentences, sent)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tagged sentences")
	}
	return sentences, nil
}

func ReadFile(filename string) ([]types.BasicTaggedSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func Write(writer io.Writer, sents []types.BasicTaggedSentence) error {
	w := bufio.NewWriter(writer)
	for _, sent := range sents {
		for i, token := range sent {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(token.Token + SEPARATOR + token.POS)
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
