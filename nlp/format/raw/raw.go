// Package raw reads and writes tokenized text. Read expects a token per
// line with sentences ending at an empty line; ReadLines expects a
// sentence per line with tokens separated by white space.
package raw

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/njwilson/chalk/nlp/types"

	"github.com/pkg/errors"
)

func Read(reader io.Reader, limit int) ([]types.BasicSentence, error) {
	var sentences []types.BasicSentence
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	currentSent := make(types.BasicSentence, 0, 10)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// an empty line indicates a new record
		if len(line) == 0 {
			if len(currentSent) > 0 {
				sentences = append(sentences, currentSent)
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
			}
			currentSent = make(types.BasicSentence, 0, 10)
			continue
		}
		currentSent = append(currentSent, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading raw sentences")
	}
	if len(currentSent) > 0 && (limit <= 0 || len(sentences) < limit) {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) ([]types.BasicSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, limit)
}

func ReadLines(reader io.Reader, limit int) ([]types.BasicSentence, error) {
	var sentences []types.BasicSentence
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		sentences = append(sentences, types.BasicSentence(tokens))
		if limit > 0 && len(sentences) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading raw sentences")
	}
	return sentences, nil
}

func ReadLinesFile(filename string, limit int) ([]types.BasicSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadLines(file, limit)
}

func Write(writer io.Writer, sents []types.BasicSentence) error {
	w := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, token := range sent {
			w.WriteString(token)
			w.WriteByte('\n')
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func WriteFile(filename string, sents []types.BasicSentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}
