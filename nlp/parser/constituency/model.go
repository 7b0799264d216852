package constituency

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/njwilson/chalk/alg/perceptron"
	"github.com/njwilson/chalk/nlp/tagger"
	"github.com/njwilson/chalk/nlp/types"

	// registers the head rule table with gob
	_ "github.com/njwilson/chalk/nlp/parser/constituency/headrules"

	"github.com/pkg/errors"
)

// ParserModel bundles everything the parser needs. It is created by Train
// and must not be modified afterwards.
type ParserModel struct {
	Language     string
	Type         string
	BuildModel   *perceptron.Classifier
	CheckModel   *perceptron.Classifier
	TaggerModel  *tagger.Model
	ChunkerModel *tagger.Model
	HeadRules    types.HeadRules
	Dictionary   *Dictionary
	Manifest     map[string]string
}

// Validate reports the first missing component.
func (m *ParserModel) Validate() error {
	switch {
	case m.Type != CHUNKING:
		return errors.Errorf("unsupported parser type %q", m.Type)
	case m.BuildModel == nil:
		return errors.New("model has no build model")
	case m.CheckModel == nil:
		return errors.New("model has no check model")
	case m.TaggerModel == nil:
		return errors.New("model has no tagger model")
	case m.ChunkerModel == nil:
		return errors.New("model has no chunker model")
	case m.HeadRules == nil:
		return errors.New("model has no head rules")
	}
	if m.CheckModel.Index(COMPLETE) < 0 || m.CheckModel.Index(INCOMPLETE) < 0 {
		return errors.New("check model lacks the complete and incomplete outcomes")
	}
	return nil
}

func (m *ParserModel) Write(writer io.Writer) error {
	return errors.Wrap(gob.NewEncoder(writer).Encode(m), "encoding parser model")
}

func (m *ParserModel) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating model file")
	}
	if err := m.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Bytes returns the gob encoding of the model.
func (m *ParserModel) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReadModel(reader io.Reader) (*ParserModel, error) {
	m := &ParserModel{}
	if err := gob.NewDecoder(reader).Decode(m); err != nil {
		return nil, errors.Wrap(err, "decoding parser model")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func ReadModelFile(filename string) (*ParserModel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening model file")
	}
	defer file.Close()
	return ReadModel(file)
}
