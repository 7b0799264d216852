package app

import (
	"bytes"
	"log"
	"os"

	"github.com/njwilson/chalk/nlp/parser/constituency"
	"github.com/njwilson/chalk/util/store"

	"github.com/gonuts/commander"
	"github.com/pkg/errors"
)

var (
	allOut bool = true

	// processing options
	BeamSize          int
	AdvancePercentage float64
	MaxRounds         int
	Workers           int

	// file names
	treebankFile string
	paramsFile   string
	rulesFile    string
	input        string
	outPTB       string
	modelFile    string
	metricsFile  string

	// model store
	storePath string
	modelName string
	language  string
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f.Value.String() == "" {
			log.Printf("Required flag %s not set", f.Name)
			cmd.Usage()
			return errors.Errorf("missing required flag -%s", f.Name)
		}
	}
	return nil
}

func openStore() (*store.Store, error) {
	cfg := store.DefaultConfig(storePath)
	cfg.Logger = log.New(os.Stderr, "[store] ", log.LstdFlags)
	return store.Open(cfg)
}

// loadModel reads the model named by -model, or -name from the store at
// -store.
func loadModel() (*constituency.ParserModel, error) {
	if modelFile != "" {
		if !VerifyExists(modelFile) {
			return nil, errors.Errorf("model file %s not found", modelFile)
		}
		return constituency.ReadModelFile(modelFile)
	}
	if storePath == "" || modelName == "" {
		return nil, errors.New("either -model or both -store and -name are required")
	}
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	data, err := s.Get(modelName)
	if err != nil {
		return nil, errors.Wrapf(err, "loading model %s", modelName)
	}
	return constituency.ReadModel(bytes.NewReader(data))
}
