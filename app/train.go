package app

import (
	"log"
	"path/filepath"
	"time"

	"github.com/njwilson/chalk/nlp/format/ptb"
	"github.com/njwilson/chalk/nlp/parser/constituency"
	"github.com/njwilson/chalk/nlp/parser/constituency/headrules"
	"github.com/njwilson/chalk/util"
	"github.com/njwilson/chalk/util/conf"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
)

const (
	TREEBANK_KEY     = "treebank"
	TREEBANK_MD5_KEY = "treebank.md5"
)

func TrainConfigOut() {
	log.Println("Configuration")
	log.Printf("Treebank:\t%s", treebankFile)
	log.Printf("Parameters:\t%s", paramsFile)
	log.Printf("Head rules:\t%s", rulesFile)
	log.Printf("Language:\t%s", language)
	log.Println()
	log.Printf("Model:    \t%s", modelFile)
	log.Printf("Store:    \t%s", storePath)
	log.Printf("Name:     \t%s", modelName)
	log.Println()
}

func TrainParser(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"treebank"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if modelFile == "" && (storePath == "" || modelName == "") {
		return errors.New("either -model or both -store and -name are required")
	}
	if !VerifyExists(treebankFile) {
		return errors.Errorf("treebank %s not found", treebankFile)
	}
	TrainConfigOut()

	params := constituency.DefaultTrainingParameters()
	if paramsFile != "" {
		var err error
		if params, err = conf.ReadTrainingParametersFile(paramsFile); err != nil {
			return err
		}
	}
	rules := headrules.English()
	if rulesFile != "" {
		var err error
		if rules, err = headrules.ReadFile(rulesFile); err != nil {
			return err
		}
	}
	checksum, err := util.FileDigest(treebankFile)
	if err != nil {
		return errors.Wrap(err, "hashing treebank")
	}
	params.Put(constituency.MANIFEST_COMPONENT, TREEBANK_KEY, filepath.Base(treebankFile))
	params.Put(constituency.MANIFEST_COMPONENT, TREEBANK_MD5_KEY, checksum)

	samples, err := ptb.OpenStream(treebankFile)
	if err != nil {
		return err
	}
	startTime := time.Now()
	model, err := constituency.Train(language, samples, rules, params)
	if err != nil {
		return errors.Wrap(err, "training failed")
	}
	closeLogged(samples, treebankFile)
	if allOut {
		log.Println("TRAIN Total Time:", time.Since(startTime))
		log.Println("Model ID", model.Manifest[constituency.MODEL_ID_KEY])
	}

	if modelFile != "" {
		log.Println("Writing model to", modelFile)
		if err := model.WriteFile(modelFile); err != nil {
			return err
		}
	}
	if storePath != "" && modelName != "" {
		log.Println("Storing model as", modelName, "in", storePath)
		data, err := model.Bytes()
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Put(modelName, data, model.Manifest); err != nil {
			return err
		}
	}
	return nil
}

func TrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       TrainParser,
		UsageLine: "train <file options> [arguments]",
		Short:     "train a constituency parser model from a treebank",
		Long: `
train a constituency parser model from a Penn Treebank bracketed file

	$ ./chalk train -treebank <ptb file> -model <model file> [options]
	$ ./chalk train -treebank <ptb file> -store <dir> -name <model name> [options]

The optional parameters file is YAML with a section per component
(build, check, tagger, chunker, dict, manifest), e.g.

	build:
	  Iterations: 100
	  Cutoff: 5
	dict:
	  Cutoff: 5

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&treebankFile, "treebank", "", "Penn Treebank bracketed training file")
	cmd.Flag.StringVar(&paramsFile, "params", "", "YAML training parameters")
	cmd.Flag.StringVar(&rulesFile, "rules", "", "head rules file (default built-in English rules)")
	cmd.Flag.StringVar(&language, "lang", "en", "language code recorded in the model")
	cmd.Flag.StringVar(&modelFile, "model", "", "output model file")
	cmd.Flag.StringVar(&storePath, "store", "", "model store directory")
	cmd.Flag.StringVar(&modelName, "name", "", "model name in the store")
	return cmd
}
