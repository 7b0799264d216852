package constituency

import (
	"log"
	"strconv"

	"github.com/njwilson/chalk/alg/perceptron"
	"github.com/njwilson/chalk/nlp/tagger"
	"github.com/njwilson/chalk/nlp/types"
	"github.com/njwilson/chalk/util/conf"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	MODEL_ID_KEY    = "model.id"
	LANGUAGE_KEY    = "language"
	PARSER_TYPE_KEY = "parser.type"
)

var TrainOut bool = true

// MergeReportIntoManifest copies every report entry into manifest under
// namespace.
func MergeReportIntoManifest(manifest, report map[string]string, namespace string) {
	for k, v := range report {
		manifest[namespace+"."+k] = v
	}
}

// DefaultTrainingParameters returns settings for every trained component.
func DefaultTrainingParameters() *conf.TrainingParameters {
	params := conf.DefaultTrainingParameters(BUILD_COMPONENT, CHECK_COMPONENT, TAGGER_COMPONENT, CHUNKER_COMPONENT)
	params.Put(DICT_COMPONENT, conf.CUTOFF_PARAM, strconv.Itoa(DEFAULT_DICT_CUTOFF))
	return params
}

// Train builds a ParserModel from a restartable stream of gold parses in
// five passes: the dictionary, the build model, the tagger, the chunker
// and the check model. The stream is closed when training fails.
func Train(language string, samples ParseStream, rules types.HeadRules, params *conf.TrainingParameters) (*ParserModel, error) {
	model, err := train(language, samples, rules, params)
	if err != nil {
		closeQuietly(samples)
		return nil, err
	}
	return model, nil
}

func train(language string, samples ParseStream, rules types.HeadRules, params *conf.TrainingParameters) (*ParserModel, error) {
	if params == nil {
		params = DefaultTrainingParameters()
	}
	manifest := make(map[string]string)
	manifest[MODEL_ID_KEY] = uuid.New().String()
	manifest[LANGUAGE_KEY] = language
	manifest[PARSER_TYPE_KEY] = CHUNKING
	for k, v := range params.Settings(MANIFEST_COMPONENT) {
		manifest[k] = v
	}

	reset := func(stage string) error {
		if TrainOut {
			log.SetPrefix("[" + stage + "] ")
		}
		return errors.Wrapf(samples.Reset(), "resetting samples for %s", stage)
	}
	defer log.SetPrefix("")

	if TrainOut {
		log.SetPrefix("[" + DICT_COMPONENT + "] ")
		log.Println("Building dictionary")
	}
	dictCutoff, err := conf.IntSetting(params.Settings(DICT_COMPONENT), conf.CUTOFF_PARAM, DEFAULT_DICT_CUTOFF)
	if err != nil {
		return nil, errors.Wrap(err, DICT_COMPONENT)
	}
	dict, err := BuildDictionary(samples, rules, dictCutoff)
	if err != nil {
		return nil, errors.Wrap(err, "building dictionary")
	}
	if TrainOut {
		log.Println("Dictionary has", dict.Len(), "entries")
	}

	if err := reset(BUILD_COMPONENT); err != nil {
		return nil, err
	}
	buildModel, report, err := perceptron.Train(NewParserEventStream(samples, rules, BUILD, dict), params.Settings(BUILD_COMPONENT))
	if err != nil {
		return nil, errors.Wrap(err, "training build model")
	}
	MergeReportIntoManifest(manifest, report, BUILD_COMPONENT)
	logReport(report)

	if err := reset(TAGGER_COMPONENT); err != nil {
		return nil, err
	}
	taggerModel, report, err := tagger.TrainPOS(&posSampleStream{samples}, params.Settings(TAGGER_COMPONENT))
	if err != nil {
		return nil, errors.Wrap(err, "training tagger")
	}
	MergeReportIntoManifest(manifest, report, TAGGER_COMPONENT)
	logReport(report)

	if err := reset(CHUNKER_COMPONENT); err != nil {
		return nil, err
	}
	chunkerModel, report, err := tagger.TrainChunker(&chunkSampleStream{parses: samples}, params.Settings(CHUNKER_COMPONENT))
	if err != nil {
		return nil, errors.Wrap(err, "training chunker")
	}
	MergeReportIntoManifest(manifest, report, CHUNKER_COMPONENT)
	logReport(report)

	if err := reset(CHECK_COMPONENT); err != nil {
		return nil, err
	}
	checkModel, report, err := perceptron.Train(NewParserEventStream(samples, rules, CHECK, dict), params.Settings(CHECK_COMPONENT))
	if err != nil {
		return nil, errors.Wrap(err, "training check model")
	}
	MergeReportIntoManifest(manifest, report, CHECK_COMPONENT)
	logReport(report)

	return &ParserModel{
		Language:     language,
		Type:         CHUNKING,
		BuildModel:   buildModel,
		CheckModel:   checkModel,
		TaggerModel:  taggerModel,
		ChunkerModel: chunkerModel,
		HeadRules:    rules,
		Dictionary:   dict,
		Manifest:     manifest,
	}, nil
}

func logReport(report map[string]string) {
	if !TrainOut {
		return
	}
	log.Println("Events", report[perceptron.EVENTS_REPORT], "predicates", report[perceptron.PREDICATES_REPORT],
		"outcomes", report[perceptron.OUTCOMES_REPORT], "accuracy", report[perceptron.ACCURACY_REPORT])
}
