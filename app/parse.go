package app

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/njwilson/chalk/nlp/format/ptb"
	"github.com/njwilson/chalk/nlp/format/raw"
	"github.com/njwilson/chalk/nlp/format/taggedsentence"
	"github.com/njwilson/chalk/nlp/parser/constituency"
	"github.com/njwilson/chalk/nlp/types"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	FORMAT_RAW    = "raw"
	FORMAT_LINES  = "lines"
	FORMAT_TAGGED = "tagged"
)

var inputFormat string

func ParseConfigOut() {
	log.Println("Configuration")
	log.Printf("Beam:             \t%d", BeamSize)
	log.Printf("Advance percentage:\t%v", AdvancePercentage)
	log.Printf("Max rounds:       \t%d", MaxRounds)
	log.Printf("Workers:          \t%d", Workers)
	log.Println()
	log.Printf("Model:    \t%s", modelFile)
	log.Printf("Store:    \t%s", storePath)
	log.Printf("Name:     \t%s", modelName)
	log.Printf("Input:    \t%s (%s)", input, inputFormat)
	log.Printf("Output:   \t%s", outPTB)
	log.Printf("Metrics:  \t%s", metricsFile)
	log.Println()
}

func ParseSentences(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"in"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if !VerifyExists(input) {
		return errors.Errorf("input %s not found", input)
	}
	ParseConfigOut()

	model, err := loadModel()
	if err != nil {
		return err
	}
	parser, err := constituency.NewParser(model)
	if err != nil {
		return err
	}
	parser.BeamSize = BeamSize
	parser.AdvancePercentage = AdvancePercentage
	parser.MaxRounds = MaxRounds
	var reg *prometheus.Registry
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		parser.Metrics = constituency.NewMetrics(reg)
	}

	startTime := time.Now()
	var parsed []*types.Parse
	switch inputFormat {
	case FORMAT_RAW, FORMAT_LINES:
		read := raw.ReadFile
		if inputFormat == FORMAT_LINES {
			read = raw.ReadLinesFile
		}
		sents, err := read(input, 0)
		if err != nil {
			return err
		}
		log.Println("Read", len(sents), "sentences")
		parsed, err = parseAll(parser, sents)
		if err != nil {
			return err
		}
	case FORMAT_TAGGED:
		sents, err := taggedsentence.ReadFile(input)
		if err != nil {
			return err
		}
		log.Println("Read", len(sents), "tagged sentences")
		parsed = parseTagged(parser, sents)
	default:
		return errors.Errorf("unknown input format %q", inputFormat)
	}
	if allOut {
		log.Println("PARSE Total Time:", time.Since(startTime))
	}

	var writer io.Writer = os.Stdout
	if outPTB != "" {
		file, err := os.Create(outPTB)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}
	if err := ptb.Write(writer, parsed); err != nil {
		return errors.Wrap(err, "writing parses")
	}
	if metricsFile != "" {
		log.Println("Writing metrics to", metricsFile)
		return prometheus.WriteToTextfile(metricsFile, reg)
	}
	return nil
}

func parseAll(parser *constituency.Parser, sents []types.BasicSentence) ([]*types.Parse, error) {
	sentences := make([][]string, len(sents))
	for i, sent := range sents {
		sentences[i] = sent.Tokens()
	}
	results, err := parser.ParseAll(context.Background(), sentences, Workers)
	if err != nil {
		return nil, err
	}
	parsed := make([]*types.Parse, len(results))
	for i, res := range results {
		if res.Err != nil {
			log.Println("Failed parsing sentence", i, res.Err)
			continue
		}
		parsed[i] = res.Parse
	}
	return parsed, nil
}

func parseTagged(parser *constituency.Parser, sents []types.BasicTaggedSentence) []*types.Parse {
	parsed := make([]*types.Parse, len(sents))
	for i, sent := range sents {
		parse, err := parser.ParseTagged(sent)
		if err != nil {
			log.Println("Failed parsing sentence", i, err)
			continue
		}
		parsed[i] = parse
	}
	return parsed
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ParseSentences,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parse tokenized sentences into constituency trees",
		Long: `
parse tokenized sentences into Penn Treebank bracketed trees

	$ ./chalk parse -model <model file> -in <input file> [options]
	$ ./chalk parse -store <dir> -name <model name> -in <input file> [options]

Input formats: raw (a token per line, sentences separated by an empty
line), lines (a sentence per line) and tagged (word/TAG tokens, a
sentence per line). A sentence that cannot be parsed is written as ().

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "model", "", "model file")
	cmd.Flag.StringVar(&storePath, "store", "", "model store directory")
	cmd.Flag.StringVar(&modelName, "name", "", "model name in the store")
	cmd.Flag.StringVar(&input, "in", "", "input file")
	cmd.Flag.StringVar(&inputFormat, "format", FORMAT_RAW, "input format: raw, lines or tagged")
	cmd.Flag.StringVar(&outPTB, "out", "", "output file (default stdout)")
	cmd.Flag.StringVar(&metricsFile, "metrics", "", "write Prometheus metrics to this file")
	cmd.Flag.IntVar(&BeamSize, "beam", constituency.DEFAULT_BEAM_SIZE, "beam size")
	cmd.Flag.Float64Var(&AdvancePercentage, "advance", constituency.DEFAULT_ADVANCE_PERCENTAGE, "probability mass of build outcomes explored per node")
	cmd.Flag.IntVar(&MaxRounds, "rounds", 0, "maximum search rounds per sentence; 0 = 4 per token")
	cmd.Flag.IntVar(&Workers, "workers", 0, "sentences parsed concurrently; 0 = unlimited")
	return cmd
}
