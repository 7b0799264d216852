package app

import (
	"log"
	"sort"

	"github.com/njwilson/chalk/eval"
	"github.com/njwilson/chalk/nlp/format/ptb"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
)

var (
	inputGold  string
	showErrors bool
)

func EvalConfigOut() {
	log.Println("Configuration")
	log.Printf("Parsed result file:\t%s", input)
	log.Printf("Gold file:\t\t%s", inputGold)
	log.Println()
}

func EvalParses(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"p", "g"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if !VerifyExists(input) || !VerifyExists(inputGold) {
		return errors.New("missing evaluation input")
	}
	if allOut {
		EvalConfigOut()
	}
	test, err := ptb.ReadFile(input)
	if err != nil {
		return err
	}
	gold, err := ptb.ReadFile(inputGold)
	if err != nil {
		return err
	}
	log.Println("Read", len(test), "parses from", input)
	log.Println("Read", len(gold), "gold trees from", inputGold)
	for i, g := range gold {
		if g == nil {
			return errors.Errorf("gold tree %d is empty", i)
		}
	}

	total, err := eval.Corpus(test, gold)
	if err != nil {
		return err
	}
	log.Printf("Bracket P/R/F1:\t%.4f %.4f %.4f", total.Precision(), total.Recall(), total.F1())
	log.Printf("Tagging accuracy:\t%.4f", total.Other.Accuracy())
	log.Printf("Exact match:\t%d (%.4f) of %d", total.Exact, total.ExactMatch(), total.Population)
	log.Printf("Failed parses:\t%d", total.Failed)
	if showErrors {
		byType := total.Errors().ByType()
		classes := make([]string, 0, len(byType))
		for class := range byType {
			classes = append(classes, class)
		}
		sort.Slice(classes, func(i, j int) bool {
			if byType[classes[i]] != byType[classes[j]] {
				return byType[classes[i]] > byType[classes[j]]
			}
			return classes[i] < classes[j]
		})
		log.Println("Errors by type")
		for _, class := range classes {
			log.Printf("\t%s\t%d", class, byType[class])
		}
	}
	return nil
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       EvalParses,
		UsageLine: "eval <file options> [arguments]",
		Short:     "score parses against gold trees",
		Long: `
score parser output against gold trees with labeled bracket precision,
recall and F1 (TOP and POS brackets excluded) and tagging accuracy

	$ ./chalk eval -p <ptb file> -g <ptb file> [options]

Empty trees, (), in the parsed file count as failed parses.

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "p", "", "Parse result PTB file")
	cmd.Flag.StringVar(&inputGold, "g", "", "Gold PTB file")
	cmd.Flag.BoolVar(&showErrors, "errors", false, "Show bracket errors by type")
	return cmd
}
