package perceptron

import (
	"fmt"
	"strconv"

	"github.com/njwilson/chalk/util/conf"

	"github.com/pkg/errors"
)

const (
	ALGORITHM = "PERCEPTRON"

	EVENTS_REPORT      = "Events"
	PREDICATES_REPORT  = "Predicates"
	OUTCOMES_REPORT    = "Outcomes"
	ACCURACY_REPORT    = "TrainingAccuracy"
	COMPLETED_REPORT   = "CompletedIterations"
	DROPPED_REPORT     = "DroppedEvents"
	DEFAULT_AVERAGED   = true
	DEFAULT_LOG_TRAINS = false
)

// Train indexes events and fits a Classifier. Recognized settings are
// Iterations, Cutoff and Averaged; the returned report echoes the
// settings along with statistics of the run.
func Train(events EventStream, settings map[string]string) (*Classifier, map[string]string, error) {
	if algorithm, exists := settings[conf.ALGORITHM_PARAM]; exists && algorithm != ALGORITHM {
		return nil, nil, errors.Errorf("unsupported training algorithm %q", algorithm)
	}
	iterations, err := conf.IntSetting(settings, conf.ITERATIONS_PARAM, conf.DEFAULT_ITERATIONS)
	if err != nil {
		return nil, nil, err
	}
	if iterations < 1 {
		return nil, nil, errors.Errorf("iterations must be positive, got %d", iterations)
	}
	cutoff, err := conf.IntSetting(settings, conf.CUTOFF_PARAM, conf.DEFAULT_CUTOFF)
	if err != nil {
		return nil, nil, err
	}
	averaged, err := conf.BoolSetting(settings, conf.AVERAGED_PARAM, DEFAULT_AVERAGED)
	if err != nil {
		return nil, nil, err
	}

	indexed, err := Index(events, cutoff)
	if err != nil {
		return nil, nil, err
	}
	if len(indexed.Instances) == 0 {
		return nil, nil, errors.Errorf("no training events survived cutoff %d (%d read)", cutoff, indexed.Events)
	}

	trainer := &LinearPerceptron{
		Iterations: iterations,
		Updater:    &TrivialStrategy{},
		Log:        DEFAULT_LOG_TRAINS,
	}
	if averaged {
		trainer.Updater = &AveragedStrategy{}
	}
	classifier := &Classifier{
		Outcomes:   indexed.Outcomes,
		Predicates: indexed.Predicates,
		Weights:    trainer.Train(indexed),
	}

	report := make(map[string]string, len(settings)+8)
	for k, v := range settings {
		report[k] = v
	}
	report[conf.ALGORITHM_PARAM] = ALGORITHM
	report[conf.ITERATIONS_PARAM] = strconv.Itoa(iterations)
	report[conf.CUTOFF_PARAM] = strconv.Itoa(cutoff)
	report[conf.AVERAGED_PARAM] = strconv.FormatBool(averaged)
	report[EVENTS_REPORT] = strconv.Itoa(indexed.Events)
	report[DROPPED_REPORT] = strconv.Itoa(indexed.Dropped)
	report[PREDICATES_REPORT] = strconv.Itoa(indexed.Predicates.Len())
	report[OUTCOMES_REPORT] = strconv.Itoa(indexed.Outcomes.Len())
	report[COMPLETED_REPORT] = strconv.Itoa(trainer.Completed)
	report[ACCURACY_REPORT] = fmt.Sprintf("%.6f", trainer.Accuracy)
	return classifier, report, nil
}
