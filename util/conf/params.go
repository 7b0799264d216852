package conf

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	ALGORITHM_PARAM  = "Algorithm"
	ITERATIONS_PARAM = "Iterations"
	CUTOFF_PARAM     = "Cutoff"
	AVERAGED_PARAM   = "Averaged"

	DEFAULT_ITERATIONS = 100
	DEFAULT_CUTOFF     = 5
)

// TrainingParameters holds per-component string settings, e.g.
//
//	build:
//	  Iterations: 100
//	  Cutoff: 5
//	check:
//	  Iterations: 50
type TrainingParameters struct {
	components map[string]map[string]string
}

func NewTrainingParameters() *TrainingParameters {
	return &TrainingParameters{make(map[string]map[string]string)}
}

// DefaultTrainingParameters sets the default iterations and cutoff for
// each of the given components.
func DefaultTrainingParameters(components ...string) *TrainingParameters {
	t := NewTrainingParameters()
	for _, c := range components {
		t.Put(c, ITERATIONS_PARAM, strconv.Itoa(DEFAULT_ITERATIONS))
		t.Put(c, CUTOFF_PARAM, strconv.Itoa(DEFAULT_CUTOFF))
	}
	return t
}

func (t *TrainingParameters) Put(component, key, value string) {
	settings, exists := t.components[component]
	if !exists {
		settings = make(map[string]string)
		t.components[component] = settings
	}
	settings[key] = value
}

// Settings returns a copy of a component's settings, never nil.
func (t *TrainingParameters) Settings(component string) map[string]string {
	retval := make(map[string]string, len(t.components[component]))
	for k, v := range t.components[component] {
		retval[k] = v
	}
	return retval
}

func (t *TrainingParameters) Components() []string {
	retval := make([]string, 0, len(t.components))
	for c := range t.components {
		retval = append(retval, c)
	}
	return retval
}

func (t *TrainingParameters) Iterations(component string) (int, error) {
	return IntSetting(t.components[component], ITERATIONS_PARAM, DEFAULT_ITERATIONS)
}

func (t *TrainingParameters) Cutoff(component string) (int, error) {
	return IntSetting(t.components[component], CUTOFF_PARAM, DEFAULT_CUTOFF)
}

// IntSetting parses settings[key], returning def when the key is absent.
func IntSetting(settings map[string]string, key string, def int) (int, error) {
	value, exists := settings[key]
	if !exists {
		return def, nil
	}
	retval, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(err, "setting %s", key)
	}
	return retval, nil
}

func BoolSetting(settings map[string]string, key string, def bool) (bool, error) {
	value, exists := settings[key]
	if !exists {
		return def, nil
	}
	retval, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, errors.Wrapf(err, "setting %s", key)
	}
	return retval, nil
}

// ReadTrainingParameters decodes a YAML mapping of component name to a
// flat mapping of scalar settings.
func ReadTrainingParameters(reader io.Reader) (*TrainingParameters, error) {
	var raw map[string]map[string]interface{}
	if err := yaml.NewDecoder(reader).Decode(&raw); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding training parameters")
	}
	t := NewTrainingParameters()
	for component, settings := range raw {
		if settings == nil {
			t.components[component] = make(map[string]string)
		}
		for key, value := range settings {
			switch value.(type) {
			case map[string]interface{}, []interface{}:
				return nil, errors.Errorf("setting %s.%s is not a scalar", component, key)
			}
			t.Put(component, key, fmt.Sprint(value))
		}
	}
	return t, nil
}

func ReadTrainingParametersFile(filename string) (*TrainingParameters, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadTrainingParameters(file)
}
