package conf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("# comment\nfirst\n\n  \nsecond\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, c.Values)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/file.conf")
	assert.Error(t, err)
}

const paramsYAML = `
build:
  Iterations: 20
  Cutoff: 2
check:
  Iterations: 10
  Averaged: false
manifest:
  corpus: wsj-02-21
tagger:
`

func TestReadTrainingParameters(t *testing.T) {
	p, err := ReadTrainingParameters(strings.NewReader(paramsYAML))
	require.NoError(t, err)

	it, err := p.Iterations("build")
	require.NoError(t, err)
	assert.Equal(t, 20, it)
	cutoff, err := p.Cutoff("build")
	require.NoError(t, err)
	assert.Equal(t, 2, cutoff)

	cutoff, err = p.Cutoff("check")
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_CUTOFF, cutoff)

	averaged, err := BoolSetting(p.Settings("check"), AVERAGED_PARAM, true)
	require.NoError(t, err)
	assert.False(t, averaged)

	assert.Equal(t, map[string]string{"corpus": "wsj-02-21"}, p.Settings("manifest"))
	assert.Empty(t, p.Settings("tagger"))
	assert.Contains(t, p.Components(), "tagger")
}

func TestReadTrainingParametersRejectsNested(t *testing.T) {
	_, err := ReadTrainingParameters(strings.NewReader("build:\n  Iterations:\n    a: 1\n"))
	assert.Error(t, err)
}

func TestSettingsAreCopies(t *testing.T) {
	p := DefaultTrainingParameters("build")
	s := p.Settings("build")
	s[ITERATIONS_PARAM] = "1"
	it, err := p.Iterations("build")
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_ITERATIONS, it)
}

func TestIntSettingInvalid(t *testing.T) {
	_, err := IntSetting(map[string]string{"Iterations": "many"}, ITERATIONS_PARAM, 1)
	assert.Error(t, err)
}
