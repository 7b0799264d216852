// Package headrules selects the head child of a constituent from a table
// of per-type search directions and tag priorities.
package headrules

import (
	"encoding/gob"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/njwilson/chalk/nlp/types"
	"github.com/njwilson/chalk/util/conf"

	"github.com/pkg/errors"
)

func init() {
	gob.Register(&Table{})
}

var DEFAULT_PUNCTUATION = []string{".", ",", "``", "''", ":"}

type Rule struct {
	LeftToRight bool
	Tags        []string
}

// Table implements types.HeadRules. Exported fields keep it gob friendly.
type Table struct {
	Rules       map[string]Rule
	Punctuation map[string]bool
}

var _ types.HeadRules = &Table{}

func NewTable(punctuation []string) *Table {
	t := &Table{
		Rules:       make(map[string]Rule),
		Punctuation: make(map[string]bool, len(punctuation)),
	}
	for _, tag := range punctuation {
		t.Punctuation[tag] = true
	}
	return t
}

// Read parses rule lines of the form
//
//	<count> <type> <direction> <tag>...
//
// where count is the number of fields after it and direction is 1 for a
// left-to-right search.
func Read(reader io.Reader) (*Table, error) {
	c, err := conf.Read(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading head rules")
	}
	t := NewTable(DEFAULT_PUNCTUATION)
	for lineNum, line := range c.Values {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errors.Errorf("head rule %d: expected at least 3 fields, got %d", lineNum+1, len(fields))
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "head rule %d", lineNum+1)
		}
		if count != len(fields)-1 {
			return nil, errors.Errorf("head rule %d: declared %d fields, got %d", lineNum+1, count, len(fields)-1)
		}
		switch fields[2] {
		case "0", "1":
		default:
			return nil, errors.Errorf("head rule %d: unknown direction %q", lineNum+1, fields[2])
		}
		t.Rules[fields[1]] = Rule{LeftToRight: fields[2] == "1", Tags: fields[3:]}
	}
	return t, nil
}

func ReadFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// English returns the built-in Collins style rules for the Penn Treebank.
func English() *Table {
	t, err := Read(strings.NewReader(ENGLISH_RULES))
	if err != nil {
		panic("Invalid built-in head rules: " + err.Error())
	}
	return t
}

func (t *Table) PunctuationTags() map[string]bool {
	return t.Punctuation
}

func (t *Table) HeadIndex(children []*types.Parse, typ string) int {
	if len(children) == 0 || children[0].IsToken() {
		return -1
	}
	if typ == "NP" || typ == "NX" {
		return nounPhraseHead(children)
	}
	rule, exists := t.Rules[typ]
	if !exists {
		return len(children) - 1
	}
	for _, tag := range rule.Tags {
		if rule.LeftToRight {
			for i := 0; i < len(children); i++ {
				if children[i].Type == tag {
					return i
				}
			}
		} else {
			for i := len(children) - 1; i >= 0; i-- {
				if children[i].Type == tag {
					return i
				}
			}
		}
	}
	if rule.LeftToRight {
		return 0
	}
	return len(children) - 1
}

var (
	npRightTags = []string{"NN", "NNP", "NNPS", "NNS", "NX", "POS", "JJR"}
	npLeftTags  = []string{"NP"}
	npLastTags  = []string{"$", "ADJP", "PRN"}
	npFinalTags = []string{"CD"}
	npAdjTags   = []string{"JJ", "JJS", "RB", "QP"}
)

func nounPhraseHead(children []*types.Parse) int {
	last := len(children) - 1
	if children[last].Type == "POS" {
		return last
	}
	if i := searchRight(children, npRightTags); i >= 0 {
		return i
	}
	if i := searchLeft(children, npLeftTags); i >= 0 {
		return i
	}
	if i := searchRight(children, npLastTags); i >= 0 {
		return i
	}
	if i := searchRight(children, npFinalTags); i >= 0 {
		return i
	}
	if i := searchRight(children, npAdjTags); i >= 0 {
		return i
	}
	return last
}

func searchRight(children []*types.Parse, tags []string) int {
	for i := len(children) - 1; i >= 0; i-- {
		for _, tag := range tags {
			if children[i].Type == tag {
				return i
			}
		}
	}
	return -1
}

func searchLeft(children []*types.Parse, tags []string) int {
	for i := 0; i < len(children); i++ {
		for _, tag := range tags {
			if children[i].Type == tag {
				return i
			}
		}
	}
	return -1
}

const ENGLISH_RULES = `# count type direction(1=left to right) tags
20 ADJP 1 NNS QP NN $ ADVP JJ VBN VBG ADJP JJR NP JJS DT FW RBR RBS SBAR RB
15 ADVP 0 RB RBR RBS FW ADVP TO CD JJR JJ IN NP JJS NN
5 CONJP 0 CC RB IN
2 FRAG 0
2 INTJ 1
4 LST 0 LS :
19 NAC 1 NN NNS NNP NNPS NP NAC EX $ CD QP PRP VBG JJ JJS JJR ADJP FW
8 PP 0 IN TO VBG VBN RP FW
2 PRN 1
3 PRT 0 RP
14 QP 1 $ IN NNS NN JJ RB DT CD NCD QP JJR JJS
7 RRC 0 VP NP ADVP ADJP PP
10 S 1 TO IN VP S SBAR ADJP UCP NP
13 SBAR 1 WHNP WHPP WHADVP WHADJP IN DT S SQ SINV SBAR FRAG
7 SBARQ 1 SQ S SINV SBARQ FRAG
12 SINV 1 VBZ VBD VBP VB MD VP S SINV ADJP NP
9 SQ 1 VBZ VBD VBP VB MD VP SQ
2 UCP 0
15 VP 1 TO VBD VBN MD VBZ VB VBG VBP VP ADJP NN NNS NP
6 WHADJP 1 CC WRB JJ ADJP
4 WHADVP 0 CC WRB
8 WHNP 1 WDT WP WP$ WHADJP WHPP WHNP
5 WHPP 0 IN TO FW
2 X 0
2 TOP 1
`
