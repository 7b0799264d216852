package perceptron

import (
	"io"
	"log"

	"github.com/njwilson/chalk/util"

	"github.com/pkg/errors"
)

const (
	APPROX_PREDICATES = 1 << 12
	APPROX_OUTCOMES   = 64
)

type Indexed struct {
	Outcomes, Predicates *util.EnumSet
	Instances            []Instance
	Events, Dropped      int
}

// Index reads events to exhaustion and keeps the predicates seen in at
// least cutoff events. Events left without predicates are dropped.
func Index(events EventStream, cutoff int) (*Indexed, error) {
	var (
		all    []*Event
		counts = make(map[string]int, APPROX_PREDICATES)
	)
	outcomes := util.NewEnumSet(APPROX_OUTCOMES)
	for {
		event, err := events.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading event %d", len(all))
		}
		all = append(all, event)
		outcomes.Add(event.Outcome)
		seen := make(map[string]bool, len(event.Context))
		for _, pred := range event.Context {
			if !seen[pred] {
				counts[pred]++
				seen[pred] = true
			}
		}
	}

	indexed := &Indexed{
		Outcomes:   outcomes,
		Predicates: util.NewEnumSet(len(counts)),
		Instances:  make([]Instance, 0, len(all)),
		Events:     len(all),
	}
	for _, event := range all {
		inst := Instance{Predicates: make([]int, 0, len(event.Context))}
		inst.Outcome, _ = outcomes.IndexOf(event.Outcome)
		for _, pred := range event.Context {
			if counts[pred] < cutoff {
				continue
			}
			i, _ := indexed.Predicates.Add(pred)
			inst.Predicates = append(inst.Predicates, i)
		}
		if len(inst.Predicates) == 0 {
			indexed.Dropped++
			continue
		}
		indexed.Instances = append(indexed.Instances, inst)
	}
	if indexed.Dropped > 0 {
		log.Println("Dropped", indexed.Dropped, "events with no predicates above cutoff", cutoff)
	}
	outcomes.Frozen = true
	indexed.Predicates.Frozen = true
	return indexed, nil
}
