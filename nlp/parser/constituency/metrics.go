package constituency

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FAILURE_EMPTY     = "empty"
	FAILURE_EXHAUSTED = "exhausted"
	FAILURE_OTHER     = "other"
)

// Metrics instruments a Parser. A nil *Metrics records nothing.
type Metrics struct {
	Parses       prometheus.Counter
	Failures     *prometheus.CounterVec
	Rounds       prometheus.Histogram
	Duration     prometheus.Histogram
	DeadBranches prometheus.Counter
}

// NewMetrics registers the parser metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Parses: factory.NewCounter(prometheus.CounterOpts{
			Name: "chalk_parses_total",
			Help: "Sentences parsed",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chalk_parse_failures_total",
			Help: "Sentences that could not be parsed, by reason",
		}, []string{"reason"}),
		Rounds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chalk_search_rounds",
			Help:    "Search rounds per sentence",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chalk_parse_duration_seconds",
			Help:    "Time spent parsing a sentence",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		DeadBranches: factory.NewCounter(prometheus.CounterOpts{
			Name: "chalk_dead_branches_total",
			Help: "Partial parses that produced no successors",
		}),
	}
}

func (m *Metrics) observe(start time.Time, rounds int, err error) {
	if m == nil {
		return
	}
	m.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		reason := FAILURE_OTHER
		switch {
		case errors.Is(err, ErrEmptySentence):
			reason = FAILURE_EMPTY
		case errors.Is(err, ErrBeamExhausted):
			reason = FAILURE_EXHAUSTED
		}
		m.Failures.WithLabelValues(reason).Inc()
		return
	}
	m.Parses.Inc()
	m.Rounds.Observe(float64(rounds))
}

func (m *Metrics) deadBranch() {
	if m == nil {
		return
	}
	m.DeadBranches.Inc()
}
