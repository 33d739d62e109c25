package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"samvidhan/internal/answer"
)

// Recorder exports answer outcomes and provider latency.
type Recorder struct {
	answers  *prometheus.CounterVec
	provider prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "samvidhan_answers_total",
			Help: "Total questions handled by outcome",
		}, []string{"outcome"}),
		provider: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "samvidhan_provider_duration_seconds",
			Help:    "Time spent waiting for the text-generation provider",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
	}

	// Pre-create every outcome so dashboards see zeros before traffic.
	for _, o := range []answer.Outcome{
		answer.OutcomeAnswered,
		answer.OutcomeRejected,
		answer.OutcomeEmpty,
		answer.OutcomeError,
	} {
		r.answers.WithLabelValues(string(o))
	}

	reg.MustRegister(r.answers, r.provider)
	return r
}

// Observe records one handled question. Rejected questions never reach the
// provider, so they add no latency sample.
func (r *Recorder) Observe(res answer.Result) {
	r.answers.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome.Accepted() {
		r.provider.Observe(res.Duration.Seconds())
	}
}
