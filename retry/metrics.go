package retry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts attempts per operation.
type Metrics struct {
	attempts  *prometheus.CounterVec
	failures  *prometheus.CounterVec
	exhausted *prometheus.CounterVec
}

// NewMetrics creates the retry counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ophistory",
			Subsystem: "retry",
			Name:      "attempts_total",
			Help:      "Total number of remote call attempts",
		}, []string{"operation"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ophistory",
			Subsystem: "retry",
			Name:      "failures_total",
			Help:      "Total number of failed remote call attempts",
		}, []string{"operation"}),
		exhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ophistory",
			Subsystem: "retry",
			Name:      "exhausted_total",
			Help:      "Total number of calls that failed on every attempt",
		}, []string{"operation"}),
	}
}

func (m *Metrics) Attempts(op string) prometheus.Counter {
	return m.attempts.WithLabelValues(op)
}

func (m *Metrics) Failures(op string) prometheus.Counter {
	return m.failures.WithLabelValues(op)
}

func (m *Metrics) Exhausted(op string) prometheus.Counter {
	return m.exhausted.WithLabelValues(op)
}
