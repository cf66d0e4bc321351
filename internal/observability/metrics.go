package observability

import (
	"net/http"

	"instance-scheduler/internal/core/toggler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records toggle outcomes in its own registry.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ toggler.Recorder = (*Metrics)(nil)

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "instance_scheduler",
			Name:      "invocations_total",
			Help:      "Toggle invocations by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "instance_scheduler",
			Name:      "invocation_duration_seconds",
			Help:      "Time spent handling a toggle invocation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
	m.registry.MustRegister(m.invocations, m.duration)
	return m
}

// Observe implements toggler.Recorder. Unknown actions share one label value
// so arbitrary payloads cannot grow the series count.
func (m *Metrics) Observe(action toggler.Action, outcome string, seconds float64) {
	label := string(action)
	if !action.Valid() {
		label = "invalid"
	}
	m.invocations.WithLabelValues(label, outcome).Inc()
	m.duration.WithLabelValues(label).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
