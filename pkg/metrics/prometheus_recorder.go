package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-drift/carousel/pkg/carousel"
)

// Namespace prefixes every metric name.
const Namespace = "carousel"

// PrometheusRecorder implements carousel.Metrics using Prometheus counters.
type PrometheusRecorder struct {
	transitions  *prom.CounterVec
	commits      *prom.CounterVec
	ticks        prom.Counter
	interactions *prom.CounterVec
}

var _ carousel.Metrics = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the recorder and registers its metrics
// with reg. A nil reg gets a fresh registry. Registering twice on the same
// registry panics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "transitions_requested_total",
			Help:      "Index changes handed to the transition coordinator",
		}, []string{"mode"}),
		commits: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "commits_total",
			Help:      "Committed index changes",
		}, []string{"mode"}),
		ticks: prom.NewCounter(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "autoplay_ticks_total",
			Help:      "Autoplay advances",
		}),
		interactions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "interactions_total",
			Help:      "Accepted user triggers by kind",
		}, []string{"trigger"}),
	}
	reg.MustRegister(pr.transitions, pr.commits, pr.ticks, pr.interactions)
	return pr
}

func (p *PrometheusRecorder) TransitionRequested(mode carousel.TransitionMode) {
	if p == nil {
		return
	}
	p.transitions.WithLabelValues(mode.String()).Inc()
}

func (p *PrometheusRecorder) Committed(mode carousel.TransitionMode) {
	if p == nil {
		return
	}
	p.commits.WithLabelValues(mode.String()).Inc()
}

func (p *PrometheusRecorder) AutoplayTick() {
	if p == nil {
		return
	}
	p.ticks.Inc()
}

func (p *PrometheusRecorder) Interaction(trigger carousel.Trigger) {
	if p == nil {
		return
	}
	p.interactions.WithLabelValues(string(trigger)).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics in reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
