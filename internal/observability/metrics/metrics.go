// Package metrics exposes client events as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openroberta/oraclient/internal/domain"
)

const metricPrefix = "oraclient_"

var allStates = []domain.SessionState{
	domain.StateUnregistered,
	domain.StateRegistering,
	domain.StatePolling,
	domain.StateDownloading,
	domain.StateAborted,
}

// Recorder implements the client event handler on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	sessionState       *prometheus.GaugeVec
	transitionsTotal   *prometheus.CounterVec
	directivesTotal    *prometheus.CounterVec
	connectivityErrors *prometheus.CounterVec
	firmwareSyncs      *prometheus.CounterVec
}

// New constructs and registers the client metrics together with the Go and
// process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sessionState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "session_state",
				Help: "Current session state (1 for the active state)",
			},
			[]string{"state"},
		),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "state_transitions_total",
				Help: "Total session state transitions by target state",
			},
			[]string{"to"},
		),
		directivesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "directives_total",
				Help: "Total server directives received by kind",
			},
			[]string{"directive"},
		),
		connectivityErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "connectivity_errors_total",
				Help: "Total failed exchanges by endpoint",
			},
			[]string{"endpoint"},
		),
		firmwareSyncs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "firmware_syncs_total",
				Help: "Total firmware sync passes by result",
			},
			[]string{"result"},
		),
	}
	r.registry.MustRegister(
		r.sessionState,
		r.transitionsTotal,
		r.directivesTotal,
		r.connectivityErrors,
		r.firmwareSyncs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.setState(domain.StateUnregistered)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) OnStateChange(previous, current domain.SessionState) {
	r.transitionsTotal.WithLabelValues(current.String()).Inc()
	r.setState(current)
}

func (r *Recorder) OnDirective(d domain.Directive) {
	r.directivesTotal.WithLabelValues(d.String()).Inc()
}

func (r *Recorder) OnConnectivityError(op string) {
	r.connectivityErrors.WithLabelValues(op).Inc()
}

func (r *Recorder) OnFirmwareSync(result string) {
	r.firmwareSyncs.WithLabelValues(result).Inc()
}

func (r *Recorder) setState(current domain.SessionState) {
	for _, s := range allStates {
		v := 0.0
		if s == current {
			v = 1
		}
		r.sessionState.WithLabelValues(s.String()).Set(v)
	}
}
