// Package metrics defines the Prometheus collectors exported by tripledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	computations *prometheus.CounterVec
	engineErrors *prometheus.CounterVec
	transfers    prometheus.Histogram
	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripledger",
			Name:      "engine_computations_total",
			Help:      "Ledger engine invocations by engine.",
		}, []string{"engine"}),
		engineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripledger",
			Name:      "engine_errors_total",
			Help:      "Ledger engine contract violations by engine.",
		}, []string{"engine"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripledger",
			Name:      "settlement_transfers",
			Help:      "Number of transfers suggested per settlement.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripledger",
			Name:      "rpc_requests_total",
			Help:      "RPCs handled by procedure and code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripledger",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.computations,
		m.engineErrors,
		m.transfers,
		m.rpcRequests,
		m.rpcDuration,
	)
	return m
}

// Registry exposes the registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Engine names used as label values.
const (
	EngineSettlement = "settlement"
	EngineBudget     = "budget"
)

// ObserveSettlement records one settlement computation.
func (m *Metrics) ObserveSettlement(transfers int) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(EngineSettlement).Inc()
	m.transfers.Observe(float64(transfers))
}

// ObserveBudget records one budget snapshot computation.
func (m *Metrics) ObserveBudget() {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(EngineBudget).Inc()
}

// EngineError records a contract violation raised by an engine.
func (m *Metrics) EngineError(engine string) {
	if m == nil {
		return
	}
	m.engineErrors.WithLabelValues(engine).Inc()
}

// ObserveRPC records one handled RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}
