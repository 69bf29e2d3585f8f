package core

// metrics.go – Prometheus metrics for the router core, grounded on the
// teacher's core/system_health_logging.go HealthLogger (same
// Registry+Gauge/Counter construction and StartMetricsServer/
// ShutdownMetricsServer lifecycle), generalized from node health counters
// to routing counters (spec §9 names metrics as a carried ambient concern
// even though the spec proper has no metrics module of its own).

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics collects the Prometheus series this core reports.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal      *prometheus.CounterVec
	noRouteTotal       prometheus.Counter
	timeoutTotal       prometheus.Counter
	adapterErrorsTotal *prometheus.CounterVec
	adapterLatencyMs   *prometheus.HistogramVec
	graphEdgesGauge    *prometheus.GaugeVec
	graphRefreshTotal  *prometheus.CounterVec

	log *logrus.Entry
}

// NewMetrics builds and registers every series this core reports.
func NewMetrics(log *logrus.Entry) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{registry: reg, log: log}

	m.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swaprouter_requests_total",
		Help: "Total GetRoute requests, labeled by outcome.",
	}, []string{"outcome"})

	m.noRouteTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_no_route_total",
		Help: "Total requests that resolved to no viable route.",
	})

	m.timeoutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_timeout_total",
		Help: "Total requests that hit the aggregator deadline.",
	})

	m.adapterErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swaprouter_adapter_errors_total",
		Help: "Total adapter errors, labeled by adapter and error kind.",
	}, []string{"adapter", "kind"})

	m.adapterLatencyMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swaprouter_adapter_latency_ms",
		Help:    "Adapter Quote/QuoteBridge latency in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"adapter"})

	m.graphEdgesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "swaprouter_graph_edges",
		Help: "Current number of pool edges held per chain.",
	}, []string{"chain"})

	m.graphRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swaprouter_graph_refresh_total",
		Help: "Graph refresh runs, labeled by chain and tier.",
	}, []string{"chain", "tier"})

	reg.MustRegister(
		m.requestsTotal, m.noRouteTotal, m.timeoutTotal,
		m.adapterErrorsTotal, m.adapterLatencyMs,
		m.graphEdgesGauge, m.graphRefreshTotal,
	)
	return m
}

// RecordRequest tallies one GetRoute call by its outcome ("ok", "no_route",
// "timeout", "error").
func (m *Metrics) RecordRequest(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case "no_route":
		m.noRouteTotal.Inc()
	case "timeout":
		m.timeoutTotal.Inc()
	}
}

// RecordAdapterError tallies one adapter failure.
func (m *Metrics) RecordAdapterError(adapter string, kind AdapterErrorKind) {
	m.adapterErrorsTotal.WithLabelValues(adapter, string(kind)).Inc()
}

// RecordAdapterLatency observes one adapter call's wall-clock latency.
func (m *Metrics) RecordAdapterLatency(adapter string, ms float64) {
	m.adapterLatencyMs.WithLabelValues(adapter).Observe(ms)
}

// SetGraphEdges publishes the current edge count for chain.
func (m *Metrics) SetGraphEdges(chain CanonicalChainId, n int) {
	m.graphEdgesGauge.WithLabelValues(chainLabel(chain)).Set(float64(n))
}

// RecordGraphRefresh tallies one scheduler tick (spec §4.2).
func (m *Metrics) RecordGraphRefresh(chain CanonicalChainId, tier string) {
	m.graphRefreshTotal.WithLabelValues(chainLabel(chain), tier).Inc()
}

func chainLabel(chain CanonicalChainId) string {
	return strconv.FormatUint(uint64(chain), 10)
}

// Handler returns the promhttp handler serving this Metrics' registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer exposes /metrics on addr. Mirrors the teacher's
// HealthLogger.StartMetricsServer lifecycle.
func (m *Metrics) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.WithError(err).Error("metrics server stopped")
		}
	}()
	return srv
}

// ShutdownMetricsServer gracefully stops the metrics HTTP server.
func (m *Metrics) ShutdownMetricsServer(ctx context.Context, srv *http.Server) error {
	return srv.Shutdown(ctx)
}
