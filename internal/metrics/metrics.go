package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceLive = "live"
	SourceDemo = "demo"

	ModeLive = "live"
	ModeDemo = "demo"

	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the dashboard collectors on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	Adoptions        *prometheus.CounterVec
	FallbackTimeouts prometheus.Counter
	StatusUpdates    *prometheus.CounterVec
	SampleInserts    *prometheus.CounterVec
	ActiveSurfaces   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Adoptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campuscare",
		Name:      "reconcile_adoptions_total",
		Help:      "Complaint sets adopted by surfaces, by source",
	}, []string{"source"})
	m.FallbackTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "campuscare",
		Name:      "reconcile_fallback_timeouts_total",
		Help:      "Surfaces that fell back to demo data because no snapshot arrived in time",
	})
	m.StatusUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campuscare",
		Name:      "status_updates_total",
		Help:      "Complaint status updates, by mode and result",
	}, []string{"mode", "result"})
	m.SampleInserts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campuscare",
		Name:      "sample_inserts_total",
		Help:      "Sample complaint inserts, by result",
	}, []string{"result"})
	m.ActiveSurfaces = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "campuscare",
		Name:      "active_surfaces",
		Help:      "Presentation surfaces currently holding a subscription",
	})

	m.registry.MustRegister(
		m.Adoptions,
		m.FallbackTimeouts,
		m.StatusUpdates,
		m.SampleInserts,
		m.ActiveSurfaces,
		prometheus.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
