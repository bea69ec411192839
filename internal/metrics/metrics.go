package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/deepwork/internal/repository"
)

const namespace = "deepwork"

// Metrics holds the Prometheus collectors for the session store and the
// dashboard. It implements session.Observer.
type Metrics struct {
	// SessionsRecorded counts successful appends.
	SessionsRecorded prometheus.Counter

	// StoreErrors counts failed store calls.
	// Labels: op (append, list), kind (connection, write, read)
	StoreErrors *prometheus.CounterVec

	// StoreDuration observes store call latency.
	// Labels: op
	StoreDuration *prometheus.HistogramVec

	// SessionsLoaded reports how many rows the last successful list returned.
	SessionsLoaded prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers all collectors with reg. Pass a fresh
// prometheus.NewRegistry() in tests; registering twice on the same
// registry panics.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_recorded_total",
			Help:      "Deep work sessions stored",
		}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Failed session store calls by operation and error kind",
		}, []string{"op", "kind"}),
		StoreDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "duration_seconds",
			Help:      "Session store call latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"op"}),
		SessionsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_loaded",
			Help:      "Rows returned by the most recent successful session listing",
		}),
		gatherer: reg,
	}
}

// ObserveAppend records the outcome of one insert.
func (m *Metrics) ObserveAppend(elapsed time.Duration, err error) {
	m.StoreDuration.WithLabelValues("append").Observe(elapsed.Seconds())
	if err != nil {
		m.StoreErrors.WithLabelValues("append", errorKind(err, "write")).Inc()
		return
	}
	m.SessionsRecorded.Inc()
}

// ObserveList records the outcome of one bulk read.
func (m *Metrics) ObserveList(elapsed time.Duration, count int, err error) {
	m.StoreDuration.WithLabelValues("list").Observe(elapsed.Seconds())
	if err != nil {
		m.StoreErrors.WithLabelValues("list", errorKind(err, "read")).Inc()
		return
	}
	m.SessionsLoaded.Set(float64(count))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func errorKind(err error, fallback string) string {
	if errors.Is(err, repository.ErrUnavailable) {
		return "connection"
	}
	return fallback
}
