package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Send results used as the "result" label.
const (
	resultSuccess = "success"
	resultClosed  = "closed"
	resultTimeout = "timeout"
	resultError   = "error"
)

// Metrics records broadcaster activity.
type Metrics struct {
	sends    *prometheus.CounterVec
	inFlight prometheus.Gauge
	duration prometheus.Histogram
}

// MetricsConfig configures the broadcaster metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wired").
	Namespace string
	// Registry is the Prometheus registry to use (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
	// Buckets are the histogram buckets for broadcast duration (default: prometheus.DefBuckets).
	Buckets []float64
}

// NewMetrics registers the broadcaster metrics.
//
// Metrics collected:
//   - wired_broadcast_sends_total: sends by result (success, closed, timeout, error)
//   - wired_broadcast_sends_in_flight: sends currently holding a permit
//   - wired_broadcast_duration_seconds: time to fan out one message
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "wired"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		sends: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "broadcast",
			Name:      "sends_total",
			Help:      "Total number of per-connection sends by result",
		}, []string{"result"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "broadcast",
			Name:      "sends_in_flight",
			Help:      "Number of sends currently holding a send permit",
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "broadcast",
			Name:      "duration_seconds",
			Help:      "Time to deliver one message to every connection of a session",
			Buckets:   cfg.Buckets,
		}),
	}
}

// The methods below are nil-safe so the broadcaster can run without metrics.

func (m *Metrics) result(r string) {
	if m != nil {
		m.sends.WithLabelValues(r).Inc()
	}
}

func (m *Metrics) acquired() {
	if m != nil {
		m.inFlight.Inc()
	}
}

func (m *Metrics) released() {
	if m != nil {
		m.inFlight.Dec()
	}
}

func (m *Metrics) observe(seconds float64) {
	if m != nil {
		m.duration.Observe(seconds)
	}
}
