package http

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics manages Prometheus metrics for outbound backend requests
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	registered     bool
	mu             sync.Mutex
}

// NewMetrics creates backend request metrics
func NewMetrics() *Metrics {
	return &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sid_backend_requests_total",
				Help: "Count of backend requests by method and status code",
			},
			[]string{"method", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sid_backend_request_duration_seconds",
				Help:    "Latency of backend requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
	}
}

// Register registers metrics with the given registerer
func (m *Metrics) Register(reg prometheus.Registerer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	for _, collector := range []prometheus.Collector{m.requestCounter, m.requestLatency} {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

// observe is nil-safe so clients built without metrics skip recording
func (m *Metrics) observe(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(method, status).Inc()
	m.requestLatency.WithLabelValues(method, status).Observe(elapsed.Seconds())
}
