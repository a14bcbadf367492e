package service

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"sid-client/internal/features/heartbeat/domain"
)

// Metrics holds the heartbeat collectors
type Metrics struct {
	reports  *prometheus.CounterVec
	online   prometheus.Gauge
	register sync.Once
	err      error
}

// NewMetrics creates heartbeat metrics
func NewMetrics() *Metrics {
	return &Metrics{
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sid_heartbeat_reports_total",
				Help: "Count of status reports by outcome",
			},
			[]string{"outcome"},
		),
		online: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sid_heartbeat_online",
				Help: "1 when the last status report reached the backend, 0 otherwise",
			},
		),
	}
}

// Register registers the collectors once. Collectors already present in reg are tolerated.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	m.register.Do(func() {
		for _, collector := range []prometheus.Collector{m.reports, m.online} {
			if err := reg.Register(collector); err != nil {
				var already prometheus.AlreadyRegisteredError
				if !errors.As(err, &already) {
					m.err = err
					return
				}
			}
		}
	})
	return m.err
}

func (m *Metrics) record(report domain.Report) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(string(report.Outcome)).Inc()
	if report.Outcome == domain.OutcomeOnline {
		m.online.Set(1)
	} else {
		m.online.Set(0)
	}
}
