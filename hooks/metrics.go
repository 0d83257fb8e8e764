package hooks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHook implements Prometheus lifecycle metrics collection
type MetricsHook struct {
	connectDuration prometheus.Histogram
	lifecycleTotal  *prometheus.CounterVec
	lifecycleErrors *prometheus.CounterVec
	activeConns     prometheus.Gauge
}

// NewMetricsHook creates a new metrics hook and registers collectors
func NewMetricsHook(registry prometheus.Registerer) (*MetricsHook, error) {
	h := &MetricsHook{
		connectDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pgxkit_connect_duration_seconds",
				Help:    "Duration of database connect attempts in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		lifecycleTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgxkit_lifecycle_operations_total",
				Help: "Total number of connection lifecycle operations",
			},
			[]string{"operation"},
		),
		lifecycleErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgxkit_lifecycle_errors_total",
				Help: "Total number of failed connection lifecycle operations",
			},
			[]string{"operation"},
		),
		activeConns: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pgxkit_connections_active",
				Help: "Number of currently open physical connections",
			},
		),
	}

	// Register metrics
	collectors := []prometheus.Collector{h.connectDuration, h.lifecycleTotal, h.lifecycleErrors, h.activeConns}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			// Check if already registered
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return h, nil
}

// BeforeConn is called before a lifecycle operation starts
func (h *MetricsHook) BeforeConn(ctx context.Context, event *ConnEvent) context.Context {
	return ctx
}

// AfterConn is called after a lifecycle operation finishes
func (h *MetricsHook) AfterConn(ctx context.Context, event *ConnEvent) {
	h.lifecycleTotal.WithLabelValues(event.Op).Inc()

	if event.Err != nil {
		h.lifecycleErrors.WithLabelValues(event.Op).Inc()
	}

	switch event.Op {
	case OpConnect:
		h.connectDuration.Observe(time.Since(event.StartTime).Seconds())
		if event.Err == nil {
			h.activeConns.Inc()
		}
	case OpDisconnect:
		// Disconnect always releases the resource, even when close fails.
		h.activeConns.Dec()
	}
}
